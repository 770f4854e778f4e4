package resortbill

import "errors"

// Validation errors. Submit returns them without touching session state.
var (
	ErrRoomTypeRequired = errors.New("room type is required")
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrInvalidBooking   = errors.New("invalid booking")
	ErrUnknownMeal      = errors.New("unknown meal")
)

// Logo intake errors.
var (
	ErrLogoTooLarge = errors.New("logo exceeds maximum size")
	ErrLogoFormat   = errors.New("logo must be a PNG or JPEG image")
	ErrLogoDecode   = errors.New("failed to decode logo")
)

// Rendering and export errors.
var (
	ErrRender           = errors.New("failed to render bill")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrExportInProgress = errors.New("export already in progress")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrRasterize        = errors.New("failed to rasterize page")
	ErrPageCount        = errors.New("unexpected page count")
	ErrPDFAssembly      = errors.New("failed to assemble PDF")
)
