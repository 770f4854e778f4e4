package assets

import "fmt"

// AssetLoader loads CSS styles and HTML templates by bare name.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound or ErrInvalidAssetName on failure.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound or ErrInvalidAssetName on failure.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName accepts only ASCII letters, digits, '-' and '_', so a
// name can never leave the asset directory or pick its own extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
