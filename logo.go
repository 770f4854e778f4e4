package resortbill

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// Logo intake limits.
const (
	MaxLogoSize      = 2 << 20 // 2 MiB
	MaxLogoDimension = 1024    // Longest side in pixels after intake
	logoJPEGQuality  = 95
)

// LoadLogo validates and normalizes a logo image. size is the declared
// byte size, or -1 when unknown; a declared size over MaxLogoSize is
// rejected before anything is read. Only PNG and JPEG are accepted. EXIF
// orientation is applied and images larger than MaxLogoDimension are
// scaled down.
func LoadLogo(r io.Reader, size int64) (*Logo, error) {
	if size > MaxLogoSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrLogoTooLarge, size, MaxLogoSize)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %v", ErrLogoDecode, err)
	}
	if len(data) > MaxLogoSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrLogoTooLarge, MaxLogoSize)
	}

	mt := mimetype.Detect(data)
	var format imaging.Format
	switch {
	case mt.Is("image/png"):
		format = imaging.PNG
	case mt.Is("image/jpeg"):
		format = imaging.JPEG
	default:
		return nil, fmt.Errorf("%w: got %s", ErrLogoFormat, mt.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxLogoDimension || b.Dy() > MaxLogoDimension {
		img = imaging.Fit(img, MaxLogoDimension, MaxLogoDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(logoJPEGQuality)); err != nil {
		return nil, fmt.Errorf("%w: encoding: %v", ErrLogoDecode, err)
	}

	mime := "image/png"
	if format == imaging.JPEG {
		mime = "image/jpeg"
	}
	out := img.Bounds()
	return &Logo{
		Data:    buf.Bytes(),
		MIME:    mime,
		Width:   out.Dx(),
		Height:  out.Dy(),
		DataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// LoadLogoFile loads a logo from disk, checking the file size first.
func LoadLogoFile(path string) (*Logo, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return LoadLogo(f, info.Size())
}
