package images

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	apperrors "userhub/internal/errors"
)

// Size is the fixed square edge every stored avatar is resized to.
const Size = 250

var formats = map[string]imaging.Format{
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

// Normalize decodes the image at path, resizes it to exactly Size x Size
// (aspect ratio is deliberately not preserved) and re-encodes it over the
// same path in its original format. The file is left untouched when the
// content is not a supported raster image.
func Normalize(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	src, formatName, err := image.Decode(f)
	f.Close()
	if err != nil {
		return apperrors.ErrUnsupportedImage
	}
	format, ok := formats[formatName]
	if !ok {
		return apperrors.ErrUnsupportedImage
	}

	resized := imaging.Resize(src, Size, Size, imaging.Lanczos)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite image: %w", err)
	}
	if err := imaging.Encode(out, resized, format); err != nil {
		out.Close()
		return fmt.Errorf("encode image: %w", err)
	}
	return out.Close()
}
