package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"strings"
	"unicode"

	"github.com/desertthunder/snapup/internal/shared"
)

var (
	errUndecodable = errors.New("the file could not be read as an image")
	errGrayscale   = errors.New("image must be in color")
)

// checkImage decodes the image header and enforces minimum dimensions and a color model.
func checkImage(data []byte, minSide int) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errUndecodable
	}

	if cfg.Width < minSide || cfg.Height < minSide {
		return fmt.Errorf("width and height must both be at least %dpx", minSide)
	}

	if cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.Gray16Model {
		return errGrayscale
	}

	return nil
}

// storedExtension picks the extension for a stored upload: the original's when it is plain alphanumerics,
// otherwise one registered for contentType, otherwise "bin".
func storedExtension(filename, contentType string) string {
	ext := shared.FileExtension(filename)
	if ext != "" && strings.IndexFunc(ext, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) < 0 {
		return ext
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}

	return "bin"
}
