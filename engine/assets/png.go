package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes img to path through a temporary file, so readers never
// observe a partially written image.
func WritePNG(path string, img image.Image) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write png %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode png %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write png %q: %w", path, err)
	}
	return os.Rename(tmp, path)
}
