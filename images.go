package garden

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const (
	maxAvatarWidth = 256
	jpegQuality    = 80
	avatarFile     = "static/avatar.jpg"
)

// processImage decodes an image from src, resizes it down to at most
// maxWidth pixels wide, and encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// avatarSource finds the configured avatar under the content or static dir.
func (a *App) avatarSource() (string, error) {
	if a.Config.Avatar == "" {
		return "", nil
	}
	candidates := []string{a.Config.Avatar}
	if !filepath.IsAbs(a.Config.Avatar) {
		candidates = []string{
			filepath.Join(a.Config.ContentDir, a.Config.Avatar),
			filepath.Join(a.Config.StaticDir, a.Config.Avatar),
		}
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("avatar %s: %w", a.Config.Avatar, os.ErrNotExist)
}

// avatar returns the processed avatar bytes, or nil when none is configured.
func (a *App) avatar() ([]byte, error) {
	path, err := a.avatarSource()
	if err != nil || path == "" {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, _, err := processImage(f, maxAvatarWidth)
	if err != nil {
		return nil, fmt.Errorf("avatar %s: %w", path, err)
	}
	return data, nil
}
