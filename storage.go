package agrisite

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1200
	coverQuality  = 85
	maxUploadSize = 10 << 20 // 10MB
)

// CoverBucket is the disk-backed file bucket for cover images. Files are
// stored under a random name that keeps the original extension and served as
// static assets under baseURL.
type CoverBucket struct {
	dir     string
	baseURL string // e.g. "/public/covers"
}

// NewCoverBucket creates the bucket directory if needed.
func NewCoverBucket(dir, baseURL string) (*CoverBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover dir: %w", err)
	}
	return &CoverBucket{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload validates and stores a cover image, returning its public URL.
// Images wider than maxCoverWidth are downscaled before writing; GIFs are
// stored as-is so animation frames survive.
func (b *CoverBucket) Upload(originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	raw, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > maxUploadSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxUploadSize)
	}

	data := raw
	if ext != ".gif" {
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("decode image: %w", err)
		}
		img = downscale(img)
		var buf bytes.Buffer
		if ext == ".png" {
			err = png.Encode(&buf, img)
		} else {
			err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: coverQuality})
		}
		if err != nil {
			return "", fmt.Errorf("encode image: %w", err)
		}
		data = buf.Bytes()
	} else {
		if _, err := gif.Decode(bytes.NewReader(raw)); err != nil {
			return "", fmt.Errorf("decode image: %w", err)
		}
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(b.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return b.baseURL + "/" + name, nil
}

// Remove deletes a stored cover by file name. A file that is already gone is
// not an error.
func (b *CoverBucket) Remove(fileName string) error {
	fileName = filepath.Base(fileName)
	if fileName == "." || fileName == "/" || fileName == "" {
		return fmt.Errorf("invalid cover file name")
	}
	err := os.Remove(filepath.Join(b.dir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FileNameFromURL derives the stored file name from a public cover URL.
func FileNameFromURL(coverURL string) string {
	if coverURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(coverURL, "/"), "/")
	return parts[len(parts)-1]
}

// downscale shrinks an image to maxCoverWidth when wider, preserving aspect.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxCoverWidth {
		return img
	}
	newH := h * maxCoverWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
