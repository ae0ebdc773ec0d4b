package agrisite

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func TestCoverBucketUpload(t *testing.T) {
	dir := t.TempDir()
	b, err := NewCoverBucket(dir, "/public/covers/")
	if err != nil {
		t.Fatalf("NewCoverBucket failed: %v", err)
	}

	url, err := b.Upload("photo.png", testPNG(t, 10, 10))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "/public/covers/") {
		t.Errorf("url = %q, want base URL prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want original extension kept", url)
	}

	// The stored name is random, not the original.
	name := FileNameFromURL(url)
	if name == "photo.png" {
		t.Error("stored name should not reuse the original file name")
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestCoverBucketUploadRejectsUnknownExtension(t *testing.T) {
	b, err := NewCoverBucket(t.TempDir(), "/public/covers")
	if err != nil {
		t.Fatalf("NewCoverBucket failed: %v", err)
	}
	if _, err := b.Upload("malware.exe", strings.NewReader("x")); err == nil {
		t.Error("expected unsupported extension to be rejected")
	}
	if _, err := b.Upload("doc.pdf", strings.NewReader("x")); err == nil {
		t.Error("expected unsupported extension to be rejected")
	}
}

func TestCoverBucketUploadRejectsGarbage(t *testing.T) {
	b, err := NewCoverBucket(t.TempDir(), "/public/covers")
	if err != nil {
		t.Fatalf("NewCoverBucket failed: %v", err)
	}
	if _, err := b.Upload("fake.png", strings.NewReader("not an image")); err == nil {
		t.Error("expected undecodable image to be rejected")
	}
}

func TestCoverBucketDownscalesWideImages(t *testing.T) {
	dir := t.TempDir()
	b, err := NewCoverBucket(dir, "/public/covers")
	if err != nil {
		t.Fatalf("NewCoverBucket failed: %v", err)
	}

	url, err := b.Upload("wide.png", testPNG(t, maxCoverWidth*2, 100))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, FileNameFromURL(url)))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if got := img.Bounds().Dx(); got != maxCoverWidth {
		t.Errorf("stored width = %d, want %d", got, maxCoverWidth)
	}
	if got := img.Bounds().Dy(); got != 50 {
		t.Errorf("stored height = %d, want 50 (aspect preserved)", got)
	}
}

func TestCoverBucketRemove(t *testing.T) {
	dir := t.TempDir()
	b, err := NewCoverBucket(dir, "/public/covers")
	if err != nil {
		t.Fatalf("NewCoverBucket failed: %v", err)
	}

	url, err := b.Upload("photo.png", testPNG(t, 10, 10))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	name := FileNameFromURL(url)
	if err := b.Remove(name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Error("file should be gone after Remove")
	}

	// Removing again is not an error.
	if err := b.Remove(name); err != nil {
		t.Errorf("Remove of missing file should be tolerated, got %v", err)
	}
}

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/public/covers/abc.jpg", "abc.jpg"},
		{"https://cdn.example.com/covers/xyz.png", "xyz.png"},
		{"/public/covers/abc.jpg/", "abc.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FileNameFromURL(tt.url); got != tt.want {
			t.Errorf("FileNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
