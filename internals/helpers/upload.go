package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"opencourse_backend/internals/configs"
)

// SaveAttachment stores an uploaded file under
// <UploadDir>/<folder>/<YYYY-MM-DD>/<uuid><ext> and returns the relative path.
func SaveAttachment(folder string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	rel := datedPath(folder, fh.Filename)
	abs := filepath.Join(configs.UploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// SavePicture decodes an uploaded image, re-encodes it as webp and stores it
// date-partitioned like SaveAttachment. Keeps picture storage uniform and small.
func SavePicture(folder string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open picture: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode picture: %w", err)
	}

	// cap the longest side at 1024px, keep aspect ratio
	b := img.Bounds()
	if b.Dx() > 1024 || b.Dy() > 1024 {
		img = imaging.Fit(img, 1024, 1024, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	rel := datedPath(folder, "picture.webp")
	abs := filepath.Join(configs.UploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write picture: %w", err)
	}
	return rel, nil
}

func datedPath(folder, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".bin"
	}
	day := time.Now().UTC().Format("2006-01-02")
	return filepath.Join(folder, day, uuid.NewString()+ext)
}
