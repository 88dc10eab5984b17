package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes mirrors the 5MB limit of the original upload middleware.
const MaxImageBytes = 5 * 1000 * 1000

// ErrNotAnImage is returned when the file is not an allowed image type.
var ErrNotAnImage = errors.New("images only (jpeg, jpg, png, webp)")

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// Saver writes uploaded product images to a local directory and hands back
// the public URL they will be served from.
type Saver struct {
	dir     string
	urlHost string
}

// NewSaver ensures dir exists and returns a Saver. urlHost is the host
// prefix of the served /uploads route.
func NewSaver(dir, urlHost string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir, urlHost: strings.TrimRight(urlHost, "/")}, nil
}

// Save validates and stores the uploaded file, returning its public URL.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	name, err := Filename(fh.Filename)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.urlHost + "/uploads/" + name, nil
}

// Filename builds a unique stored name for an uploaded file, keeping only
// the (whitelisted) extension of the original.
func Filename(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExts[ext] {
		return "", ErrNotAnImage
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext), nil
}
