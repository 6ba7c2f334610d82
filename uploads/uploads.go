// Package uploads stores catalog images on disk and backs them up daily.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	PublicPrefix = "/uploads"

	Categories = "categories"
	Products   = "products"
)

type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) Root() string {
	return s.root
}

// Save writes the uploaded file under root/kind and returns its public URL.
// File names are prefixed with a uuid so uploads never overwrite each other.
func (s *Storage) Save(fh *multipart.FileHeader, kind string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	filename := fileName(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return path.Join(PublicPrefix, kind, filename), nil
}

// Remove deletes a file previously returned by Save. Unknown URLs are ignored.
func (s *Storage) Remove(publicURL string) {
	rel := strings.TrimPrefix(publicURL, PublicPrefix+"/")
	if rel == publicURL || rel == "" || strings.Contains(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
}

func fileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "image"
	}
	return uuid.NewString() + "_" + base + ext
}
