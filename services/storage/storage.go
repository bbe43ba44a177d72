// Package storage lưu file tải lên (ảnh dọn phòng, chứng từ cọc) ra ổ đĩa hoặc Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Storage interface {
	// Save lưu nội dung r vào folder/filename và trả về URL truy cập
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// LocalStorage ghi file vào dir, được phục vụ tĩnh ở /uploads
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	folder = filepath.Base(folder)
	filename = filepath.Base(filename)

	dir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: close: %w", err)
	}
	return s.baseURL + path.Join("/uploads", folder, filename), nil
}

// CloudinaryStorage tải file lên Cloudinary
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	prefix string
}

func NewCloudinaryStorage(cloudinaryURL, prefix string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, prefix: prefix}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	publicID := strings.TrimSuffix(filename, filepath.Ext(filename))
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   path.Join(s.prefix, folder),
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("storage: cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("storage: cloudinary upload %s: empty url", filename)
	}
	return resp.SecureURL, nil
}
