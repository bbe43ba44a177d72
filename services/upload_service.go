package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/services/logger"
	"homestay/services/storage"

	"github.com/google/uuid"
)

// allowedUploadTypes content-type được chấp nhận và đuôi file tương ứng
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

var uploadFolders = map[string]bool{
	constants.UploadFolderDeposits: true,
	constants.UploadFolderCleaning: true,
}

type UploadService struct {
	storage storage.Storage
	logger  logger.Logger
	maxSize int64
}

func NewUploadService(opts Options) *UploadService {
	opts.withDefaults()
	return &UploadService{storage: opts.Storage, logger: opts.Logger, maxSize: opts.MaxUploadSize}
}

// Upload kiểm tra thư mục, kích thước, loại file rồi lưu với tên ngẫu nhiên
func (s *UploadService) Upload(ctx context.Context, folder string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if !uploadFolders[folder] {
		return nil, errors.Validation(errors.ErrCodeInvalidFile, "Thư mục upload không hợp lệ")
	}
	if size <= 0 {
		return nil, errors.Validation(errors.ErrCodeInvalidFile, "File rỗng")
	}
	if size > s.maxSize {
		return nil, errors.Validation(errors.ErrCodeInvalidFile,
			fmt.Sprintf("File vượt quá dung lượng cho phép (%d MB)", s.maxSize>>20))
	}
	if s.storage == nil {
		return nil, errors.Unexpected(fmt.Errorf("upload: storage not configured"))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Unexpected(err)
	}
	head = head[:n]
	ext, ok := allowedUploadTypes[http.DetectContentType(head)]
	if !ok {
		return nil, errors.Validation(errors.ErrCodeInvalidFile, "Chỉ chấp nhận file JPEG, PNG, WEBP hoặc PDF")
	}

	filename := uuid.NewString() + ext
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize)
	url, err := s.storage.Save(ctx, folder, filename, body)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	s.logger.Info("upload %s/%s (%d bytes)", folder, filename, size)
	return &dto.UploadResponse{URL: url, Folder: folder, Filename: filename, Size: size}, nil
}
