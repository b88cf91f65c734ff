package services

import (
	"fmt"
	"io"
	"mime/multipart"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// StorageService turns an uploaded multipart file into the in-memory blob
// the upload page holds until submission. Nothing is written to disk.
type StorageService interface {
	ReadSelectedFile(file *multipart.FileHeader) (*models.SelectedFile, error)
}

type storageService struct {
	previewer PreviewService
}

func NewStorageService(previewer PreviewService) StorageService {
	return &storageService{
		previewer: previewer,
	}
}

// ReadSelectedFile implements StorageService.
func (s *storageService) ReadSelectedFile(file *multipart.FileHeader) (*models.SelectedFile, error) {
	if file == nil {
		return nil, fmt.Errorf("no file provided")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &models.SelectedFile{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
		Summary:     s.previewer.Describe(file.Filename, data),
	}, nil
}
