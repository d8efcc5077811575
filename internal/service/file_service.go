package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"taxsage/internal/config"
	"taxsage/internal/domain"
	"taxsage/internal/port"
)

// FileUploadInput is the DTO for supporting-document uploads.
type FileUploadInput struct {
	FilingID   uuid.UUID
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// FileService manages supporting documents attached to a filing.
type FileService interface {
	Upload(ctx context.Context, input FileUploadInput) (*domain.FileMeta, error)
	ListByFiling(ctx context.Context, userID, filingID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	GetDownloadURL(ctx context.Context, userID, fileID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}

type fileService struct {
	fileRepo   port.FileMetaRepository
	filingRepo port.FilingRepository
	storage    port.ObjectStorage
	cfg        *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	fileRepo port.FileMetaRepository,
	filingRepo port.FilingRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) FileService {
	return &fileService{
		fileRepo:   fileRepo,
		filingRepo: filingRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *fileService) Upload(ctx context.Context, input FileUploadInput) (*domain.FileMeta, error) {
	if _, err := s.ownedFiling(ctx, input.UploadedBy, input.FilingID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("filings/%s/files/%s/%s", input.FilingID, fileID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	meta := &domain.FileMeta{
		ID:           fileID,
		FilingID:     input.FilingID,
		UploadedBy:   input.UploadedBy,
		FileName:     fileID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.FileStatusPending,
	}

	log.Printf("fileService.Upload: uploading %s (%s, %d bytes) for filing %s by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.FilingID, input.UploadedBy)

	if err := s.fileRepo.Create(ctx, meta); err != nil {
		log.Printf("fileService.Upload: failed to create file metadata: %v", err)
		return nil, fmt.Errorf("creating file metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("fileService.Upload: storage upload failed for file %s: %v", meta.ID, err)
		_ = s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating file status: %w", err)
	}
	meta.Status = domain.FileStatusUploaded

	return meta, nil
}

func (s *fileService) ListByFiling(ctx context.Context, userID, filingID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error) {
	if _, err := s.ownedFiling(ctx, userID, filingID); err != nil {
		return nil, 0, err
	}
	return s.fileRepo.ListByFiling(ctx, filingID, offset, limit)
}

func (s *fileService) GetDownloadURL(ctx context.Context, userID, fileID uuid.UUID) (string, error) {
	meta, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.cfg.PresignExpiry)
}

func (s *fileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	meta, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, meta.S3Bucket, meta.S3Key); err != nil {
		log.Printf("fileService.Delete: storage delete failed for file %s: %v", meta.ID, err)
	}
	return s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusDeleted)
}

func (s *fileService) ownedFiling(ctx context.Context, userID, filingID uuid.UUID) (*domain.Filing, error) {
	filing, err := s.filingRepo.GetByID(ctx, filingID)
	if err != nil {
		return nil, err
	}
	if filing.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return filing, nil
}

func (s *fileService) ownedFile(ctx context.Context, userID, fileID uuid.UUID) (*domain.FileMeta, error) {
	meta, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedFiling(ctx, userID, meta.FilingID); err != nil {
		return nil, err
	}
	return meta, nil
}
