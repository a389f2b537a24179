package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// LocalStorage stores applicant documents on the local filesystem, keyed by
// owner CPR and document type.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local document storage ready")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveDocument stores an uploaded document and returns its storage key. The
// key is `<ownerKey>/<docType>/<uuid><ext>`; callers treat it as opaque.
func (ls *LocalStorage) SaveDocument(fileHeader *multipart.FileHeader, docType, ownerKey string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	subDir := filepath.Join(ls.basePath, ownerKey, docType)
	if err := os.MkdirAll(subDir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", subDir).Msg("Failed to create document directory")
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueName := uuid.New().String() + ext
	dstPath := filepath.Join(subDir, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	storageKey := filepath.ToSlash(filepath.Join(ownerKey, docType, uniqueName))
	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("storageKey", storageKey).
		Msg("Document saved")
	return storageKey, nil
}

// DeleteDocument removes a stored document by its storage key.
func (ls *LocalStorage) DeleteDocument(storageKey string) error {
	if storageKey == "" {
		return nil
	}

	fullPath := ls.FullPath(storageKey)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("storageKey", storageKey).Msg("Document already absent on delete")
			return nil
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// FullPath resolves a storage key to a filesystem path. Keys containing path
// traversal are collapsed onto the base path.
func (ls *LocalStorage) FullPath(storageKey string) string {
	clean := filepath.Clean("/" + strings.TrimPrefix(storageKey, "/"))
	return filepath.Join(ls.basePath, clean)
}
