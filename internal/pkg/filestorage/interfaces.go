package filestorage

import "mime/multipart"

// DocumentStorage defines the storage operations the application needs for
// applicant documents. Implementations return opaque storage keys; callers
// never interpret them.
type DocumentStorage interface {
	// SaveDocument stores an uploaded document under the owner's key and
	// document type and returns the storage key.
	SaveDocument(fileHeader *multipart.FileHeader, docType, ownerKey string) (string, error)

	// DeleteDocument removes a stored document.
	DeleteDocument(storageKey string) error

	// FullPath returns the full filesystem path for a storage key.
	FullPath(storageKey string) string
}
