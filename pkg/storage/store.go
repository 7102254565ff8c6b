package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// Folders used for form uploads.
const (
	FolderTickets  = "requerimientos"
	FolderForms    = "formularios"
	FolderContacts = "contacto"
)

// ErrFileType is returned when an attachment extension is not on the allow-list.
var ErrFileType = errors.New("storage: file type not allowed")

// AllowedAttachmentExtensions are the ticket attachment types accepted.
var AllowedAttachmentExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// FileStore persists uploaded files and returns the reference recorded
// alongside the ticket (a relative path for disk, an object URL for S3).
type FileStore interface {
	Save(ctx context.Context, folder, originalName, contentType string, body io.Reader, size int64) (string, error)
}

// ValidateAttachment returns ErrFileType unless filename has an allowed extension.
func ValidateAttachment(filename string) error {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := AllowedAttachmentExtensions[ext]; !ok {
		return ErrFileType
	}
	return nil
}

// ContentTypeForFilename returns the MIME type for a filename extension.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ct, ok := AllowedAttachmentExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
