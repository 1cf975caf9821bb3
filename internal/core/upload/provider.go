package upload

import (
	"context"
	"io"
	"mime/multipart"
	"time"
)

// Result describes a stored file
type Result struct {
	URL      string `json:"url"`       // Public URL to access the file
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	Format   string `json:"format"`    // File extension without dot
	PublicID string `json:"public_id"` // Provider-specific identifier
}

// Options configure a single upload
type Options struct {
	Folder       string   // Destination folder
	AllowedTypes []string // Allowed MIME types, empty means any
	MaxSize      int64    // Max size in bytes
}

// Provider stores and serves uploaded files
type Provider interface {
	// Upload stores a file and returns its descriptor
	Upload(ctx context.Context, file io.Reader, filename string, opts *Options) (*Result, error)

	// UploadMultipart stores a file from a multipart form
	UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *Options) (*Result, error)

	// Delete removes a file by public ID
	Delete(ctx context.Context, publicID string) error

	// SignedURL returns a time-limited URL for a file. Providers
	// without signing return the public URL.
	SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// ImageOptions limits an upload to web image formats
func ImageOptions(folder string) *Options {
	return &Options{
		Folder:       folder,
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		MaxSize:      10 * 1024 * 1024,
	}
}

// DocumentOptions allows the formats the chat analysis flow accepts
func DocumentOptions(folder string) *Options {
	return &Options{
		Folder: folder,
		AllowedTypes: []string{
			"application/pdf",
			"text/plain",
			"text/csv",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"image/jpeg",
			"image/png",
		},
		MaxSize: 20 * 1024 * 1024,
	}
}

func validateMultipart(fileHeader *multipart.FileHeader, opts *Options) error {
	if opts == nil {
		return nil
	}

	if len(opts.AllowedTypes) > 0 {
		contentType := fileHeader.Header.Get("Content-Type")
		allowed := false
		for _, t := range opts.AllowedTypes {
			if contentType == t {
				allowed = true
				break
			}
		}
		if !allowed {
			return &TypeNotAllowedError{ContentType: contentType}
		}
	}

	if opts.MaxSize > 0 && fileHeader.Size > opts.MaxSize {
		return &TooLargeError{Size: fileHeader.Size, MaxSize: opts.MaxSize}
	}

	return nil
}
