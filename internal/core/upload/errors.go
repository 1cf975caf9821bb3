package upload

import "fmt"

// TypeNotAllowedError is returned when a file's MIME type is rejected
type TypeNotAllowedError struct {
	ContentType string
}

func (e *TypeNotAllowedError) Error() string {
	return fmt.Sprintf("file type not allowed: %s", e.ContentType)
}

// TooLargeError is returned when a file exceeds the size limit
type TooLargeError struct {
	Size    int64
	MaxSize int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum allowed size %d bytes", e.Size, e.MaxSize)
}
