package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalProvider stores files on the local filesystem, served from the
// /uploads static route
type LocalProvider struct {
	basePath string
	baseURL  string
}

func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalProvider{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

func (p *LocalProvider) Upload(ctx context.Context, file io.Reader, filename string, opts *Options) (*Result, error) {
	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)

	uniqueID := uuid.New().String()[:8]
	finalFilename := fmt.Sprintf("%s_%d_%s%s", nameWithoutExt, time.Now().Unix(), uniqueID, ext)

	folder := "uploads"
	if opts != nil && opts.Folder != "" {
		folder = opts.Folder
	}

	folderPath := filepath.Join(p.basePath, folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	filePath := filepath.Join(folderPath, finalFilename)
	out, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if opts != nil && opts.MaxSize > 0 && size > opts.MaxSize {
		os.Remove(filePath)
		return nil, &TooLargeError{Size: size, MaxSize: opts.MaxSize}
	}

	publicID := folder + "/" + finalFilename

	return &Result{
		URL:      p.baseURL + "/uploads/" + publicID,
		FileName: filename,
		Size:     size,
		Format:   strings.TrimPrefix(ext, "."),
		PublicID: publicID,
	}, nil
}

func (p *LocalProvider) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *Options) (*Result, error) {
	if err := validateMultipart(fileHeader, opts); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return p.Upload(ctx, file, fileHeader.Filename, opts)
}

func (p *LocalProvider) Delete(ctx context.Context, publicID string) error {
	filePath := filepath.Join(p.basePath, publicID)

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", publicID)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// SignedURL returns the public URL, local files are not signed
func (p *LocalProvider) SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error) {
	return p.baseURL + "/uploads/" + publicID, nil
}

func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
