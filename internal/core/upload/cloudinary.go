package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider stores images in Cloudinary. Used for profile
// pictures and widget logos.
type CloudinaryProvider struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryProvider creates a Cloudinary provider from a
// cloudinary:// URL
func NewCloudinaryProvider(cloudinaryURL string) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryProvider{
		cld:       cld,
		cloudName: cld.Config.Cloud.CloudName,
	}, nil
}

func (p *CloudinaryProvider) Upload(ctx context.Context, file io.Reader, filename string, opts *Options) (*Result, error) {
	folder := "uploads"
	if opts != nil && opts.Folder != "" {
		folder = opts.Folder
	}

	result, err := p.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return &Result{
		URL:      result.SecureURL,
		FileName: filename,
		Size:     int64(result.Bytes),
		Format:   result.Format,
		PublicID: result.PublicID,
	}, nil
}

func (p *CloudinaryProvider) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *Options) (*Result, error) {
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

func (p *CloudinaryProvider) Delete(ctx context.Context, publicID string) error {
	result, err := p.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}

	if result.Result != "ok" {
		return fmt.Errorf("Cloudinary delete failed: %s", result.Result)
	}

	return nil
}

// SignedURL returns the delivery URL, Cloudinary assets are public
func (p *CloudinaryProvider) SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", p.cloudName, publicID), nil
}

func (p *CloudinaryProvider) GetProviderName() string {
	return "Cloudinary"
}
