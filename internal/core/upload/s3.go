package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Provider stores files in AWS S3. Documents are served through
// presigned URLs so the bucket can stay private.
type S3Provider struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   string
}

func NewS3Provider(accessKeyID, secretAccessKey, region, bucket string) (*S3Provider, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &S3Provider{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		baseURL:   fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}, nil
}

func (p *S3Provider) Upload(ctx context.Context, file io.Reader, filename string, opts *Options) (*Result, error) {
	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)

	folder := "uploads"
	if opts != nil && opts.Folder != "" {
		folder = opts.Folder
	}

	uniqueID := uuid.New().String()[:8]
	key := fmt.Sprintf("%s/%s_%d_%s%s", folder, nameWithoutExt, time.Now().Unix(), uniqueID, ext)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(detectContentType(ext)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &Result{
		URL:      fmt.Sprintf("%s/%s", p.baseURL, key),
		FileName: filename,
		Format:   strings.TrimPrefix(ext, "."),
		PublicID: key,
	}, nil
}

func (p *S3Provider) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *Options) (*Result, error) {
	if err := validateMultipart(fileHeader, opts); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	result, err := p.Upload(ctx, file, fileHeader.Filename, opts)
	if err != nil {
		return nil, err
	}

	result.Size = fileHeader.Size
	return result, nil
}

func (p *S3Provider) Delete(ctx context.Context, publicID string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

// SignedURL presigns a GET for the object
func (p *S3Provider) SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error) {
	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(publicID),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign S3 URL: %w", err)
	}

	return req.URL, nil
}

func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}

func detectContentType(ext string) string {
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".svg":  "image/svg+xml",
		".pdf":  "application/pdf",
		".txt":  "text/plain",
		".csv":  "text/csv",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}

	if contentType, ok := contentTypes[strings.ToLower(ext)]; ok {
		return contentType
	}

	return "application/octet-stream"
}
