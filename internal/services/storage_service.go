package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/logging"
	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/config"
)

// StorageService uploads site images to an S3-compatible bucket and hands
// back publicly reachable URLs
type StorageService struct {
	client *s3.Client
	cfg    *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := buildClient(cfg.MediaS3Endpoint, cfg.MediaS3Region, cfg.MediaS3AccessKeyID, cfg.MediaS3SecretAccessKey, cfg.MediaS3UsePathStyle)
	if err != nil {
		return nil, err
	}
	return &StorageService{client: client, cfg: cfg}, nil
}

func buildClient(endpoint, region, key, secret string, pathStyle bool) (*s3.Client, error) {
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		resolver,
		awsconfig.WithLogger(logging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

// UploadImage validates and uploads image bytes, returning the stored key
// and public URL
func (s *StorageService) UploadImage(ctx context.Context, filename string, data []byte) (string, string, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", "", fmt.Errorf("invalid content type: expected image, got %s", mimeType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowedExts[ext] {
		return "", "", fmt.Errorf("unsupported image extension: %s", ext)
	}

	if int64(len(data)) > s.cfg.UploadMaxImageSize {
		return "", "", fmt.Errorf("image too large: %d bytes (max: %d)", len(data), s.cfg.UploadMaxImageSize)
	}

	key := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	uploader := manager.NewUploader(s.client)
	in := &s3.PutObjectInput{
		Bucket:      &s.cfg.MediaImagesBucket,
		Key:         &key,
		ContentType: &mimeType,
		ACL:         s3types.ObjectCannedACLPublicRead,
		Body:        bytes.NewReader(data),
	}
	if _, err := uploader.Upload(ctx, in, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 }); err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, s.PublicURL(key), nil
}

// DeleteObject removes an uploaded image from the bucket
func (s *StorageService) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.cfg.MediaImagesBucket,
		Key:    &key,
	})
	return err
}

// PublicURL composes the public URL of a stored object
func (s *StorageService) PublicURL(key string) string {
	if s.cfg.MediaPublicURL != "" {
		return strings.TrimRight(s.cfg.MediaPublicURL, "/") + "/" + key
	}
	if s.cfg.MediaS3Endpoint != "" {
		return strings.TrimRight(s.cfg.MediaS3Endpoint, "/") + "/" + s.cfg.MediaImagesBucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.MediaImagesBucket, s.cfg.MediaS3Region, key)
}

// KeyFromURL recovers the object key from a URL this service produced.
// Returns "" for URLs that don't point into the images prefix, e.g. images
// hosted elsewhere.
func (s *StorageService) KeyFromURL(url string) string {
	i := strings.Index(url, "/images/")
	if i < 0 {
		return ""
	}
	return url[i+1:]
}
