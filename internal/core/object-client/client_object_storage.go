package objectclient

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core"
)

// uploadURLTTL is how long a presigned PUT stays valid. Single use in
// practice: the client consumes it right after asking for it.
const uploadURLTTL = time.Hour

type SpacesClient struct {
	client  *s3.Client
	presign *s3.PresignClient
	region  string
	bucket  string
}

var _ core.ObjectStore = (*SpacesClient)(nil)

func NewSpacesClient(ctx context.Context, cfg *cfg.Config) (*SpacesClient, error) {
	if cfg.SpacesKey == "" || cfg.SpacesSecret == "" {
		return nil, fmt.Errorf("spaces credentials not set")
	}
	if cfg.SpacesBucket == "" {
		return nil, fmt.Errorf("spaces bucket name not set")
	}

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(cfg.SpacesRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SpacesKey, cfg.SpacesSecret, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.SpacesEndpoint)
	})
	log.Println("Connected to object storage successfully")

	return &SpacesClient{
		client:  client,
		presign: s3.NewPresignClient(client),
		region:  cfg.SpacesRegion,
		bucket:  cfg.SpacesBucket,
	}, nil
}

// PresignUpload returns a one-hour presigned PUT URL bound to the given
// content type. The byte transfer happens directly between the browser
// and storage; the server never proxies the payload.
func (c *SpacesClient) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := c.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

func (c *SpacesClient) GetFile(ctx context.Context, key string) ([]byte, error) {
	ctxGet, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.GetObject(ctxGet, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage get failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

func (c *SpacesClient) DeleteFile(ctx context.Context, key string) error {
	ctxDel, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.client.DeleteObject(ctxDel, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage delete failed: %w", err)
	}
	return nil
}

// UploadFile does a server-side put and returns the object URL. Used when
// files are staged without a browser holding the presigned URL.
func (c *SpacesClient) UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	uploader := manager.NewUploader(c.client)

	ctxUp, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	_, err := uploader.Upload(ctxUp, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}

	url := fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", c.bucket, c.region, key)
	return url, nil
}
