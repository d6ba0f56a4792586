// Package source loads document bytes from local files or S3 compatible object storage.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gcbaptista/go-ats-scanner/config"
	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
)

// ObjectGetter is the subset of the S3 client used to download documents.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher resolves document URIs to bytes.
// The S3 client is created on first use so local-only callers never touch AWS configuration.
type Fetcher struct {
	storage config.StorageSettings

	once      sync.Once
	client    ObjectGetter
	clientErr error
}

// NewFetcher creates a Fetcher using storage for s3:// URIs.
func NewFetcher(storage config.StorageSettings) *Fetcher {
	return &Fetcher{storage: storage}
}

// NewFetcherWithClient creates a Fetcher that uses client for s3:// URIs.
func NewFetcherWithClient(client ObjectGetter) *Fetcher {
	f := &Fetcher{client: client}
	f.once.Do(func() {})
	return f
}

// Fetch returns the content of uri and a filename hint for MIME detection.
// Supported forms are plain paths, file:// URIs and s3://bucket/key.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, "", ierrors.NewValidationError("uri", "document location is required")
	}

	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, "", err
		}
		data, err := f.download(ctx, bucket, key)
		if err != nil {
			return nil, "", err
		}
		return data, path.Base(key), nil
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, "", fmt.Errorf("invalid file uri %s: %w", uri, err)
		}
		return readFile(u.Path)
	default:
		return readFile(uri)
	}
}

func readFile(p string) ([]byte, string, error) {
	data, err := os.ReadFile(p) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, path.Base(strings.ReplaceAll(p, "\\", "/")), nil
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", ierrors.NewValidationError("uri", "not an s3 uri: "+uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", ierrors.NewValidationError("uri", "s3 uri must look like s3://bucket/key: "+uri)
	}
	return bucket, key, nil
}

func (f *Fetcher) s3Client(ctx context.Context) (ObjectGetter, error) {
	f.once.Do(func() {
		f.client, f.clientErr = newS3Client(ctx, f.storage)
	})
	return f.client, f.clientErr
}

func (f *Fetcher) download(ctx context.Context, bucket, key string) ([]byte, error) {
	client, err := f.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func newS3Client(ctx context.Context, storage config.StorageSettings) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(storage.Region),
	}
	if storage.AccessKeyID != "" && storage.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(storage.AccessKeyID, storage.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(storage.Endpoint)
		}
		o.UsePathStyle = storage.UsePathStyle
	}), nil
}
