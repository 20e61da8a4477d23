// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source opens a fresh reader over the voter-roll feed
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// HTTPSource fetches the feed with a GET request
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch feed: %s", resp.Status)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string { return s.URL }

// FileSource reads the feed from local disk
type FileSource struct {
	Path string
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	return f, nil
}

func (s *FileSource) String() string { return s.Path }

// S3Config holds the S3 client settings. Credentials come from the default
// AWS chain (env, shared config, instance role).
type S3Config struct {
	Region     string
	Endpoint   string // optional; if set enables custom endpoint (e.g. MinIO)
	PathStyle  bool
	HTTPClient *http.Client            // optional, tests
	Credential aws.CredentialsProvider // optional, tests
}

type s3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the feed from one object
type S3Source struct {
	client s3GetObjectAPI
	bucket string
	key    string
}

// NewS3Source creates an S3 client for the bucket's region
func NewS3Source(ctx context.Context, bucket, key string, cfg S3Config) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 feed needs a bucket and key")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.Credential != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(cfg.Credential))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})
	return &S3Source{client: client, bucket: bucket, key: key}, nil
}

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return out.Body, nil
}

func (s *S3Source) String() string { return "s3://" + s.bucket + "/" + s.key }

// NewSource picks a source from the feed URL scheme: http(s), s3, file or
// a bare path.
func NewSource(ctx context.Context, raw string, s3cfg S3Config) (Source, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return &HTTPSource{URL: raw}, nil
	case "s3":
		return NewS3Source(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), s3cfg)
	case "file":
		return &FileSource{Path: u.Path}, nil
	case "":
		return &FileSource{Path: raw}, nil
	}
	return nil, fmt.Errorf("unsupported feed scheme %q", u.Scheme)
}
