// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// multipartThreshold is the size above which uploads go through the
// s3/manager multipart uploader.
const multipartThreshold = 100 * 1024 * 1024

// Client wraps an S3 client for bulk folder uploads.
type Client struct {
	s3 *s3.Client
}

// New builds a Client from static environment credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		cfg.AccessKey,
		cfg.SecretKey,
		cfg.SessionToken,
	))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	opts := func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true // required by most S3-compatible stores
		}
	}

	return &Client{s3: s3.NewFromConfig(awsCfg, opts)}, nil
}

// ProgressHook receives per-file upload notifications.
type ProgressHook struct {
	OnFile func(key string, index, total int)
	OnDone func(files int, bytes int64, took time.Duration)
}

// UploadSummary describes a finished folder upload.
type UploadSummary struct {
	Files int
	Bytes int64
}

// objectKey maps a file inside localDir to its store key under prefix.
func objectKey(prefix, relPath string) string {
	return filepath.ToSlash(filepath.Join(prefix, relPath))
}

// UploadDir walks localDir and uploads every file to bucket under prefix,
// preserving the relative layout. The first failure aborts the upload.
func (c *Client) UploadDir(ctx context.Context, cfg Config, localDir string, hook *ProgressHook) (*UploadSummary, error) {
	var files []string
	err := filepath.Walk(localDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate local directory: %w", err)
	}

	start := time.Now()
	sum := &UploadSummary{}

	for i, path := range files {
		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			return nil, fmt.Errorf("relative path error: %w", err)
		}
		key := objectKey(cfg.Prefix, rel)

		if hook != nil && hook.OnFile != nil {
			hook.OnFile(key, i+1, len(files))
		}

		n, err := c.uploadFile(ctx, cfg.Bucket, key, path)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", rel, err)
		}
		sum.Files++
		sum.Bytes += n
	}

	if hook != nil && hook.OnDone != nil {
		hook.OnDone(sum.Files, sum.Bytes, time.Since(start))
	}
	return sum, nil
}

// uploadFile puts one local file under key, choosing plain PutObject or
// the multipart manager by size.
func (c *Client) uploadFile(ctx context.Context, bucket, key, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file error: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat error: %w", err)
	}
	size := info.Size()

	// Detect content type from the leading bytes.
	header := make([]byte, 512)
	n, _ := file.Read(header)
	mime := http.DetectContentType(header[:n])
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek error: %w", err)
	}

	if size > multipartThreshold {
		_, err = manager.NewUploader(c.s3).Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(mime),
		})
		return size, err
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(mime),
	})
	return size, err
}
