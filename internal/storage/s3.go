// Package storage uploads media assets (press photos, performance
// photos, client logos, the tech rider PDF) to an S3-compatible bucket
// and hands back public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mixtapemassey/site/internal/config"
)

// Kind selects the destination directory inside the bucket.
type Kind string

const (
	KindPress       Kind = "press"
	KindPerformance Kind = "performance"
	KindLogo        Kind = "logos"
	KindRider       Kind = "riders"
)

// ErrTooLarge is returned when an upload exceeds MaxUploadBytes.
var ErrTooLarge = fmt.Errorf("file exceeds the upload size limit")

// MaxUploadBytes caps a single upload at 20 MiB.
const MaxUploadBytes = 20 << 20

// Result describes a stored object.
type Result struct {
	Key       string `json:"file_path"`
	PublicURL string `json:"public_url"`
}

// Store wraps an S3 client for one bucket.
type Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
	nowFunc    func() time.Time
}

// NewStore builds a Store from configuration.  It returns nil when no
// bucket is configured; callers treat a nil Store as uploads disabled.
func NewStore(cfg config.Config) *Store {
	if cfg.S3Bucket == "" {
		return nil
	}
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.S3AccessKey,
				SecretAccessKey: cfg.S3SecretKey,
			}, nil
		}),
	}
	if cfg.S3Endpoint != "" {
		// MinIO and friends need a fixed endpoint and path-style keys.
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return &Store{
		client:     s3.New(opts),
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimRight(cfg.S3PublicBase, "/"),
		nowFunc:    time.Now,
	}
}

// Upload stores the file under <kind>/<unix-ms>-<sanitized-name> and
// returns the object key and public URL.
func (s *Store) Upload(ctx context.Context, kind Kind, filename, contentType string, size int64, r io.Reader) (Result, error) {
	if size > MaxUploadBytes {
		return Result{}, ErrTooLarge
	}
	key := fmt.Sprintf("%s/%d-%s", kind, s.nowFunc().UnixMilli(), sanitizeFileName(filename))

	body := io.LimitReader(r, MaxUploadBytes+1)
	data, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return Result{}, ErrTooLarge
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return Result{}, fmt.Errorf("s3 upload failed: %w", err)
	}
	return Result{Key: key, PublicURL: s.publicBase + "/" + key}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9-_]+`)
var dashRuns = regexp.MustCompile(`-{2,}`)

// sanitizeFileName lowercases the base name, collapses anything outside
// [a-z0-9-_] to single dashes and keeps the extension.
func sanitizeFileName(original string) string {
	name, ext := original, ""
	if i := strings.LastIndex(original, "."); i != -1 {
		name, ext = original[:i], strings.ToLower(original[i:])
	}
	safe := strings.ToLower(name)
	safe = unsafeChars.ReplaceAllString(safe, "-")
	safe = dashRuns.ReplaceAllString(safe, "-")
	safe = strings.Trim(safe, "-")
	return safe + ext
}
