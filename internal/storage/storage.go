package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private files
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize returns the size of a file in bytes
	GetSize(ctx context.Context, path string) (int64, error)

	// List returns every object whose path starts with prefix
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// KeyFromURL maps a public URL back to a path. ok is false for URLs
	// that were not issued by this storage.
	KeyFromURL(url string) (key string, ok bool)
}

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Path string
	Size int64
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	UseSSL     bool   // For S3/R2
	PublicRead bool   // Make files public by default
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		s3, err := NewS3Storage(cfg)
		if err != nil {
			return nil, err
		}
		return NewBreakerStorage(s3, "s3", DefaultBreakerSettings()), nil
	case "cloudflare_r2":
		r2, err := NewCloudflareR2Storage(cfg)
		if err != nil {
			return nil, err
		}
		return NewBreakerStorage(r2, "cloudflare_r2", DefaultBreakerSettings()), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// keyFromBaseURL strips "<base>/" from url.
func keyFromBaseURL(base, url string) (string, bool) {
	if base == "" || url == "" {
		return "", false
	}
	prefix := base
	if prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}
