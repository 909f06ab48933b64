package storage

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/imagetool/internal/config"
)

// NewUploader creates the Uploader selected by cfg.Kind.
func NewUploader(cfg config.StorageConfig) (Uploader, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", "local":
		s, err := NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		s, err := NewS3Storage(&S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Prefix:    cfg.S3.Prefix,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
}
