package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/voicerec-backend/internal/config"
)

// NewFromConfig creates an ObjectStore based on the storage type.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch strings.ToLower(cfg.Type) {
	case config.StorageTypeMemory:
		return NewMemoryStore(cfg.Bucket, cfg.PublicBaseURL), nil
	case config.StorageTypeS3:
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
