package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

const (
	// SettingsKey holds the serialized user settings blob.
	SettingsKey = "settings"
	// CyclesKey holds the serialized cycle-record map blob.
	CyclesKey = "cycles"
)

// ErrNotFound is returned by Get for keys that were never written.
var ErrNotFound = errors.New("store: key not found")

// KV is the persistence contract: whole-blob reads and writes over a small
// fixed key namespace.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a KV backed by diskv using the provided config. A nil config
// falls back to LoadConfig.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Get(key string) ([]byte, error) {
	data, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

func (p *persistence) Set(key string, data []byte) error {
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// flatTransform keeps both blobs directly under the base path.
func flatTransform(string) []string { return []string{} }
