package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"surveymatch/internal/survey/models"
	"surveymatch/pkg/platform/sentinel"
)

// CatalogFile reads cluster names and descriptions from a JSON document
// ({"<id>": {"name": ..., "description": ...}}). Files ending in .yaml or .yml
// are decoded as YAML with the same shape.
type CatalogFile struct {
	Path string
}

// NewCatalogFile constructs a file-backed catalog source.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{Path: path}
}

// Catalog decodes the file.
func (c *CatalogFile) Catalog(_ context.Context) (map[string]models.ClusterInfo, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", c.Path, sentinel.ErrNotFound)
		}
		return nil, err
	}

	out := make(map[string]models.ClusterInfo)
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sentinel.ErrMalformed, c.Path, err)
	}
	return out, nil
}

// DefaultCatalogKey is the Redis hash holding the catalog.
const DefaultCatalogKey = "surveymatch:clusters"

// RedisCatalog reads the catalog from a Redis hash whose fields are cluster
// ids and whose values are JSON {"name", "description"} objects.
type RedisCatalog struct {
	client redis.Cmdable
	key    string
}

// NewRedisCatalog constructs a Redis-backed catalog source.
func NewRedisCatalog(client redis.Cmdable, key string) *RedisCatalog {
	if strings.TrimSpace(key) == "" {
		key = DefaultCatalogKey
	}
	return &RedisCatalog{client: client, key: key}
}

// Catalog reads every field of the hash.
func (r *RedisCatalog) Catalog(ctx context.Context) (map[string]models.ClusterInfo, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", r.key, sentinel.ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("hash %s: %w", r.key, sentinel.ErrNotFound)
	}
	out := make(map[string]models.ClusterInfo, len(fields))
	for id, raw := range fields {
		var info models.ClusterInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", sentinel.ErrMalformed, id, err)
		}
		out[id] = info
	}
	return out, nil
}
