package portal

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Jeffail/gabs"
	"go.uber.org/zap"
)

// LoadCached returns the search result stored in path. If the file does not
// exist, it runs the search and writes the result to path first.
func (c *Client) LoadCached(ctx context.Context, path string, params url.Values) (*gabs.Container, error) {
	if data, err := os.ReadFile(path); err == nil {
		c.logger.Debug("using cached search result", zap.String("path", path))
		parsed, err := gabs.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse cached result %s: %w", path, err)
		}
		return parsed, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read cached result: %w", err)
	}

	result, err := c.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, result.Bytes()); err != nil {
		return nil, err
	}
	c.logger.Info("cached search result",
		zap.String("path", path),
		zap.Int("items", len(result.Data().([]interface{}))))
	return result, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}
