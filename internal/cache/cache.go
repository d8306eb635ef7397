// Package cache provides localized filesystem-based caching for transient remote search results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/where"
)

const TTL = 7 * 24 * time.Hour

func getDir() string {
	dir := filepath.Join(where.Cache(), "remote")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// GenerateKey generates a deterministic SHA-256 hash from a query and provider pair for use as a cache identifier.
func GenerateKey(query, provider string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + provider
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	path := filepath.Join(getDir(), key)
	fs := filesystem.API()

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	contents, err := fs.ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(contents, target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(key string, data interface{}) error {
	path := filepath.Join(getDir(), key)
	tmpPath := path + ".tmp"
	fs := filesystem.API()

	contents, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := fs.WriteFile(tmpPath, contents, os.ModePerm); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		fs := filesystem.API()
		entries, err := fs.ReadDir(getDir())
		if err != nil {
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if time.Since(entry.ModTime()) > TTL {
				_ = fs.Remove(filepath.Join(getDir(), entry.Name()))
			}
		}
	}()
}
