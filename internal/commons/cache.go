package commons

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

const maxCacheSize = 264 * 1024 * 1024 // 264 MiB

// DefaultCacheExpiry is how long cached Commons responses stay valid
const DefaultCacheExpiry = 30 * 24 * time.Hour

var nonKeyChars = regexp.MustCompile("[^a-zA-Z0-9-]")

// Cache stores raw Commons API responses on disk, keyed by request URL
type Cache struct {
	basePath string
	disk     *diskv.Diskv
}

// NewCache opens (or creates) a response cache under basePath and expires
// entries older than maxAge.
func NewCache(basePath string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		basePath: basePath,
		disk: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: advancedTransform,
			InverseTransform:  inverseTransform,
			CacheSizeMax:      maxCacheSize,
		}),
	}

	if err := c.Expire(maxAge); err != nil {
		return nil, err
	}
	return c, nil
}

// Read returns the cached body for uri, if any
func (c *Cache) Read(uri string) ([]byte, bool) {
	key, err := urlToKey(uri)
	if err != nil {
		return nil, false
	}
	val, err := c.disk.Read(key)
	if err != nil || len(val) == 0 {
		return nil, false
	}
	return val, true
}

// Write stores body for uri
func (c *Cache) Write(uri string, body []byte) error {
	key, err := urlToKey(uri)
	if err != nil {
		return err
	}
	return c.disk.Write(key, body)
}

// Expire removes cached files last written before now-maxAge
func (c *Cache) Expire(maxAge time.Duration) error {
	expireBefore := time.Now().Add(-maxAge)

	err := filepath.Walk(c.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.ModTime().Before(expireBefore) {
			slog.Debug("Expiring cached response", "path", path, "modified", info.ModTime())
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to expire cache %s: %w", c.basePath, err)
	}
	return nil
}

func advancedTransform(key string) *diskv.PathKey {
	slice := strings.Split(key, "__")
	last := len(slice) - 1
	return &diskv.PathKey{
		Path:     slice[:last],
		FileName: slice[last],
	}
}

func inverseTransform(pathKey *diskv.PathKey) string {
	return strings.Join(pathKey.Path, "__") + "__" + pathKey.FileName
}

func urlToKey(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse cache key %q: %w", uri, err)
	}

	host := nonKeyChars.ReplaceAllString(u.Host, "")
	path := nonKeyChars.ReplaceAllString(u.Path, "")
	hash := md5.Sum([]byte(uri))

	return fmt.Sprintf("%s__%s__%s", host, path, hex.EncodeToString(hash[:])), nil
}
