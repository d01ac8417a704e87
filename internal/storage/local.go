package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qd-calendar-go/internal/config"
)

// Local stores uploaded files on the local filesystem and serves them
// back under a URL prefix.
type Local struct {
	dir     string
	baseURL string
	allowed map[string]struct{}
	now     func() time.Time
}

func NewLocal(cfg config.UploadConfig) (*Local, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		allowed[ext] = struct{}{}
	}

	return &Local{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		allowed: allowed,
		now:     time.Now,
	}, nil
}

// Allowed reports whether the filename carries a permitted extension.
func (l *Local) Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	_, ok := l.allowed[ext]
	return ok
}

// Save writes the file under a unique name and returns its public URL.
func (l *Local) Save(filename string, src io.Reader) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if _, ok := l.allowed[ext]; !ok {
		return "", fmt.Errorf("storage: extension %q not allowed", ext)
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("storage: generate name: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", l.now().Format("20060102"), hex.EncodeToString(suffix), ext)

	dst, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return l.baseURL + "/" + name, nil
}

// Delete removes the file the URL points at. URLs outside the storage
// prefix are ignored so callers can pass any stored value safely.
func (l *Local) Delete(url string) error {
	if !strings.HasPrefix(url, l.baseURL+"/") {
		return nil
	}
	name := strings.TrimPrefix(url, l.baseURL+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) Dir() string {
	return l.dir
}
