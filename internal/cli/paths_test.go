package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowtower/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(noCache) error = %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", c)
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache() error = %v", err)
	}
	defer c.Close()
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", c)
	}
	if filepath.Base(fc.Dir()) != appName {
		t.Errorf("Dir() = %q, want to end in %s", fc.Dir(), appName)
	}
}

func TestNewRunnerUsesFileCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, log.InfoLevel)

	r, err := c.newRunner(false)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	if err := r.Cache.Set(ctx, "probe", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	dir, _ := cacheDir()
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Errorf("cache dir %s has no entries (err=%v)", dir, err)
	}
}
