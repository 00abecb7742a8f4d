package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/masonry/pkg/masonry"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never hit")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set(ctx, "layout:1", []byte(`{"w":1}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:1")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != `{"w":1}` {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "layout:1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:1"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "layout:1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss after expiry")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("corrupt entry: hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("hit after Clear")
	}
}

func TestFileCacheCanceledContext(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set err = %v, want context.Canceled", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	a, err := HashJSON([]string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON([]string{"y", "x"})
	if a == b {
		t.Error("order should affect the hash")
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	cfg := masonry.DefaultConfig(800)

	lk1 := k.LayoutKey("tiles", LayoutKeyOpts{Profile: "gifs", Config: cfg})
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey prefix: %s", lk1)
	}
	if lk1 != k.LayoutKey("tiles", LayoutKeyOpts{Profile: "gifs", Config: cfg}) {
		t.Error("LayoutKey should be deterministic")
	}

	wider := cfg
	wider.ContainerWidth = 1200
	if lk1 == k.LayoutKey("tiles", LayoutKeyOpts{Profile: "gifs", Config: wider}) {
		t.Error("container width should change the layout key")
	}
	if lk1 == k.LayoutKey("other", LayoutKeyOpts{Profile: "gifs", Config: cfg}) {
		t.Error("tiles hash should change the layout key")
	}

	ak1 := k.ArtifactKey("layout", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("layout", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("format should change the artifact key")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey prefix: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "client:abc:")
	opts := LayoutKeyOpts{Profile: "clips"}

	got := scoped.LayoutKey("h", opts)
	if got != "client:abc:"+inner.LayoutKey("h", opts) {
		t.Errorf("LayoutKey = %s", got)
	}
	if got := NewScopedKeyer(nil, "p:").ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "p:artifact:") {
		t.Errorf("nil inner should default: %s", got)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()
	ctx := context.Background()

	t.Run("retries retryable errors", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return Retryable(errors.New("timeout"))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		calls := 0
		perm := errors.New("bad request")
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return perm
		})
		if !errors.Is(err, perm) || calls != 1 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return Retryable(ErrBackend)
		})
		if !errors.Is(err, ErrBackend) || calls != 3 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	if !IsRetryable(Retryable(errors.New("x"))) {
		t.Error("IsRetryable should see wrapped error")
	}
	if IsRetryable(errors.New("x")) {
		t.Error("plain error is not retryable")
	}
}
