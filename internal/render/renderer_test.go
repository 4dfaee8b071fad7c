package render

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNilRendererReportsDisabled(t *testing.T) {
	var r *Renderer
	_, err := r.RenderHTML(context.Background(), "https://example.com")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
	r.Close() // must not panic
}

func TestNewRejectsNegativeParallel(t *testing.T) {
	if _, err := New(Config{MaxParallel: -1}); err == nil {
		t.Fatalf("expected error for negative max parallel")
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	r, err := New(Config{MaxParallel: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()
	if r.cfg.NavigationTimeout != 45*time.Second {
		t.Fatalf("timeout = %v, want default 45s", r.cfg.NavigationTimeout)
	}
}

func TestAcquireRespectsContext(t *testing.T) {
	r, err := New(Config{MaxParallel: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	if err := r.acquire(context.Background()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.acquire(ctx); err == nil {
		t.Fatalf("expected acquire to fail when no slot frees up")
	}
	r.release()
}
