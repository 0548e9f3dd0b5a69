package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/tonal/internal/security"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("X-Test")))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("success", func(t *testing.T) {
		data, err := Fetch(context.Background(), srv.URL+"/ok", FetchOptions{
			Headers: map[string]string{"X-Test": "yes"},
		})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		agent, header, _ := strings.Cut(string(data), "|")
		if !strings.HasPrefix(agent, UserAgentName+"/") {
			t.Errorf("User-Agent = %q, want prefix %q", agent, UserAgentName+"/")
		}
		if header != "yes" {
			t.Errorf("X-Test header = %q, want yes", header)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{})
		if !errors.Is(err, ErrStatus) {
			t.Errorf("Fetch() error = %v, want ErrStatus", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 1024})
		if !errors.Is(err, security.ErrSizeLimit) {
			t.Errorf("Fetch() error = %v, want ErrSizeLimit", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		_, err := Fetch(context.Background(), srv.URL+"/slow", FetchOptions{Timeout: 20 * time.Millisecond})
		if err == nil {
			t.Error("Fetch() expected timeout error")
		}
	})
}
