package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/textcrawl/textcrawl/internal/model"
)

// TestFetch tests successful fetches and failure classification.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and final URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>Hello</body></html>`)) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(WithHTTPClient(server.Client()))
		result, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(string(result.Body), "Hello") {
			t.Errorf("body = %q, want to contain Hello", result.Body)
		}
		if result.FinalURL != server.URL {
			t.Errorf("FinalURL = %q, want %q", result.FinalURL, server.URL)
		}
		if result.StatusCode != http.StatusOK {
			t.Errorf("StatusCode = %d, want 200", result.StatusCode)
		}
	})

	t.Run("follows redirects and reports the final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/moved", http.StatusFound)
		})
		mux.HandleFunc("/moved", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body>Moved</body></html>`)) //nolint:errcheck
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewClient(WithHTTPClient(server.Client()))
		result, err := client.Fetch(context.Background(), server.URL+"/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FinalURL != server.URL+"/moved" {
			t.Errorf("FinalURL = %q, want %q", result.FinalURL, server.URL+"/moved")
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(WithHTTPClient(server.Client()))
		_, err := client.Fetch(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected error for 404 response")
		}

		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Fatalf("error is %T, want *Error", err)
		}
		if fetchErr.Kind != model.ErrorKindHTTPStatus {
			t.Errorf("Kind = %v, want ErrorKindHTTPStatus", fetchErr.Kind)
		}
		if fetchErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", fetchErr.StatusCode)
		}
	})

	t.Run("slow server classified as timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte("late")) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(WithHTTPClient(server.Client()), WithTimeout(50*time.Millisecond))
		_, err := client.Fetch(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected timeout error")
		}

		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Fatalf("error is %T, want *Error", err)
		}
		if fetchErr.Kind != model.ErrorKindTimeout {
			t.Errorf("Kind = %v, want ErrorKindTimeout", fetchErr.Kind)
		}
	})

	t.Run("connection refused classified as connection failure", func(t *testing.T) {
		t.Parallel()

		// A server that is closed immediately leaves a port nothing
		// listens on.
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		deadURL := server.URL
		server.Close()

		client := NewClient(WithTimeout(2 * time.Second))
		_, err := client.Fetch(context.Background(), deadURL)
		if err == nil {
			t.Fatal("expected connection error")
		}

		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Fatalf("error is %T, want *Error", err)
		}
		if fetchErr.Kind != model.ErrorKindConnectionFailed {
			t.Errorf("Kind = %v, want ErrorKindConnectionFailed", fetchErr.Kind)
		}
	})

	t.Run("malformed URL classified as other", func(t *testing.T) {
		t.Parallel()

		client := NewClient()
		_, err := client.Fetch(context.Background(), "http://bad url with spaces")
		if err == nil {
			t.Fatal("expected error for malformed URL")
		}

		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Fatalf("error is %T, want *Error", err)
		}
		if fetchErr.Kind != model.ErrorKindOther {
			t.Errorf("Kind = %v, want ErrorKindOther", fetchErr.Kind)
		}
	})

	t.Run("body read is capped", func(t *testing.T) {
		t.Parallel()

		big := strings.Repeat("x", 4096)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(big)) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(WithHTTPClient(server.Client()), WithMaxBodySize(1024))
		result, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Body) != 1024 {
			t.Errorf("len(Body) = %d, want 1024", len(result.Body))
		}
	})
}

// TestFetchSendsUserAgent tests that the configured User-Agent reaches
// the server.
func TestFetchSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok")) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()), WithUserAgent("TestBot/1.0"))
	if _, err := client.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "TestBot/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "TestBot/1.0")
	}
}

// TestErrorString tests the formatted error messages.
func TestErrorString(t *testing.T) {
	t.Parallel()

	statusErr := &Error{Kind: model.ErrorKindHTTPStatus, URL: "http://x.test/", StatusCode: 503}
	if !strings.Contains(statusErr.Error(), "503") {
		t.Errorf("status error %q does not mention the code", statusErr.Error())
	}

	timeoutErr := &Error{Kind: model.ErrorKindTimeout, URL: "http://x.test/", cause: context.DeadlineExceeded}
	if !strings.Contains(timeoutErr.Error(), "timeout") {
		t.Errorf("timeout error %q does not mention timeout", timeoutErr.Error())
	}
	if !errors.Is(timeoutErr, context.DeadlineExceeded) {
		t.Error("Unwrap chain does not reach the cause")
	}
}
