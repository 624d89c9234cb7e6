package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNotifyPayload(t *testing.T) {
	var got payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}
	}))
	defer server.Close()

	n := New(server.URL, 5*time.Second, time.Millisecond)
	err := n.Notify(context.Background(), "Launch Update", "The rocket flew.", "https://example.com/a")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := "*Launch Update*\nThe rocket flew.\n<https://example.com/a|Read the full article>"
	if got.Text != want {
		t.Errorf("Expected payload text %q, got %q", want, got.Text)
	}
}

func TestNotifyNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusInternalServerError)
	}))
	defer server.Close()

	n := New(server.URL, 5*time.Second, time.Millisecond)
	err := n.Notify(context.Background(), "Title", "Preview.", "https://example.com/a")
	if err == nil {
		t.Fatal("Expected error for HTTP 500, got nil")
	}
}

func TestNotifySpacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	interval := 100 * time.Millisecond
	n := New(server.URL, 5*time.Second, interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := n.Notify(context.Background(), "Title", "Preview.", "https://example.com/a"); err != nil {
			t.Fatalf("Notify %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// First message is immediate; the next two must each wait an interval
	if elapsed < 2*interval {
		t.Errorf("Expected at least %v between three messages, took %v", 2*interval, elapsed)
	}
}

func TestNotifyMissingWebhook(t *testing.T) {
	n := New("", 5*time.Second, time.Millisecond)
	if err := n.Notify(context.Background(), "Title", "Preview.", "https://example.com/a"); err == nil {
		t.Error("Expected error for missing webhook URL, got nil")
	}
}
