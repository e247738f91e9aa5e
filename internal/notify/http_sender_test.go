package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPSenderValidatesURL(t *testing.T) {
	if _, err := NewHTTPSender("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPSender("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPSenderPostsPushRequest(t *testing.T) {
	var got payload
	var gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender, err := NewHTTPSender(srv.URL+"/base", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sender.Send(context.Background(), model.PaidNotification(12)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/base/notifications/push/send" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if got.Title != "Payment received" || got.Body != "Order #12 is paid" || got.OrderID != 12 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestHTTPSenderErrors(t *testing.T) {
	status := http.StatusInternalServerError
	retryAfter := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	sender, err := NewHTTPSender(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sender.Send(context.Background(), model.CancelledNotification(1)); err == nil {
		t.Fatal("expected error for 500")
	}

	status = http.StatusTooManyRequests
	retryAfter = "3"
	err = sender.Send(context.Background(), model.CancelledNotification(1))
	var limited RateLimitedError
	if !errors.As(err, &limited) || limited.RetryAfter != 3*time.Second {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	if limited.Error() == "" {
		t.Fatal("expected message")
	}
}

func TestHTTPSenderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	sender, err := NewHTTPSender(url, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sender.Send(context.Background(), model.StatusNotification(1, model.OrderStatusReady)); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("expected default, got %s", d)
	}
	if d := parseRetryAfter("7"); d != 7*time.Second {
		t.Fatalf("expected 7s, got %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("expected default, got %s", d)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if d := parseRetryAfter(future); d <= 0 || d > time.Minute {
		t.Fatalf("unexpected duration %s", d)
	}
}
