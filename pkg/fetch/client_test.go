package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		UserAgent:  "test",
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := NewClient(testConfig()).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("unexpected body %q", body)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGetClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewClient(testConfig()).Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 404")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("404 should not be retried, got %d attempts", got)
	}
}

func TestGetExhaustsRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(testConfig()).Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected terminal error after retry budget")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected initial attempt plus 2 retries, got %d", got)
	}
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"test","count":3}`))
	}))
	defer srv.Close()

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := NewClient(testConfig()).GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "test" || out.Count != 3 {
		t.Errorf("unexpected decode result: %+v", out)
	}
}

func TestDownloadCreatesParentsAndLeavesNoPartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("artifact-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "libs", "org", "example", "example-1.0.jar")
	if err := NewClient(testConfig()).Download(context.Background(), srv.URL, dest); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "artifact-bytes" {
		t.Errorf("unexpected content %q", data)
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Error("temporary .part file left behind")
	}
}

func TestDownloadFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "missing.jar")
	if err := NewClient(testConfig()).Download(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("expected download failure")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("failed download left a file behind")
	}
}
