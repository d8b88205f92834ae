package awgrab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSurfacesHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(nil)
	_, err := c.Get(context.Background(), server.URL+"/missing.jpg")

	var rfe *RemoteFetchError
	if !errors.As(err, &rfe) {
		t.Fatalf("expected RemoteFetchError, got %v", err)
	}
	if rfe.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rfe.Status)
	}
}

func TestGetTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClient(nil)
	_, err := c.Get(context.Background(), server.URL)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestGetSendsConfiguredHeaders(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Api-Key")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := NewClient(map[string]string{"X-Api-Key": "secret"})
	if _, err := c.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "secret" {
		t.Errorf("expected configured header to be sent, got %q", got)
	}
}

func TestDeleteIdentifiesItself(t *testing.T) {
	var method, requestedByHdr, extra string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		requestedByHdr = r.Header.Get("X-Requested-By")
		extra = r.Header.Get("X-Extra")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(nil)
	status, body, err := c.Delete(context.Background(), server.URL+"/f/", map[string]string{"X-Extra": "1"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if method != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", method)
	}
	if requestedByHdr != "AW-5-UI" {
		t.Errorf("expected X-Requested-By 'AW-5-UI', got %q", requestedByHdr)
	}
	if extra != "1" {
		t.Errorf("expected caller header to pass through, got %q", extra)
	}
	if status != http.StatusOK || body != "" {
		t.Errorf("expected (200, empty body), got (%d, %q)", status, body)
	}
}

func TestDeleteCapturesFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("read-only mode"))
	}))
	defer server.Close()

	c := NewClient(nil)
	status, body, err := c.Delete(context.Background(), server.URL+"/f/", nil)

	var rfe *RemoteFetchError
	if !errors.As(err, &rfe) {
		t.Fatalf("expected RemoteFetchError, got %v", err)
	}
	if status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", status)
	}
	if body != "read-only mode" {
		t.Errorf("expected failure body, got %q", body)
	}
}

func TestEnsureSlash(t *testing.T) {
	if got := EnsureSlash("http://h/8000"); got != "http://h/8000/" {
		t.Errorf("expected slash appended, got %q", got)
	}
	if got := EnsureSlash("http://h/8000/"); got != "http://h/8000/" {
		t.Errorf("expected url unchanged, got %q", got)
	}
}
