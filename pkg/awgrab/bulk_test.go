package awgrab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestDeleteTargetsIsolatesFailures(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.Path)
		mu.Unlock()

		if strings.HasPrefix(r.URL.Path, "/b/") {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(nil)
	urls := []string{server.URL + "/a", server.URL + "/b", server.URL + "/c"}

	res, err := c.DeleteTargets(context.Background(), urls, nil, true)
	if err != nil {
		t.Fatalf("DeleteTargets failed: %v", err)
	}

	if res.OK {
		t.Error("aggregate OK must be false when a target fails")
	}
	if len(res.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res.Results))
	}
	if len(seen) != 3 {
		t.Errorf("every target must be attempted, saw %d requests", len(seen))
	}

	if !res.Results[0].OK || !res.Results[2].OK {
		t.Errorf("expected a and c to succeed: %+v", res.Results)
	}
	b := res.Results[1]
	if b.OK {
		t.Error("expected b to fail")
	}
	if b.Status != http.StatusInternalServerError || b.Body != "boom" {
		t.Errorf("expected b's status/body recorded, got %d %q", b.Status, b.Body)
	}
}

func TestDeleteTargetsEmpty(t *testing.T) {
	c := NewClient(nil)
	_, err := c.DeleteTargets(context.Background(), nil, nil, true)
	if !errors.Is(err, ErrNoTargets) {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}

func TestDeleteTargetsForcesFolderSlash(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(nil)

	if _, err := c.DeleteTargets(context.Background(), []string{server.URL + "/folder"}, nil, true); err != nil {
		t.Fatalf("folder delete failed: %v", err)
	}
	if _, err := c.DeleteTargets(context.Background(), []string{server.URL + "/f/img.jpg"}, nil, false); err != nil {
		t.Fatalf("image delete failed: %v", err)
	}

	if paths[0] != "/folder/" {
		t.Errorf("folder target must gain a trailing slash, got %q", paths[0])
	}
	if paths[1] != "/f/img.jpg" {
		t.Errorf("image target must stay as-is, got %q", paths[1])
	}
}

func TestDeleteTargetsRecordsTransportError(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	dead.Close()

	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer live.Close()

	c := NewClient(nil)
	res, err := c.DeleteTargets(context.Background(), []string{dead.URL + "/x", live.URL + "/y"}, nil, true)
	if err != nil {
		t.Fatalf("DeleteTargets failed: %v", err)
	}

	if res.OK {
		t.Error("aggregate OK must be false")
	}
	if res.Results[0].OK || res.Results[0].Err == "" {
		t.Errorf("expected transport failure recorded for first target: %+v", res.Results[0])
	}
	if !res.Results[1].OK {
		t.Errorf("expected second target to succeed despite the first: %+v", res.Results[1])
	}
}
