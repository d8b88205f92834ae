package awgrab

import "testing"

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("X-Api-Key: secret; X-Requested-With : cli")
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d: %+v", len(headers), headers)
	}
	if headers["X-Api-Key"] != "secret" {
		t.Errorf("expected trimmed value 'secret', got %q", headers["X-Api-Key"])
	}
	if headers["X-Requested-With"] != "cli" {
		t.Errorf("expected trimmed key/value, got %+v", headers)
	}

	if got := parseHeaders(""); len(got) != 0 {
		t.Errorf("expected no headers for empty input, got %+v", got)
	}
	if got := parseHeaders("garbage"); len(got) != 0 {
		t.Errorf("expected no headers for pair without colon, got %+v", got)
	}
}
