// Package awgrab browses the AW-5 flight camera's HTTP directory listing,
// offloads capture sessions into ZIP archives with flight-metadata sidecars,
// and deletes sessions from the device.
package awgrab

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the awgrab commands.
type Config struct {
	BaseURL    string
	ScratchDir string
	Headers    map[string]string
}

// LoadConfig reads defaults from the environment, including a .env file
// when one is present in the working directory.
func LoadConfig() *Config {
	_ = godotenv.Load()

	scratch := os.Getenv("AWGRAB_SCRATCH_DIR")
	if scratch == "" {
		scratch = filepath.Join(os.TempDir(), "awgrab")
	}

	return &Config{
		BaseURL:    os.Getenv("AWGRAB_BASE_URL"),
		ScratchDir: scratch,
		Headers:    parseHeaders(os.Getenv("AWGRAB_HEADERS")),
	}
}

// parseHeaders parses "Name: value; Other: value" pairs.
func parseHeaders(s string) map[string]string {
	headers := map[string]string{}
	for _, pair := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			headers[k] = strings.TrimSpace(v)
		}
	}
	return headers
}
