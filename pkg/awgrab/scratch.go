package awgrab

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// staleAfter is how long an abandoned staging directory may linger before
// a sweep removes it.
var staleAfter = 24 * time.Hour

func scratchRoot(root string) string {
	if root == "" {
		return filepath.Join(os.TempDir(), "awgrab")
	}
	return root
}

// newScratch creates a private staging directory for one assembly call, so
// two in-flight calls downloading the same filename never share a temp
// path.
func newScratch(root string) (string, error) {
	root = scratchRoot(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("mkdir scratch root: %w", err)
	}

	dir, err := os.MkdirTemp(root, "stage-")
	if err != nil {
		return "", fmt.Errorf("mkdtemp: %w", err)
	}
	return dir, nil
}

// SweepScratch removes staging directories left behind by crashed or
// killed runs. Directories younger than staleAfter may belong to a live
// assembly and are kept.
func SweepScratch(root string) error {
	root = scratchRoot(root)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	return godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			if !de.IsDir() {
				return nil
			}

			st, err := os.Stat(path)
			if err == nil && time.Since(st.ModTime()) > staleAfter {
				klog.Infof("sweeping stale staging dir %s", path)
				if err := os.RemoveAll(path); err != nil {
					klog.Warningf("sweep %s: %v", path, err)
				}
			}
			return godirwalk.SkipThis
		},
	})
}
