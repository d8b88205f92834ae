package awgrab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// Mirror downloads every image of a folder, with sidecars, into destDir as
// a plain directory tree instead of a ZIP. The tree is built in scratch and
// only copied into place once complete, so a failed run leaves destDir
// untouched.
func (a *Assembler) Mirror(ctx context.Context, folderURL string, destDir string) (*Result, error) {
	if destDir == "" {
		klog.Infof("no destination chosen, skipping")
		return nil, nil
	}

	images, err := a.client.ListImages(ctx, folderURL)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrEmptyFolder
	}

	stage, err := newScratch(a.scratch)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	outDir := filepath.Join(stage, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	for _, img := range images {
		name, data, m, err := a.fetchPhoto(ctx, img.URL, stage)
		if err != nil {
			return nil, err
		}

		if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, SidecarName(name)), []byte(Sidecar(m)), 0o644); err != nil {
			return nil, fmt.Errorf("write sidecar for %s: %w", name, err)
		}
	}

	if err := copy.Copy(outDir, destDir); err != nil {
		return nil, fmt.Errorf("move into place: %w", err)
	}

	klog.Infof("mirrored %d photos to %s", len(images), destDir)
	return &Result{Path: destDir, Count: len(images)}, nil
}
