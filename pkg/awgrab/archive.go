package awgrab

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

// forbiddenPathChars are replaced with "_" when a folder name becomes an
// archive path prefix.
const forbiddenPathChars = `\/:*?"<>|`

// Assembler builds ZIP archives out of remote photos and their metadata
// sidecars. Photos are processed strictly one at a time: the device's HTTP
// server is a small embedded thing that parallel fetches would knock over.
type Assembler struct {
	client  *Client
	meta    MetadataReader
	scratch string
}

// NewAssembler returns an assembler staging downloads under scratchRoot.
func NewAssembler(c *Client, meta MetadataReader, scratchRoot string) *Assembler {
	return &Assembler{client: c, meta: meta, scratch: scratchRoot}
}

// Result reports one finished assembly.
type Result struct {
	Path  string
	Count int
}

// BuildOne archives a single remote image plus its sidecar at dest.
func (a *Assembler) BuildOne(ctx context.Context, imageURL string, dest string) (*Result, error) {
	return a.build(ctx, dest, func(ctx context.Context, zw *zip.Writer, stage string) (int, error) {
		if err := a.addPhoto(ctx, zw, imageURL, "", stage); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// BuildFolder archives every image of one folder listing at dest, in
// listing order.
func (a *Assembler) BuildFolder(ctx context.Context, folderURL string, dest string) (*Result, error) {
	return a.build(ctx, dest, func(ctx context.Context, zw *zip.Writer, stage string) (int, error) {
		images, err := a.client.ListImages(ctx, folderURL)
		if err != nil {
			return 0, err
		}
		if len(images) == 0 {
			return 0, ErrEmptyFolder
		}

		for _, img := range images {
			if err := a.addPhoto(ctx, zw, img.URL, "", stage); err != nil {
				return 0, err
			}
		}
		return len(images), nil
	})
}

// BuildFolders merges the images of several folders into one archive, each
// folder's photos under its sanitized name. Folders sharing a sanitized
// name also share a prefix; on a filename clash the later entry wins.
func (a *Assembler) BuildFolders(ctx context.Context, folders []FolderEntry, dest string) (*Result, error) {
	return a.build(ctx, dest, func(ctx context.Context, zw *zip.Writer, stage string) (int, error) {
		count := 0
		for _, f := range folders {
			prefix := SanitizeName(f.Name)
			images, err := a.client.ListImages(ctx, f.URL)
			if err != nil {
				return 0, fmt.Errorf("list %s: %w", f.Name, err)
			}

			for _, img := range images {
				if err := a.addPhoto(ctx, zw, img.URL, prefix, stage); err != nil {
					return 0, err
				}
				count++
			}
		}
		return count, nil
	})
}

// BuildPhotos archives an explicit set of image URLs under one shared
// prefix (usually empty).
func (a *Assembler) BuildPhotos(ctx context.Context, photoURLs []string, prefix string, dest string) (*Result, error) {
	if len(photoURLs) == 0 {
		return nil, ErrNoPhotos
	}

	return a.build(ctx, dest, func(ctx context.Context, zw *zip.Writer, stage string) (int, error) {
		for _, u := range photoURLs {
			if err := a.addPhoto(ctx, zw, u, prefix, stage); err != nil {
				return 0, err
			}
		}
		return len(photoURLs), nil
	})
}

// build runs one assembly: private scratch dir, in-memory archive, then a
// single write to dest. Any error aborts the whole call and dest is left
// untouched. An empty dest means the caller cancelled the save; that is a
// no-op, not an error.
func (a *Assembler) build(ctx context.Context, dest string, fill func(context.Context, *zip.Writer, string) (int, error)) (*Result, error) {
	if dest == "" {
		klog.Infof("no destination chosen, skipping")
		return nil, nil
	}

	stage, err := newScratch(a.scratch)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	count, err := fill(ctx, zw, stage)
	if err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}

	klog.Infof("wrote %d photos to %s (%d bytes)", count, dest, buf.Len())
	return &Result{Path: dest, Count: count}, nil
}

// addPhoto writes one photo and its sidecar into the archive.
func (a *Assembler) addPhoto(ctx context.Context, zw *zip.Writer, imageURL string, prefix string, stage string) error {
	name, data, m, err := a.fetchPhoto(ctx, imageURL, stage)
	if err != nil {
		return err
	}

	if err := writeEntry(zw, archivePath(prefix, name), data); err != nil {
		return err
	}
	return writeEntry(zw, archivePath(prefix, SidecarName(name)), []byte(Sidecar(m)))
}

// fetchPhoto is the shared inner pipeline: fetch the bytes, stage them so
// exiftool can read from disk, then extract the flight metadata.
func (a *Assembler) fetchPhoto(ctx context.Context, imageURL string, stage string) (string, []byte, *FlightMetadata, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, nil, err
	}

	name, err := FileNameFromURL(imageURL)
	if err != nil {
		return "", nil, nil, err
	}

	klog.V(1).Infof("fetching %s", imageURL)
	data, err := a.client.Get(ctx, imageURL)
	if err != nil {
		return "", nil, nil, fmt.Errorf("fetch %s: %w", imageURL, err)
	}

	tmp := filepath.Join(stage, name)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", nil, nil, fmt.Errorf("stage %s: %w", name, err)
	}

	m, err := a.meta.Read(tmp)
	if err != nil {
		return "", nil, nil, fmt.Errorf("metadata for %s: %w", name, err)
	}
	m.FileName = name

	return name, data, m, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

func archivePath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// SanitizeName makes a folder name safe as an archive path prefix.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenPathChars, r) {
			return '_'
		}
		return r
	}, name)
}
