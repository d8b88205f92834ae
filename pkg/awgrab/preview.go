package awgrab

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// PreviewOpts bound a preview's size.
type PreviewOpts struct {
	MaxX    int
	MaxY    int
	Quality int
}

var defaultPreviewOpts = PreviewOpts{MaxX: 640, MaxY: 640, Quality: 85}

// Preview fetches a remote image and writes a bounded JPEG preview at
// dest. Images already within bounds keep their size.
func (c *Client) Preview(ctx context.Context, imageURL string, dest string, opts *PreviewOpts) error {
	if opts == nil {
		opts = &defaultPreviewOpts
	}

	data, err := c.Get(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", imageURL, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	x, y := previewSize(img.Bounds().Dx(), img.Bounds().Dy(), opts.MaxX, opts.MaxY)
	rimg := transform.Resize(img, x, y, transform.Lanczos)

	if err := imgio.Save(dest, rimg, imgio.JPEGEncoder(opts.Quality)); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	klog.Infof("wrote %dx%d preview to %s", x, y, dest)
	return nil
}

func previewSize(dx, dy, maxX, maxY int) (int, int) {
	if dx <= maxX && dy <= maxY {
		return dx, dy
	}

	scale := float64(dx) / float64(maxX)
	if s := float64(dy) / float64(maxY); s > scale {
		scale = s
	}
	return int(float64(dx) / scale), int(float64(dy) / scale)
}
