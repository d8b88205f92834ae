// awprev fetches one photo from an AW-5 device and writes a resized local
// preview.
package main

import (
	"context"
	"flag"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"k8s.io/klog/v2"

	awgrab "github.com/airworker/awgrab/pkg/awgrab"
)

var (
	out     = flag.String("out", "preview.jpg", "preview destination path")
	maxX    = flag.Int("x", 640, "maximum preview width")
	maxY    = flag.Int("y", 640, "maximum preview height")
	quality = flag.Int("q", 85, "JPEG quality")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if len(flag.Args()) != 1 {
		klog.Exitf("usage: %s [-out path] <image url>", os.Args[0])
	}

	cfg := awgrab.LoadConfig()
	c := awgrab.NewClient(cfg.Headers)

	opts := &awgrab.PreviewOpts{MaxX: *maxX, MaxY: *maxY, Quality: *quality}
	if err := c.Preview(context.Background(), flag.Args()[0], *out, opts); err != nil {
		klog.Exitf("preview failed: %v", err)
	}
}
