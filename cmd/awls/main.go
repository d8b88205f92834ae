// awls lists capture sessions or photos on an AW-5 device.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	awgrab "github.com/airworker/awgrab/pkg/awgrab"
)

var (
	baseURL = flag.String("base", "", "device base URL (default $AWGRAB_BASE_URL)")
	folder  = flag.String("folder", "", "list photos of this folder URL instead of sessions")
	every   = flag.Duration("every", 0, "re-list at this interval (0 = list once)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := awgrab.LoadConfig()
	if *baseURL == "" {
		*baseURL = cfg.BaseURL
	}
	if *baseURL == "" && *folder == "" {
		klog.Exitf("--base or --folder is required")
	}

	c := awgrab.NewClient(cfg.Headers)
	ctx := context.Background()

	for {
		if err := list(ctx, c); err != nil {
			klog.Exitf("list failed: %v", err)
		}
		if *every == 0 {
			return
		}
		time.Sleep(*every)
	}
}

func list(ctx context.Context, c *awgrab.Client) error {
	if *folder != "" {
		images, err := c.ListImages(ctx, *folder)
		if err != nil {
			return err
		}
		for _, i := range images {
			fmt.Printf("%s\t%s\n", i.Name, i.URL)
		}
		return nil
	}

	folders, err := c.ListFolders(ctx, *baseURL)
	if err != nil {
		return err
	}
	for _, f := range folders {
		fmt.Printf("%s\t%s\n", f.Name, f.URL)
	}
	return nil
}
