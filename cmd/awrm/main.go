// awrm deletes capture-session folders or individual photos from an AW-5
// device. Each target is attempted independently; the exit status reflects
// the aggregate outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	awgrab "github.com/airworker/awgrab/pkg/awgrab"
)

var imagesMode = flag.Bool("images", false, "targets are photo URLs, not session folders")

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if len(flag.Args()) == 0 {
		klog.Exitf("usage: %s [-images] <url> [url ...]", os.Args[0])
	}

	cfg := awgrab.LoadConfig()
	c := awgrab.NewClient(cfg.Headers)

	// Folder DELETEs must be slash-terminated, photo DELETEs must not be.
	res, err := c.DeleteTargets(context.Background(), flag.Args(), nil, !*imagesMode)
	if err != nil {
		klog.Exitf("delete failed: %v", err)
	}

	for _, r := range res.Results {
		switch {
		case r.OK:
			fmt.Printf("ok\t%s\n", r.URL)
		case r.Err != "":
			fmt.Printf("fail\t%s\t%s\n", r.URL, r.Err)
		default:
			fmt.Printf("fail\t%s\tHTTP %d %s\n", r.URL, r.Status, r.Body)
		}
	}

	if !res.OK {
		os.Exit(1)
	}
}
