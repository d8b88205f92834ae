// awgrab assembles ZIP archives (or local mirrors) of photos served by an
// AW-5 device, with a flight-metadata sidecar per photo.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"k8s.io/klog/v2"

	awgrab "github.com/airworker/awgrab/pkg/awgrab"
)

var (
	one     = flag.String("one", "", "archive a single photo URL")
	folder  = flag.String("folder", "", "archive every photo of this folder URL")
	folders = flag.String("folders", "", "comma-separated name=url pairs, merged into one archive")
	photos  = flag.String("photos", "", "comma-separated photo URLs, archived under -prefix")
	prefix  = flag.String("prefix", "", "archive path prefix for -photos mode")
	mirror  = flag.String("mirror", "", "mirror this folder URL to -out as a directory instead of a ZIP")
	raw     = flag.String("raw", "", "save a single photo URL as-is to -out")
	out     = flag.String("out", "", "destination path (empty = skip, nothing is written)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := awgrab.LoadConfig()
	client := awgrab.NewClient(cfg.Headers)
	ctx := context.Background()

	if err := awgrab.SweepScratch(cfg.ScratchDir); err != nil {
		klog.Warningf("scratch sweep: %v", err)
	}

	if *raw != "" {
		saveRaw(ctx, client)
		return
	}

	ex, err := awgrab.NewExtractor()
	if err != nil {
		klog.Exitf("exiftool failed: %v", err)
	}
	defer ex.Close()

	a := awgrab.NewAssembler(client, ex, cfg.ScratchDir)

	var res *awgrab.Result
	switch {
	case *one != "":
		skipUnlessOut(awgrab.SuggestImageArchive(*one))
		res, err = a.BuildOne(ctx, *one, *out)
	case *folder != "":
		skipUnlessOut(awgrab.SuggestFolderArchive(*folder))
		res, err = a.BuildFolder(ctx, *folder, *out)
	case *mirror != "":
		res, err = a.Mirror(ctx, *mirror, *out)
	case *folders != "":
		res, err = a.BuildFolders(ctx, parseFolderArgs(*folders), *out)
	case *photos != "":
		res, err = a.BuildPhotos(ctx, splitList(*photos), *prefix, *out)
	default:
		klog.Exitf("one of -one, -folder, -folders, -photos, -mirror or -raw is required")
	}

	if err != nil {
		klog.Exitf("assembly failed: %v", err)
	}
	if res == nil {
		return
	}
	klog.Infof("done: %d photos -> %s", res.Count, res.Path)
}

// skipUnlessOut logs the suggested archive name when the caller gave no
// destination; the assembler then treats the call as cancelled.
func skipUnlessOut(suggested string) {
	if *out == "" {
		klog.Infof("no -out given, skipping (suggested name: %s)", suggested)
	}
}

func saveRaw(ctx context.Context, c *awgrab.Client) {
	data, name, err := c.FetchImage(ctx, *raw)
	if err != nil {
		klog.Exitf("fetch failed: %v", err)
	}
	if *out == "" {
		klog.Infof("no -out given, skipping (suggested name: %s)", name)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		klog.Exitf("write failed: %v", err)
	}
	klog.Infof("saved %s (%d bytes)", *out, len(data))
}

// parseFolderArgs turns "name=url,name=url" into folder entries; a bare
// URL gets its name derived from the last path segment.
func parseFolderArgs(s string) []awgrab.FolderEntry {
	entries := []awgrab.FolderEntry{}
	for _, item := range splitList(s) {
		name, u, ok := strings.Cut(item, "=")
		if !ok {
			u = item
			name = awgrab.SuggestFolderArchive(item)
			name = strings.TrimSuffix(name, "_all.zip")
		}
		entries = append(entries, awgrab.FolderEntry{Name: name, URL: u})
	}
	return entries
}

func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
