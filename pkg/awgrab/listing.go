package awgrab

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fvbommel/sortorder"
	"k8s.io/klog/v2"
)

// imageExts are the href suffixes treated as photos in a listing.
var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp"}

// FolderEntry is one capture session in the device's directory index.
type FolderEntry struct {
	Name string
	URL  string
}

// ImageEntry is one photo in a folder listing.
type ImageEntry struct {
	Name string
	URL  string
}

// ListFolders fetches baseURL and returns its capture-session folders.
func (c *Client) ListFolders(ctx context.Context, baseURL string) ([]FolderEntry, error) {
	base := EnsureSlash(baseURL)
	body, err := c.Get(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	return ParseFolders(string(body), base)
}

// ListImages fetches folderURL and returns its photos in listing order.
func (c *Client) ListImages(ctx context.Context, folderURL string) ([]ImageEntry, error) {
	base := EnsureSlash(folderURL)
	body, err := c.Get(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	return ParseImages(string(body), base)
}

// ParseFolders extracts session folders from a directory index page,
// dropping noise entries and sorting names with numeric awareness so
// "2" sorts before "10". Unparseable or empty HTML yields an empty list.
func ParseFolders(html string, baseURL string) ([]FolderEntry, error) {
	base, err := url.Parse(EnsureSlash(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base %q: %w", baseURL, err)
	}

	folders := []FolderEntry{}
	eachAnchor(html, baseURL, func(href string, target *url.URL) {
		if !strings.HasSuffix(href, "/") || strings.HasPrefix(href, "../") {
			return
		}

		name := decodeName(strings.TrimSuffix(href, "/"))
		if noiseName(name) {
			klog.V(2).Infof("skipping noise entry %q", name)
			return
		}

		folders = append(folders, FolderEntry{Name: name, URL: base.ResolveReference(target).String()})
	})

	sort.SliceStable(folders, func(i, j int) bool {
		return sortorder.NaturalLess(folders[i].Name, folders[j].Name)
	})

	return folders, nil
}

// ParseImages extracts photos from a directory index page. Document order
// is preserved: it determines archive entry order downstream.
func ParseImages(html string, baseURL string) ([]ImageEntry, error) {
	base, err := url.Parse(EnsureSlash(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base %q: %w", baseURL, err)
	}

	images := []ImageEntry{}
	eachAnchor(html, baseURL, func(href string, target *url.URL) {
		if !isImageHref(href) {
			return
		}
		images = append(images, ImageEntry{Name: decodeName(href), URL: base.ResolveReference(target).String()})
	})

	return images, nil
}

// eachAnchor calls fn for every parseable a[href] in the document.
func eachAnchor(html string, baseURL string, fn func(href string, target *url.URL)) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		klog.Warningf("unparseable listing from %s: %v", baseURL, err)
		return
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" {
			return
		}
		target, err := url.Parse(href)
		if err != nil {
			klog.V(1).Infof("skipping unparseable href %q: %v", href, err)
			return
		}
		fn(href, target)
	})
}

func isImageHref(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// noiseName reports whether a decoded folder name is device noise: hidden
// and underscore-prefixed directories, plus the on-device log folders.
func noiseName(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	lower := strings.ToLower(name)
	return lower == "log" || lower == "logs"
}

func decodeName(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// FileNameFromURL derives an archive filename from the URL's last path
// segment, percent-decoded.
func FileNameFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}

	name := decodeName(path.Base(u.Path))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("no filename in %q", raw)
	}
	return name, nil
}

// SuggestFolderArchive returns the default save name for a whole-folder
// archive, e.g. "01_Oct_all.zip".
func SuggestFolderArchive(folderURL string) string {
	name := "photos"
	if u, err := url.Parse(folderURL); err == nil {
		if base := decodeName(path.Base(strings.TrimSuffix(u.Path, "/"))); base != "" && base != "." && base != "/" {
			name = base
		}
	}
	return name + "_all.zip"
}

// SuggestImageArchive returns the default save name for a single-photo
// archive, e.g. "IMG_0001_one.zip".
func SuggestImageArchive(imageURL string) string {
	name, err := FileNameFromURL(imageURL)
	if err != nil {
		return "photo_one.zip"
	}
	return strings.TrimSuffix(name, path.Ext(name)) + "_one.zip"
}
