package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PreviewMetadata is what we scrape off a linked page for its preview card.
type PreviewMetadata struct {
	Title       string
	Description string
	ImageUrl    string
}

// PreviewFetcher pulls open-graph metadata for link previews. It prefers the
// og:* properties and falls back to the plain <title> and description meta
// tags, which covers most pages that bother with either.
type PreviewFetcher struct {
	Client *http.Client
}

func NewPreviewFetcher(timeout time.Duration) *PreviewFetcher {
	return &PreviewFetcher{
		Client: &http.Client{Timeout: timeout},
	}
}

func (f *PreviewFetcher) Fetch(url string) (*PreviewMetadata, error) {
	res, err := f.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview fetch got status %d for %s", res.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	meta := &PreviewMetadata{}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = strings.TrimSpace(title)
	} else {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(desc)
	} else if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(desc)
	}

	if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.ImageUrl = strings.TrimSpace(image)
	}

	return meta, nil
}
