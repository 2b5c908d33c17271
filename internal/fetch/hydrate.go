// Package fetch - hydrate.go fills document content from URLs before the
// pipeline runs.
package fetch

import (
	"context"
	"log"

	"github.com/jonathan/style-transfer/internal/types"
)

// HydrateOptions configures document hydration.
type HydrateOptions struct {
	// UseBrowser enables headless browser fallback when plain HTTP
	// fetching yields too little text.
	UseBrowser bool
	Verbose    bool
}

// Hydrator fetches content for documents that carry only a URL.
type Hydrator struct {
	fetcher *CachedFetcher
	opts    HydrateOptions
}

// NewHydrator creates a hydrator with the given fetcher and options.
// A nil fetcher gets a default cached fetcher.
func NewHydrator(fetcher *CachedFetcher, opts HydrateOptions) *Hydrator {
	if fetcher == nil {
		fetcher = NewCachedFetcher(nil)
	}
	return &Hydrator{fetcher: fetcher, opts: opts}
}

// HydrateDocuments fills in Content and Title for documents whose Content
// is empty. Documents that already carry content pass through untouched.
// Fetch failures leave the document as-is rather than failing the run;
// downstream stages fall back to title and metadata for such documents.
func (h *Hydrator) HydrateDocuments(ctx context.Context, documents []types.Document) []types.Document {
	hydrated := make([]types.Document, len(documents))
	for i, doc := range documents {
		hydrated[i] = h.hydrateOne(ctx, doc)
	}
	return hydrated
}

func (h *Hydrator) hydrateOne(ctx context.Context, doc types.Document) types.Document {
	if doc.Content != "" || doc.URL == "" {
		return doc
	}

	result, err := h.fetcher.Fetch(ctx, doc.URL)
	if err != nil {
		if h.opts.Verbose {
			log.Printf("[HYDRATE] Fetch failed for %s: %v", doc.URL, err)
		}
		return doc
	}

	text := result.Text
	title := result.Title

	if h.opts.UseBrowser && ShouldUseBrowser(text) {
		html, berr := BrowserSimple(ctx, doc.URL, h.opts.Verbose)
		if berr == nil {
			platform := DetectPlatform(doc.URL)
			if rendered, terr := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...); terr == nil && len(rendered) > len(text) {
				text = rendered
			}
			if title == "" {
				title = ExtractTitle(html)
			}
		} else if h.opts.Verbose {
			log.Printf("[HYDRATE] Browser fallback failed for %s: %v", doc.URL, berr)
		}
	}

	doc.Content = text
	if doc.Title == "" {
		doc.Title = title
	}
	return doc
}

// HydrateRequest hydrates all documents reachable from a request: every
// reference style's documents and the target content. The request is
// modified in place.
func (h *Hydrator) HydrateRequest(ctx context.Context, request *types.StyleTransferRequest) {
	for i := range request.ReferenceStyle {
		request.ReferenceStyle[i].Documents = h.HydrateDocuments(ctx, request.ReferenceStyle[i].Documents)
	}
	request.TargetContent = h.HydrateDocuments(ctx, request.TargetContent)
}
