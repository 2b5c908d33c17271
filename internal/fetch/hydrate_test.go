package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/style-transfer/internal/types"
)

func hydrateServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head><title>Fetched Title</title></head><body><main>Fetched body content</main></body></html>`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHydrateDocuments_FillsEmptyContent(t *testing.T) {
	server := hydrateServer(t)
	hydrator := NewHydrator(nil, HydrateOptions{})

	docs := []types.Document{
		{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryTechnical},
	}

	hydrated := hydrator.HydrateDocuments(context.Background(), docs)
	require.Len(t, hydrated, 1)
	assert.Contains(t, hydrated[0].Content, "Fetched body content")
	assert.Equal(t, "Fetched Title", hydrated[0].Title)
}

func TestHydrateDocuments_LeavesExistingContent(t *testing.T) {
	server := hydrateServer(t)
	hydrator := NewHydrator(nil, HydrateOptions{})

	docs := []types.Document{
		{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "Original", Content: "already here"},
	}

	hydrated := hydrator.HydrateDocuments(context.Background(), docs)
	assert.Equal(t, "already here", hydrated[0].Content)
	assert.Equal(t, "Original", hydrated[0].Title)
}

func TestHydrateDocuments_KeepsExistingTitle(t *testing.T) {
	server := hydrateServer(t)
	hydrator := NewHydrator(nil, HydrateOptions{})

	docs := []types.Document{
		{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "My Title"},
	}

	hydrated := hydrator.HydrateDocuments(context.Background(), docs)
	assert.Equal(t, "My Title", hydrated[0].Title)
	assert.NotEmpty(t, hydrated[0].Content)
}

func TestHydrateDocuments_FetchFailureLeavesDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hydrator := NewHydrator(nil, HydrateOptions{})
	docs := []types.Document{
		{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "Unreachable"},
	}

	hydrated := hydrator.HydrateDocuments(context.Background(), docs)
	require.Len(t, hydrated, 1)
	assert.Empty(t, hydrated[0].Content)
	assert.Equal(t, "Unreachable", hydrated[0].Title)
}

func TestHydrateRequest_CoversStylesAndTargets(t *testing.T) {
	server := hydrateServer(t)
	hydrator := NewHydrator(nil, HydrateOptions{})

	request := &types.StyleTransferRequest{
		ReferenceStyle: []types.ReferenceStyle{
			{
				Name: "style",
				Documents: []types.Document{
					{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryCasual},
				},
			},
		},
		Focus: "everything",
		TargetContent: []types.Document{
			{URL: server.URL, Type: types.ContentBlog, Category: types.CategoryTechnical},
		},
	}

	hydrator.HydrateRequest(context.Background(), request)

	assert.Contains(t, request.ReferenceStyle[0].Documents[0].Content, "Fetched body content")
	assert.Contains(t, request.TargetContent[0].Content, "Fetched body content")
}
