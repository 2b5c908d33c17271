// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"net/url"
	"time"
)

// ContentType identifies the platform a document originates from.
type ContentType string

// Supported content types.
const (
	ContentTwitter   ContentType = "Twitter"
	ContentBlog      ContentType = "Blog"
	ContentLinkedIn  ContentType = "LinkedIn"
	ContentReddit    ContentType = "Reddit"
	ContentFacebook  ContentType = "Facebook"
	ContentInstagram ContentType = "Instagram"
	ContentTikTok    ContentType = "TikTok"
)

// IsValid reports whether the content type is one of the supported values.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTwitter, ContentBlog, ContentLinkedIn, ContentReddit,
		ContentFacebook, ContentInstagram, ContentTikTok:
		return true
	}
	return false
}

// DocumentCategory classifies the register of a document.
type DocumentCategory string

// Supported document categories.
const (
	CategoryCasual       DocumentCategory = "Casual"
	CategoryFormal       DocumentCategory = "Formal"
	CategoryVeryFormal   DocumentCategory = "Very Formal"
	CategoryFunny        DocumentCategory = "Funny"
	CategoryProfessional DocumentCategory = "Professional"
	CategoryTechnical    DocumentCategory = "Technical"
	CategoryCreative     DocumentCategory = "Creative"
	CategoryAcademic     DocumentCategory = "Academic"
	CategoryJournalistic DocumentCategory = "Journalistic"
	CategoryMarketing    DocumentCategory = "Marketing"
)

// IsValid reports whether the category is one of the supported values.
func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryCasual, CategoryFormal, CategoryVeryFormal, CategoryFunny,
		CategoryProfessional, CategoryTechnical, CategoryCreative,
		CategoryAcademic, CategoryJournalistic, CategoryMarketing:
		return true
	}
	return false
}

// FileType identifies the underlying file format of a document, when known.
type FileType string

// Supported file types.
const (
	FileTXT      FileType = "txt"
	FileMarkdown FileType = "markdown"
	FileURL      FileType = "url"
	FilePDF      FileType = "pdf"
	FileDOCX     FileType = "docx"
)

// IsValid reports whether the file type is one of the supported values.
func (f FileType) IsValid() bool {
	switch f {
	case FileTXT, FileMarkdown, FileURL, FilePDF, FileDOCX:
		return true
	}
	return false
}

// Document represents a unit of source material, either a style reference or
// a target to be rewritten. Documents are immutable once constructed.
type Document struct {
	URL           string           `json:"url" validate:"required"`
	Type          ContentType      `json:"type"`
	Category      DocumentCategory `json:"category"`
	FileType      FileType         `json:"file_type,omitempty"`
	Title         string           `json:"title,omitempty"`
	Author        string           `json:"author,omitempty"`
	DatePublished *time.Time       `json:"date_published,omitempty"`
	Content       string           `json:"content,omitempty"`
	Metadata      map[string]any   `json:"metadata,omitempty"`
}

// Validate checks the document's structural invariants.
func (d *Document) Validate() error {
	parsed, err := url.Parse(d.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &InvalidInputError{
			Entity:  "Document",
			Field:   "url",
			Message: "must be a valid absolute URL",
			Cause:   err,
		}
	}
	if !d.Type.IsValid() {
		return &InvalidInputError{
			Entity:  "Document",
			Field:   "type",
			Message: "unknown content type " + string(d.Type),
		}
	}
	if !d.Category.IsValid() {
		return &InvalidInputError{
			Entity:  "Document",
			Field:   "category",
			Message: "unknown category " + string(d.Category),
		}
	}
	if d.FileType != "" && !d.FileType.IsValid() {
		return &InvalidInputError{
			Entity:  "Document",
			Field:   "file_type",
			Message: "unknown file type " + string(d.FileType),
		}
	}
	return nil
}

// NewDocument constructs a validated Document.
func NewDocument(rawURL string, contentType ContentType, category DocumentCategory) (*Document, error) {
	doc := &Document{
		URL:      rawURL,
		Type:     contentType,
		Category: category,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
