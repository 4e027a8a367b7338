// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the guardian-mcp server:
// the content records returned by the Guardian content API and the derived,
// request-scoped values produced by the analytical components.
package types

import (
	"strconv"
	"strings"
	"time"
)

// TagType classifies a Tag. The content API uses more types than the ones
// declared here; unknown values are kept verbatim.
type TagType string

const (
	TagKeyword     TagType = "keyword"
	TagContributor TagType = "contributor"
	TagSeries      TagType = "series"
	TagSection     TagType = "section"
	TagTone        TagType = "tone"
	TagContentType TagType = "type"
)

// Tag is a hierarchical classification label attached to an article.
type Tag struct {
	// ID is the tag path, e.g. "politics/economy" or "profile/jane-doe".
	ID string `json:"id" yaml:"id"`

	// Type is the tag type (keyword, contributor, series, ...).
	Type TagType `json:"type" yaml:"type"`

	// Title is the display title.
	Title string `json:"web_title" yaml:"web_title"`

	// WebURL is the public page for the tag.
	WebURL string `json:"web_url,omitempty" yaml:"web_url,omitempty"`
}

// Segments returns the number of path segments in the tag id.
func (t Tag) Segments() int {
	if t.ID == "" {
		return 0
	}
	return len(strings.Split(t.ID, "/"))
}

// Fields is the optional field bag requested with show-fields.
type Fields struct {
	Headline    string `json:"headline,omitempty" yaml:"headline,omitempty"`
	Standfirst  string `json:"standfirst,omitempty" yaml:"standfirst,omitempty"`
	Body        string `json:"body,omitempty" yaml:"body,omitempty"`
	Byline      string `json:"byline,omitempty" yaml:"byline,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Publication string `json:"publication,omitempty" yaml:"publication,omitempty"`

	// WordCount is the raw upstream value; it is a string and may be empty
	// or non-numeric.
	WordCount string `json:"wordcount,omitempty" yaml:"wordcount,omitempty"`

	// FirstPublicationDate is zero when the field was not requested.
	FirstPublicationDate time.Time `json:"first_publication_date,omitempty" yaml:"first_publication_date,omitempty"`
}

// Article is a content item. Articles are never mutated once fetched.
type Article struct {
	ID          string    `json:"id" yaml:"id"`
	Type        string    `json:"type,omitempty" yaml:"type,omitempty"`
	SectionID   string    `json:"section_id" yaml:"section_id"`
	SectionName string    `json:"section_name" yaml:"section_name"`
	PublishedAt time.Time `json:"web_publication_date" yaml:"web_publication_date"`
	Title       string    `json:"web_title" yaml:"web_title"`
	WebURL      string    `json:"web_url" yaml:"web_url"`
	APIURL      string    `json:"api_url,omitempty" yaml:"api_url,omitempty"`

	// Fields is nil when no show-fields were requested.
	Fields *Fields `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Tags is in upstream order and may contain duplicate ids.
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Byline returns the byline field or "".
func (a Article) Byline() string {
	if a.Fields == nil {
		return ""
	}
	return a.Fields.Byline
}

// Standfirst returns the standfirst field or "".
func (a Article) Standfirst() string {
	if a.Fields == nil {
		return ""
	}
	return a.Fields.Standfirst
}

// Body returns the HTML body field or "".
func (a Article) Body() string {
	if a.Fields == nil {
		return ""
	}
	return a.Fields.Body
}

// WordCount parses the upstream word count. The second return value is
// false when the field is missing or not a number.
func (a Article) WordCount() (int, bool) {
	if a.Fields == nil || a.Fields.WordCount == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.Fields.WordCount))
	if err != nil {
		return 0, false
	}
	return n, true
}

// FirstPublished returns the first-publication timestamp if it was fetched.
func (a Article) FirstPublished() (time.Time, bool) {
	if a.Fields == nil || a.Fields.FirstPublicationDate.IsZero() {
		return time.Time{}, false
	}
	return a.Fields.FirstPublicationDate, true
}

// TagsOfType returns the tags with the given type, in order.
func (a Article) TagsOfType(t TagType) []Tag {
	var out []Tag
	for _, tag := range a.Tags {
		if tag.Type == t {
			out = append(out, tag)
		}
	}
	return out
}

// Section is a top-level content section.
type Section struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"web_title" yaml:"web_title"`
	WebURL string `json:"web_url" yaml:"web_url"`
}

// Pagination describes where a page sits in a paginated result.
type Pagination struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	Pages       int `json:"pages" yaml:"pages"`
}

// SearchPage is one page of content search results.
type SearchPage struct {
	Total       int       `json:"total" yaml:"total"`
	StartIndex  int       `json:"start_index" yaml:"start_index"`
	PageSize    int       `json:"page_size" yaml:"page_size"`
	CurrentPage int       `json:"current_page" yaml:"current_page"`
	Pages       int       `json:"pages" yaml:"pages"`
	OrderBy     string    `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Results     []Article `json:"results" yaml:"results"`
}

// Pagination returns the page descriptor.
func (p SearchPage) Pagination() Pagination {
	return Pagination{CurrentPage: p.CurrentPage, Pages: p.Pages}
}

// TagPage is one page of tag search results.
type TagPage struct {
	Total       int   `json:"total" yaml:"total"`
	CurrentPage int   `json:"current_page" yaml:"current_page"`
	Pages       int   `json:"pages" yaml:"pages"`
	Results     []Tag `json:"results" yaml:"results"`
}

// Pagination returns the page descriptor.
func (p TagPage) Pagination() Pagination {
	return Pagination{CurrentPage: p.CurrentPage, Pages: p.Pages}
}
