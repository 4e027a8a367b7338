// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders tool results as the Markdown-flavoured text sent
// back to MCP clients. Only this package decides truncation and markup.
package report

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// DefaultMaxLength is the body preview length used when truncating.
const DefaultMaxLength = 500

// maxListedTags bounds the tags printed per article.
const maxListedTags = 10

var strict = bluemonday.StrictPolicy()

// ArticleOptions control how article lists are rendered.
type ArticleOptions struct {
	// Truncate cuts bodies to MaxLength runes and labels them as a preview.
	Truncate  bool
	MaxLength int

	ShowTags bool
}

// StripHTML removes all markup from s and collapses whitespace.
func StripHTML(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}

// Articles renders a generic numbered article list. pag may be nil.
func Articles(articles []types.Article, pag *types.Pagination, opts ArticleOptions) string {
	if len(articles) == 0 {
		return "No articles found matching your criteria."
	}
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d article(s):\n\n", len(articles))
	for i, a := range articles {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(a.Title, "Untitled"))
		writeByline(&b, a)
		writePublished(&b, a)
		if s := a.Standfirst(); s != "" {
			fmt.Fprintf(&b, "Summary: %s\n", s)
		}
		fmt.Fprintf(&b, "Section: %s\n", orDefault(a.SectionName, "Unknown"))
		fmt.Fprintf(&b, "URL: %s\n", orDefault(a.WebURL, "N/A"))
		fmt.Fprintf(&b, "Guardian ID: %s\n", orDefault(a.ID, "N/A"))

		if opts.ShowTags && len(a.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", tagTitles(a.Tags, maxListedTags))
		}

		if raw := a.Body(); raw != "" {
			body := StripHTML(raw)
			if opts.Truncate && utf8.RuneCountInString(body) > maxLen {
				fmt.Fprintf(&b, "Content preview: %s...\n", string([]rune(body)[:maxLen]))
			} else {
				fmt.Fprintf(&b, "Content: %s\n", body)
			}
		}
		b.WriteString("\n")
	}

	if pag != nil && pag.Pages > 1 {
		fmt.Fprintf(&b, "\nPagination: Page %d of %d\n", pag.CurrentPage, pag.Pages)
		if pag.CurrentPage < pag.Pages {
			b.WriteString("Use the 'page' parameter to get more results.\n")
		}
	}
	return b.String()
}

// WordCountList renders a compact list that shows word counts. header is
// the first line; pag may be nil.
func WordCountList(header string, articles []types.Article, pag *types.Pagination) string {
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(a.Title, "Untitled"))
		writeByline(&b, a)
		writePublished(&b, a)
		if a.Fields != nil && a.Fields.WordCount != "" {
			fmt.Fprintf(&b, "Word count: %s\n", a.Fields.WordCount)
		}
		if s := a.Standfirst(); s != "" {
			fmt.Fprintf(&b, "Summary: %s\n", s)
		}
		fmt.Fprintf(&b, "Section: %s\n", orDefault(a.SectionName, "Unknown"))
		fmt.Fprintf(&b, "URL: %s\n\n", orDefault(a.WebURL, "N/A"))
	}
	if pag != nil && pag.Pages > 1 {
		fmt.Fprintf(&b, "\nPagination: Page %d of %d\n", pag.CurrentPage, pag.Pages)
	}
	return b.String()
}

// Tags renders tag search results.
func Tags(tags []types.Tag, query string, pag *types.Pagination) string {
	if len(tags) == 0 {
		return fmt.Sprintf("No tags found matching '%s'.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tag(s) matching '%s':\n\n", len(tags), query)
	for i, t := range tags {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(t.Title, "Unknown"))
		fmt.Fprintf(&b, "ID: %s\n", orDefault(t.ID, "N/A"))
		fmt.Fprintf(&b, "Type: %s\n", orDefault(string(t.Type), "N/A"))
		fmt.Fprintf(&b, "URL: %s\n\n", orDefault(t.WebURL, "N/A"))
	}
	if pag != nil && pag.Pages > 1 {
		fmt.Fprintf(&b, "\nPagination: Page %d of %d\n", pag.CurrentPage, pag.Pages)
	}
	return b.String()
}

// Sections renders the section catalogue.
func Sections(sections []types.Section) string {
	if len(sections) == 0 {
		return "No sections found."
	}
	var b strings.Builder
	b.WriteString("Available Guardian sections:\n\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "**%s**\n", orDefault(s.Title, "Unknown"))
		fmt.Fprintf(&b, "ID: %s\n", orDefault(s.ID, "N/A"))
		fmt.Fprintf(&b, "URL: %s\n\n", orDefault(s.WebURL, "N/A"))
	}
	return b.String()
}

// ArticleTags renders an article's tags grouped by type, in order of first
// appearance.
func ArticleTags(a types.Article) string {
	title := orDefault(a.Title, "Unknown")
	if len(a.Tags) == 0 {
		return fmt.Sprintf("Article \"%s\" has no tags.", title)
	}

	var order []string
	groups := make(map[string][]types.Tag)
	for _, t := range a.Tags {
		typ := orDefault(string(t.Type), "unknown")
		if _, ok := groups[typ]; !ok {
			order = append(order, typ)
		}
		groups[typ] = append(groups[typ], t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tags for \"%s\" (%d total):\n\n", title, len(a.Tags))
	for _, typ := range order {
		fmt.Fprintf(&b, "**%s (%d)**\n", capitalize(typ), len(groups[typ]))
		for _, t := range groups[typ] {
			fmt.Fprintf(&b, "• %s (%s)\n", t.Title, t.ID)
		}
		b.WriteString("\n")
	}
	b.WriteString("These tags are used for similarity matching in guardian_find_related tool.")
	return b.String()
}

func writeByline(b *strings.Builder, a types.Article) {
	if by := a.Byline(); by != "" {
		fmt.Fprintf(b, "By: %s\n", by)
	}
}

func writePublished(b *strings.Builder, a types.Article) {
	if first, ok := a.FirstPublished(); ok {
		fmt.Fprintf(b, "Published: %s\n", first.UTC().Format(types.DateLayout))
	}
}

func tagTitles(tags []types.Tag, limit int) string {
	n := len(tags)
	if n > limit {
		n = limit
	}
	titles := make([]string, n)
	for i := range titles {
		titles[i] = tags[i].Title
	}
	out := strings.Join(titles, ", ")
	if len(tags) > limit {
		out += fmt.Sprintf(" (+%d more)", len(tags)-limit)
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
