// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pdiddy/guardian-mcp/internal/authors"
	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/report"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200

	longReadTag = "news/series/the-long-read"

	standardFields  = "headline,standfirst,byline,publication,firstPublicationDate"
	wordCountFields = standardFields + ",wordcount"
	articleFields   = "headline,standfirst,body,byline,publication,firstPublicationDate"
)

// detailFields maps a search detail level to its show-fields value.
var detailFields = map[string]string{
	"minimal":  "headline,sectionName,webPublicationDate",
	"standard": standardFields,
	"full":     articleFields + ",wordcount",
}

// dateWindow parses optional from/to arguments and rejects inverted ranges.
func dateWindow(from, to string) (string, string, error) {
	f, err := optionalDate("from_date", from)
	if err != nil {
		return "", "", err
	}
	t, err := optionalDate("to_date", to)
	if err != nil {
		return "", "", err
	}
	if err := checkRange(f, t); err != nil {
		return "", "", err
	}
	return f, t, nil
}

type searchArgs struct {
	Query            string `json:"query"`
	Section          string `json:"section"`
	Tag              string `json:"tag"`
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
	OrderBy          string `json:"order_by" validate:"omitempty,oneof=newest oldest relevance"`
	PageSize         int    `json:"page_size" validate:"omitempty,min=1,max=200"`
	Page             int    `json:"page" validate:"omitempty,min=1"`
	ShowFields       string `json:"show_fields"`
	ProductionOffice string `json:"production_office" validate:"omitempty,oneof=uk us au"`
	DetailLevel      string `json:"detail_level" validate:"omitempty,oneof=minimal standard full"`
}

func (r *Registry) search(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := dateWindow(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}

	detail := orString(args.DetailLevel, "minimal")
	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"q":                 args.Query,
		"section":           args.Section,
		"tag":               args.Tag,
		"from-date":         from,
		"to-date":           to,
		"order-by":          orString(args.OrderBy, "relevance"),
		"page-size":         orInt(args.PageSize, defaultPageSize),
		"page":              orInt(args.Page, 1),
		"show-fields":       orString(args.ShowFields, detailFields[detail]),
		"production-office": args.ProductionOffice,
	})
	if err != nil {
		return "", err
	}
	pag := page.Pagination()
	return report.Articles(page.Results, &pag, report.ArticleOptions{
		Truncate:  detail != "full",
		MaxLength: report.DefaultMaxLength,
	}), nil
}

type getArticleArgs struct {
	ArticleID  string `json:"article_id" validate:"required"`
	ShowFields string `json:"show_fields"`
	Truncate   bool   `json:"truncate"`
}

func (r *Registry) getArticle(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args getArticleArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	a, err := r.deps.Gateway.GetArticle(ctx, args.ArticleID, gateway.Params{
		"show-fields": orString(args.ShowFields, articleFields),
		"show-tags":   "all",
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return "Article not found.", nil
	}
	if err != nil {
		return "", err
	}
	return report.Articles([]types.Article{a}, nil, report.ArticleOptions{
		Truncate:  args.Truncate,
		MaxLength: report.DefaultMaxLength,
		ShowTags:  true,
	}), nil
}

type longreadArgs struct {
	Query    string `json:"query"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
}

func (r *Registry) longread(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args longreadArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := dateWindow(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}
	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"tag":         longReadTag,
		"q":           args.Query,
		"from-date":   from,
		"to-date":     to,
		"page-size":   orInt(args.PageSize, 10),
		"page":        orInt(args.Page, 1),
		"show-fields": "headline,standfirst,body,byline,thumbnail,publication,firstPublicationDate",
	})
	if err != nil {
		return "", err
	}
	return truncatedList(page), nil
}

type lookbackArgs struct {
	Date     string `json:"date" validate:"required"`
	EndDate  string `json:"end_date"`
	Section  string `json:"section"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
}

func (r *Registry) lookback(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args lookbackArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, err := optionalDate("date", args.Date)
	if err != nil {
		return "", err
	}
	to, err := optionalDate("end_date", args.EndDate)
	if err != nil {
		return "", err
	}
	to = orString(to, from)
	if err := checkRange(from, to); err != nil {
		return "", err
	}

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"from-date":   from,
		"to-date":     to,
		"section":     args.Section,
		"order-by":    "newest",
		"page-size":   orInt(args.PageSize, defaultPageSize),
		"show-fields": standardFields,
	})
	if err != nil {
		return "", err
	}
	return truncatedList(page), nil
}

type browseSectionArgs struct {
	Section  string `json:"section" validate:"required"`
	DaysBack int    `json:"days_back" validate:"omitempty,min=1,max=365"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
}

func (r *Registry) browseSection(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args browseSectionArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from := r.now().AddDate(0, 0, -orInt(args.DaysBack, 7)).UTC().Format(types.DateLayout)
	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"section":     args.Section,
		"from-date":   from,
		"order-by":    "newest",
		"page-size":   orInt(args.PageSize, defaultPageSize),
		"show-fields": standardFields,
	})
	if err != nil {
		return "", err
	}
	return truncatedList(page), nil
}

func (r *Registry) getSections(ctx context.Context, _ *slog.Logger, _ json.RawMessage) (string, error) {
	sections, err := r.deps.Gateway.Sections(ctx)
	if err != nil {
		return "", err
	}
	return report.Sections(sections), nil
}

type searchTagsArgs struct {
	Query    string `json:"query" validate:"required"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
}

func (r *Registry) searchTags(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args searchTagsArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	page, err := r.deps.Gateway.SearchTags(ctx, gateway.Params{
		"q":         args.Query,
		"page-size": orInt(args.PageSize, defaultPageSize),
		"page":      orInt(args.Page, 1),
	})
	if err != nil {
		return "", err
	}
	pag := page.Pagination()
	return report.Tags(page.Results, args.Query, &pag), nil
}

type searchByLengthArgs struct {
	Query    string `json:"query"`
	MinWords int    `json:"min_words" validate:"min=0"`
	MaxWords int    `json:"max_words" validate:"omitempty,min=1"`
	Section  string `json:"section"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	OrderBy  string `json:"order_by" validate:"omitempty,oneof=newest oldest relevance"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
}

func (r *Registry) searchByLength(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args searchByLengthArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := dateWindow(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}
	maxLabel := "∞"
	if args.MaxWords > 0 {
		maxLabel = strconv.Itoa(args.MaxWords)
	}
	if args.MaxWords > 0 && args.MinWords > args.MaxWords {
		return "", argErrorf("Invalid arguments: min_words %d is greater than max_words %d", args.MinWords, args.MaxWords)
	}

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"q":           args.Query,
		"section":     args.Section,
		"from-date":   from,
		"to-date":     to,
		"order-by":    orString(args.OrderBy, "newest"),
		"page-size":   min(orInt(args.PageSize, defaultPageSize), maxPageSize),
		"show-fields": wordCountFields,
	})
	if err != nil {
		return "", err
	}

	var matched []types.Article
	for _, a := range page.Results {
		n, ok := a.WordCount()
		if !ok || n < args.MinWords || (args.MaxWords > 0 && n > args.MaxWords) {
			continue
		}
		matched = append(matched, a)
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No articles found with word count between %d and %s words.", args.MinWords, maxLabel), nil
	}
	header := fmt.Sprintf("Found %d article(s) with %d-%s words:", len(matched), args.MinWords, maxLabel)
	return report.WordCountList(header, matched, nil), nil
}

type searchByAuthorArgs struct {
	Author   string `json:"author" validate:"required"`
	Query    string `json:"query"`
	Section  string `json:"section"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	OrderBy  string `json:"order_by" validate:"omitempty,oneof=newest oldest relevance"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=200"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
}

func (r *Registry) searchByAuthor(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args searchByAuthorArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := dateWindow(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}
	q := `"` + args.Author + `"`
	if args.Query != "" {
		q += " " + args.Query
	}

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"q":           q,
		"section":     args.Section,
		"from-date":   from,
		"to-date":     to,
		"order-by":    orString(args.OrderBy, "newest"),
		"page-size":   orInt(args.PageSize, defaultPageSize),
		"page":        orInt(args.Page, 1),
		"show-fields": wordCountFields,
	})
	if err != nil {
		return "", err
	}

	matched := authors.FilterByByline(page.Results, args.Author)
	if len(matched) == 0 {
		return fmt.Sprintf("No articles found by author '%s'.", args.Author), nil
	}
	pag := page.Pagination()
	header := fmt.Sprintf("Found %d article(s) by %s:", len(matched), args.Author)
	return report.WordCountList(header, matched, &pag), nil
}

type articleTagsArgs struct {
	ArticleID string `json:"article_id" validate:"required"`
}

func (r *Registry) getArticleTags(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args articleTagsArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	a, err := r.deps.Gateway.GetArticle(ctx, args.ArticleID, gateway.Params{
		"show-tags":   "all",
		"show-fields": "headline",
	})
	if errors.Is(err, gateway.ErrNotFound) {
		return "Article not found.", nil
	}
	if err != nil {
		return "", err
	}
	return report.ArticleTags(a), nil
}

func truncatedList(page types.SearchPage) string {
	pag := page.Pagination()
	return report.Articles(page.Results, &pag, report.ArticleOptions{
		Truncate:  true,
		MaxLength: report.DefaultMaxLength,
	})
}
