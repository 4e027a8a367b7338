// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/pdiddy/guardian-mcp/internal/authors"
	"github.com/pdiddy/guardian-mcp/internal/editorial"
	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/period"
	"github.com/pdiddy/guardian-mcp/internal/recommend"
	"github.com/pdiddy/guardian-mcp/internal/related"
	"github.com/pdiddy/guardian-mcp/internal/report"
	"github.com/pdiddy/guardian-mcp/internal/trends"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// analysisPageSize is the page size for tools that analyse a single page of
// up to the upstream maximum.
const analysisPageSize = 200

const popularTopicCount = 5

var yearPattern = regexp.MustCompile(`^\d{4}$`)

type findRelatedArgs struct {
	ArticleID           string `json:"article_id" validate:"required"`
	SimilarityThreshold int    `json:"similarity_threshold" validate:"omitempty,min=1,max=10"`
	ExcludeSameSection  bool   `json:"exclude_same_section"`
	MaxDaysOld          int    `json:"max_days_old" validate:"omitempty,min=1"`
	PageSize            int    `json:"page_size" validate:"omitempty,min=1,max=50"`
}

func (r *Registry) findRelated(ctx context.Context, log *slog.Logger, raw json.RawMessage) (string, error) {
	var args findRelatedArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	engine := related.Engine{Source: r.deps.Gateway, Pacer: r.deps.Pacer, Logger: log}
	res, err := engine.Find(ctx, related.Options{
		ArticleID:          args.ArticleID,
		Threshold:          args.SimilarityThreshold,
		ExcludeSameSection: args.ExcludeSameSection,
		MaxDaysOld:         args.MaxDaysOld,
		PageSize:           args.PageSize,
	})
	switch {
	case errors.Is(err, related.ErrNotFound),
		errors.Is(err, related.ErrNoTags),
		errors.Is(err, related.ErrNoSimilarityBasis):
		return err.Error(), nil
	case err != nil:
		return "", err
	}
	return report.Related(res), nil
}

type timelineArgs struct {
	Query    string `json:"query" validate:"required"`
	FromDate string `json:"from_date" validate:"required"`
	ToDate   string `json:"to_date" validate:"required"`
	Interval string `json:"interval" validate:"omitempty,oneof=day week month quarter"`
	Section  string `json:"section"`
}

func (r *Registry) contentTimeline(ctx context.Context, log *slog.Logger, raw json.RawMessage) (string, error) {
	var args timelineArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := requiredRange(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}
	g, err := types.ParseGranularity(orString(args.Interval, string(types.Month)), period.TimelineGranularities...)
	if err != nil {
		return "", &ArgumentError{Msg: "Invalid arguments: " + err.Error(), Err: err}
	}

	analyzer := trends.Analyzer{Source: r.deps.Gateway, Pacer: r.deps.Pacer, Logger: log}
	tl, err := analyzer.Timeline(ctx, trends.TimelineQuery{
		Query:       args.Query,
		Section:     args.Section,
		From:        from,
		To:          to,
		Granularity: g,
	})
	if err != nil {
		return "", err
	}
	return report.Timeline(tl), nil
}

type authorProfileArgs struct {
	Author         string `json:"author" validate:"required"`
	AnalysisPeriod string `json:"analysis_period"`
	FromDate       string `json:"from_date"`
	ToDate         string `json:"to_date"`
}

// window resolves the analysis window: a year when only analysis_period is
// given, an explicit range when both dates are given, otherwise last year.
func (a authorProfileArgs) window(now time.Time) (time.Time, time.Time, error) {
	switch {
	case a.AnalysisPeriod != "" && a.FromDate == "" && a.ToDate == "":
		if !yearPattern.MatchString(a.AnalysisPeriod) {
			return time.Time{}, time.Time{}, argErrorf(`analysis_period must be a 4-digit year (e.g., "2024")`)
		}
		year, _ := strconv.Atoi(a.AnalysisPeriod)
		return yearBounds(year)
	case a.FromDate != "" && a.ToDate != "":
		return requiredRange(a.FromDate, a.ToDate)
	default:
		return yearBounds(now.Year() - 1)
	}
}

func yearBounds(year int) (time.Time, time.Time, error) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC), nil
}

func (r *Registry) authorProfile(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args authorProfileArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := args.window(r.now())
	if err != nil {
		return "", err
	}

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"q":           `"` + args.Author + `"`,
		"from-date":   from.Format(types.DateLayout),
		"to-date":     to.Format(types.DateLayout),
		"page-size":   analysisPageSize,
		"show-fields": "headline,byline,firstPublicationDate,wordcount,standfirst",
		"show-tags":   "keyword,type",
		"order-by":    "newest",
	})
	if err != nil {
		return "", err
	}

	matched := authors.FilterByByline(page.Results, args.Author)
	if len(matched) == 0 {
		return fmt.Sprintf("No articles found for author \"%s\" in the specified period.", args.Author), nil
	}
	return report.AuthorProfile(args.Author, from, to, authors.Build(matched)), nil
}

type topicTrendsArgs struct {
	Topics   []string `json:"topics" validate:"required,min=1,max=5,dive,required"`
	FromDate string   `json:"from_date" validate:"required"`
	ToDate   string   `json:"to_date" validate:"required"`
	Interval string   `json:"interval" validate:"omitempty,oneof=month quarter year"`
}

func (r *Registry) topicTrends(ctx context.Context, log *slog.Logger, raw json.RawMessage) (string, error) {
	var args topicTrendsArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	from, to, err := requiredRange(args.FromDate, args.ToDate)
	if err != nil {
		return "", err
	}
	g, err := types.ParseGranularity(orString(args.Interval, string(types.Quarter)), period.TrendGranularities...)
	if err != nil {
		return "", &ArgumentError{Msg: "Invalid arguments: " + err.Error(), Err: err}
	}

	analyzer := trends.Analyzer{Source: r.deps.Gateway, Pacer: r.deps.Pacer, Logger: log}
	rep, err := analyzer.Analyze(ctx, args.Topics, from, to, g)
	if errors.Is(err, trends.ErrTopicCount) {
		return "", &ArgumentError{Msg: "Invalid arguments: " + err.Error(), Err: err}
	}
	if err != nil {
		return "", err
	}
	return report.TopicTrends(rep), nil
}

type topStoriesArgs struct {
	Date       string `json:"date" validate:"required"`
	StoryCount int    `json:"story_count" validate:"omitempty,min=1,max=20"`
	Section    string `json:"section"`
}

func (r *Registry) topStoriesByDate(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args topStoriesArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	day, err := dateArg("date", args.Date)
	if err != nil {
		return "", err
	}
	date := day.Format(types.DateLayout)

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"from-date":   date,
		"to-date":     date,
		"section":     args.Section,
		"page-size":   analysisPageSize,
		"show-fields": "headline,standfirst,byline,wordcount,firstPublicationDate",
		"show-tags":   "keyword,type",
		"order-by":    "newest",
	})
	if err != nil {
		return "", err
	}
	if len(page.Results) == 0 {
		if args.Section != "" {
			return fmt.Sprintf("No articles found for %s in section \"%s\".", date, args.Section), nil
		}
		return fmt.Sprintf("No articles found for %s.", date), nil
	}

	count := orInt(args.StoryCount, 10)
	ranked := editorial.Scorer{Location: r.location()}.ScoreDay(page.Results)
	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return report.TopStories(day, args.Section, count, ranked, editorial.Summarize(page.Results, ranked)), nil
}

type recommendArgs struct {
	Count           int    `json:"count" validate:"omitempty,min=1,max=10"`
	Context         string `json:"context"`
	FromDate        string `json:"from_date"`
	TopicPreference string `json:"topic_preference"`
}

func (r *Registry) recommendLongreads(ctx context.Context, _ *slog.Logger, raw json.RawMessage) (string, error) {
	var args recommendArgs
	if err := r.args.decode(raw, &args); err != nil {
		return "", err
	}
	now := r.now()
	from, err := optionalDate("from_date", args.FromDate)
	if err != nil {
		return "", err
	}
	from = orString(from, now.AddDate(0, -3, 0).UTC().Format(types.DateLayout))

	page, err := r.deps.Gateway.Search(ctx, gateway.Params{
		"tag":         longReadTag,
		"from-date":   from,
		"page-size":   50,
		"show-fields": "headline,standfirst,byline,wordcount,firstPublicationDate,body",
		"show-tags":   "keyword,type,contributor",
		"order-by":    "newest",
	})
	if err != nil {
		return "", err
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No Long Read articles found since %s. Try extending the date range.", from), nil
	}

	profile := recommend.AnalyzeContext(args.Context, args.TopicPreference)
	scorer := recommend.Scorer{Now: func() time.Time { return now }}
	recs := scorer.Rank(page.Results, profile, orInt(args.Count, 3))
	return report.Longreads(profile, recs, recommend.PopularTopics(page.Results, popularTopicCount)), nil
}

// requiredRange parses both bounds of a mandatory date range.
func requiredRange(from, to string) (time.Time, time.Time, error) {
	f, err := ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, &ArgumentError{Msg: "Invalid date format. Use YYYY-MM-DD format.", Err: err}
	}
	t, err := ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, &ArgumentError{Msg: "Invalid date format. Use YYYY-MM-DD format.", Err: err}
	}
	if err := checkRange(f.Format(types.DateLayout), t.Format(types.DateLayout)); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return f, t, nil
}
