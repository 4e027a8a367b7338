// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
)

const searchJSON = `{"response":{"status":"ok","total":3,"currentPage":1,"pages":1,"results":[
  {"id":"politics/2024/mar/04/a","sectionId":"politics","sectionName":"Politics","webTitle":"Budget day",
   "webUrl":"https://www.theguardian.com/politics/2024/mar/04/a",
   "fields":{"byline":"Jane Doe","wordcount":"1234","firstPublicationDate":"2024-03-04T08:00:00Z"}},
  {"id":"politics/2024/mar/04/b","sectionId":"politics","sectionName":"Politics","webTitle":"No count",
   "fields":{"byline":"John Roe"}},
  {"id":"world/2024/mar/04/c","sectionId":"world","sectionName":"World news","webTitle":"Short one",
   "fields":{"byline":"jane doe and others","wordcount":"300"}}
]}}`

const emptySearchJSON = `{"response":{"status":"ok","total":0,"currentPage":1,"pages":0,"results":[]}}`

// upstream is a scripted content API that records every request.
type upstream struct {
	mu       sync.Mutex
	requests []*http.Request
	status   int
	bodies   map[string]string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.requests = append(u.requests, r)
	u.mu.Unlock()

	if u.status != 0 {
		w.WriteHeader(u.status)
		return
	}
	body, ok := u.bodies[r.URL.Path]
	if !ok {
		body = emptySearchJSON
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func (u *upstream) queries() []url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]url.Values, len(u.requests))
	for i, r := range u.requests {
		out[i] = r.URL.Query()
	}
	return out
}

var fixedNow = time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)

func newRegistry(t *testing.T, up *upstream) *Registry {
	t.Helper()
	ts := httptest.NewServer(up)
	t.Cleanup(ts.Close)
	client := &gateway.Client{BaseURL: ts.URL, APIKey: "test-key", UserAgent: "test/0.1", HTTP: ts.Client()}
	return New(Deps{
		Gateway:  client,
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	})
}

func call(t *testing.T, r *Registry, name, args string) string {
	t.Helper()
	out, err := r.Call(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err)
	return out
}

func TestCatalogue(t *testing.T) {
	r := New(Deps{})
	list := r.List()
	require.Len(t, list, 16)

	seen := map[string]bool{}
	for _, tool := range list {
		assert.False(t, seen[tool.Name], "duplicate %s", tool.Name)
		seen[tool.Name] = true
		assert.NotNil(t, tool.run, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type)
		for _, req := range tool.InputSchema.Required {
			assert.Contains(t, tool.InputSchema.Properties, req, "%s requires undeclared %s", tool.Name, req)
		}
	}

	raw, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"inputSchema"`)
	assert.Contains(t, string(raw), `"maximum":200`)
}

func TestUnknownTool(t *testing.T) {
	_, err := New(Deps{}).Call(context.Background(), "guardian_nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		tool, args, want string
	}{
		{"guardian_search", `{"page_size":300}`, "page_size must be at most 200"},
		{"guardian_search", `{"page_size":"ten"}`, "page_size must be an integer"},
		{"guardian_search", `{"order_by":"random"}`, "order_by must be one of: newest, oldest, relevance"},
		{"guardian_search", `{"from_date":"2024-13-01"}`, "Invalid from_date format: 2024-13-01. Use YYYY-MM-DD format."},
		{"guardian_search", `{"from_date":"2024-05-01","to_date":"2024-04-01"}`, "Invalid date range"},
		{"guardian_get_article", `{}`, "article_id is required"},
		{"guardian_lookback", `{"date":"yesterday"}`, "Invalid date format: yesterday"},
		{"guardian_find_related", `{"article_id":"x","similarity_threshold":11}`, "similarity_threshold must be at most 10"},
		{"guardian_content_timeline", `{"query":"q","from_date":"2024-01-01","to_date":"nope"}`, "Invalid date format. Use YYYY-MM-DD format."},
		{"guardian_content_timeline", `{"query":"q","from_date":"2024-01-01","to_date":"2024-02-01","interval":"year"}`, "interval must be one of"},
		{"guardian_topic_trends", `{"topics":["a","b","c","d","e","f"],"from_date":"2024-01-01","to_date":"2024-02-01"}`, "topics must be at most 5"},
		{"guardian_topic_trends", `{"topics":[],"from_date":"2024-01-01","to_date":"2024-02-01"}`, "topics must be at least 1"},
		{"guardian_author_profile", `{"author":"x","analysis_period":"24"}`, `analysis_period must be a 4-digit year (e.g., "2024")`},
		{"guardian_top_stories_by_date", `{"date":"2024-03-04","story_count":25}`, "story_count must be at most 20"},
		{"guardian_recommend_longreads", `{"count":0,"from_date":"03-04-24"}`, "Invalid from_date format"},
		{"guardian_search_by_length", `{"min_words":500,"max_words":100}`, "min_words 500 is greater than max_words 100"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+" "+tt.args, func(t *testing.T) {
			up := &upstream{}
			r := newRegistry(t, up)
			_, err := r.Call(context.Background(), tt.tool, json.RawMessage(tt.args))
			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Contains(t, argErr.Error(), tt.want)
			assert.Empty(t, up.queries(), "no upstream call on bad arguments")
		})
	}
}

func TestInvertedRangeWrapsSentinel(t *testing.T) {
	r := newRegistry(t, &upstream{})
	_, err := r.Call(context.Background(), "guardian_topic_trends",
		json.RawMessage(`{"topics":["a"],"from_date":"2024-06-01","to_date":"2024-01-01"}`))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGatewayErrorRenderedAsText(t *testing.T) {
	r := newRegistry(t, &upstream{status: http.StatusTooManyRequests})
	out := call(t, r, "guardian_search", `{"query":"x"}`)
	assert.Equal(t, "Error: Rate limit exceeded. Guardian API allows 500 calls per day. Please try again later.", out)
}

func TestSearchDefaults(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/search": searchJSON}}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_search", `{}`)

	assert.True(t, strings.HasPrefix(out, "Found 3 article(s):"))
	q := up.queries()[0]
	assert.Equal(t, "relevance", q.Get("order-by"))
	assert.Equal(t, "20", q.Get("page-size"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "headline,sectionName,webPublicationDate", q.Get("show-fields"))
	assert.False(t, q.Has("q"))
	assert.Equal(t, "test-key", q.Get("api-key"))
}

func TestSearchNormalizesDates(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	call(t, r, "guardian_search", `{"from_date":"2024/03/01","to_date":"03/31/2024","detail_level":"full"}`)

	q := up.queries()[0]
	assert.Equal(t, "2024-03-01", q.Get("from-date"))
	assert.Equal(t, "2024-03-31", q.Get("to-date"))
	assert.Contains(t, q.Get("show-fields"), "body")
}

func TestGetArticleNotFound(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/world/x": `{"response":{"status":"ok"}}`}}
	r := newRegistry(t, up)
	assert.Equal(t, "Article not found.", call(t, r, "guardian_get_article", `{"article_id":"https://www.theguardian.com/world/x"}`))
	assert.Equal(t, "all", up.queries()[0].Get("show-tags"))
}

func TestLookbackEndDefaultsToDate(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	call(t, r, "guardian_lookback", `{"date":"2024-03-04","section":"world"}`)

	q := up.queries()[0]
	assert.Equal(t, "2024-03-04", q.Get("from-date"))
	assert.Equal(t, "2024-03-04", q.Get("to-date"))
	assert.Equal(t, "newest", q.Get("order-by"))
	assert.Equal(t, "world", q.Get("section"))
}

func TestBrowseSectionDaysBack(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	call(t, r, "guardian_browse_section", `{"section":"sport"}`)
	assert.Equal(t, "2025-09-23", up.queries()[0].Get("from-date"))
}

func TestSearchByLength(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/search": searchJSON}}
	r := newRegistry(t, up)

	out := call(t, r, "guardian_search_by_length", `{"min_words":1000}`)
	assert.True(t, strings.HasPrefix(out, "Found 1 article(s) with 1000-∞ words:\n\n**1. Budget day**\n"))
	assert.Contains(t, out, "Word count: 1234\n")
	assert.Equal(t, "newest", up.queries()[0].Get("order-by"))

	out = call(t, r, "guardian_search_by_length", `{"min_words":2000,"max_words":3000}`)
	assert.Equal(t, "No articles found with word count between 2000 and 3000 words.", out)
}

func TestSearchByAuthor(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/search": searchJSON}}
	r := newRegistry(t, up)

	out := call(t, r, "guardian_search_by_author", `{"author":"Jane Doe","query":"budget"}`)
	assert.True(t, strings.HasPrefix(out, "Found 2 article(s) by Jane Doe:"))
	assert.NotContains(t, out, "No count")
	assert.Equal(t, `"Jane Doe" budget`, up.queries()[0].Get("q"))

	out = call(t, r, "guardian_search_by_author", `{"author":"Nobody"}`)
	assert.Equal(t, "No articles found by author 'Nobody'.", out)
}

func TestFindRelatedNoTags(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/world/x": `{"response":{"status":"ok","content":{"id":"world/x","webTitle":"X"}}}`}}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_find_related", `{"article_id":"world/x"}`)
	assert.Equal(t, "Original article has no tags for similarity matching.", out)
}

func TestTopicTrendsQueriesEveryPeriod(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_topic_trends", `{"topics":["brexit","covid"],"from_date":"2024-01-01","to_date":"2024-03-31","interval":"month"}`)

	assert.Contains(t, out, "Comparing: brexit, covid\n")
	qs := up.queries()
	require.Len(t, qs, 6)
	assert.Equal(t, `"brexit"`, qs[0].Get("q"))
	assert.Equal(t, "2024-02-01", qs[1].Get("from-date"))
	assert.Equal(t, "2024-02-29", qs[1].Get("to-date"))
	assert.Equal(t, "1", qs[0].Get("page-size"))
}

func TestTopStoriesEmptyDay(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_top_stories_by_date", `{"date":"2024-03-04","section":"world"}`)
	assert.Equal(t, `No articles found for 2024-03-04 in section "world".`, out)
	assert.Equal(t, "200", up.queries()[0].Get("page-size"))
}

func TestTopStoriesRanks(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/search": searchJSON}}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_top_stories_by_date", `{"date":"2024-03-04","story_count":2}`)
	assert.True(t, strings.HasPrefix(out, "Top 2 Stories for Monday, March 4, 2024:\n"))
	assert.Contains(t, out, "**Budget day**")
}

func TestAuthorProfileDefaultsToLastYear(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_author_profile", `{"author":"Jane Doe"}`)

	assert.Equal(t, `No articles found for author "Jane Doe" in the specified period.`, out)
	q := up.queries()[0]
	assert.Equal(t, "2024-01-01", q.Get("from-date"))
	assert.Equal(t, "2024-12-31", q.Get("to-date"))
	assert.Equal(t, `"Jane Doe"`, q.Get("q"))
}

func TestAuthorProfileYear(t *testing.T) {
	up := &upstream{bodies: map[string]string{"/search": searchJSON}}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_author_profile", `{"author":"Jane Doe","analysis_period":"2024"}`)

	assert.True(t, strings.HasPrefix(out, "Author Profile: Jane Doe (2024-01-01 to 2024-12-31)\n"))
	assert.Contains(t, out, "• Total Articles: 2\n")
}

func TestRecommendLongreadsDefaultWindow(t *testing.T) {
	up := &upstream{}
	r := newRegistry(t, up)
	out := call(t, r, "guardian_recommend_longreads", `{}`)

	assert.Equal(t, "No Long Read articles found since 2025-06-30. Try extending the date range.", out)
	q := up.queries()[0]
	assert.Equal(t, "news/series/the-long-read", q.Get("tag"))
	assert.Equal(t, "50", q.Get("page-size"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-04", "2024-03-04", true},
		{"2024/03/04", "2024-03-04", true},
		{"03/04/2024", "2024-03-04", true},
		{"2024-02-29", "2024-02-29", true},
		{"2023-02-29", "", false},
		{"2024-3-4", "", false},
		{"March 4 2024", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
