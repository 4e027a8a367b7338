// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

// Schema is the JSON Schema advertised for a tool's arguments.
type Schema struct {
	Type       string              `json:"type" yaml:"type"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
	Required   []string            `json:"required,omitempty" yaml:"required,omitempty"`
}

// Property describes one argument.
type Property struct {
	Type        string    `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *int      `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *int      `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Items       *Property `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems    *int      `json:"minItems,omitempty" yaml:"min_items,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty" yaml:"max_items,omitempty"`
}

func object(required []string, props map[string]Property) Schema {
	if props == nil {
		props = map[string]Property{}
	}
	return Schema{Type: "object", Properties: props, Required: required}
}

func str(desc string, enum ...string) Property {
	return Property{Type: "string", Description: desc, Enum: enum}
}

func boolean(desc string) Property {
	return Property{Type: "boolean", Description: desc}
}

// integer declares an integer bounded below by min. A max of 0 leaves it
// unbounded above.
func integer(desc string, min, max int) Property {
	p := Property{Type: "integer", Description: desc, Minimum: bound(min)}
	if max > 0 {
		p.Maximum = bound(max)
	}
	return p
}

func bound(n int) *int { return &n }

var orderBy = []string{"newest", "oldest", "relevance"}

const (
	descFromDate = "Start date (YYYY-MM-DD format)"
	descToDate   = "End date (YYYY-MM-DD format)"
	descPage     = "Page number (default: 1)"
)

// catalog returns the static tool descriptions, in advertised order.
func catalog() []Tool {
	return []Tool{
		{
			Name:        "guardian_search",
			Description: "Search Guardian articles with flexible filtering options",
			InputSchema: object(nil, map[string]Property{
				"query":             str("Search terms (can be empty to browse all content)"),
				"section":           str("Filter by section ID (get available sections via guardian_get_sections)"),
				"tag":               str("Filter by tag (over 50,000 available tags)"),
				"from_date":         str(descFromDate),
				"to_date":           str(descToDate),
				"order_by":          str("Sort order: 'newest', 'oldest', 'relevance' (default: 'relevance')", orderBy...),
				"page_size":         integer("Results per page, max 200 (default: 20)", 1, 200),
				"page":              integer(descPage, 1, 0),
				"show_fields":       str("Comma-separated fields to include (headline,standfirst,body,byline,thumbnail,publication)"),
				"production_office": str("Filter by office: 'uk', 'us', 'au'", "uk", "us", "au"),
				"detail_level":      str("Response detail level: 'minimal' (fast, default), 'standard', 'full' (complete)", "minimal", "standard", "full"),
			}),
		},
		{
			Name:        "guardian_get_article",
			Description: "Retrieve full content of a specific Guardian article",
			InputSchema: object([]string{"article_id"}, map[string]Property{
				"article_id":  str(`The Guardian article ID or full URL (e.g., "politics/2024/dec/01/example" or "https://www.theguardian.com/politics/2024/dec/01/example")`),
				"show_fields": str("Fields to include (default: headline,standfirst,body,byline,publication,firstPublicationDate)"),
				"truncate":    boolean("Whether to truncate content to preview length (default: false for full content)"),
			}),
		},
		{
			Name:        "guardian_longread",
			Description: "Search specifically for articles from The Long Read series",
			InputSchema: object(nil, map[string]Property{
				"query":     str("Search terms within Long Read articles"),
				"from_date": str(descFromDate),
				"to_date":   str(descToDate),
				"page_size": integer("Results per page, max 200 (default: 10)", 1, 200),
				"page":      integer(descPage, 1, 0),
			}),
		},
		{
			Name:        "guardian_lookback",
			Description: "Find top stories from a specific date or date range",
			InputSchema: object([]string{"date"}, map[string]Property{
				"date":      str("Specific date (YYYY-MM-DD) or start of range"),
				"end_date":  str("End date for range (YYYY-MM-DD)"),
				"section":   str("Filter by section"),
				"page_size": integer("Number of results (default: 20)", 1, 200),
			}),
		},
		{
			Name:        "guardian_browse_section",
			Description: "Browse recent articles from a specific Guardian section",
			InputSchema: object([]string{"section"}, map[string]Property{
				"section":   str("Section ID (use guardian_get_sections to find valid IDs)"),
				"days_back": integer("How many days back to search (default: 7)", 1, 365),
				"page_size": integer("Number of results, max 200 (default: 20)", 1, 200),
			}),
		},
		{
			Name:        "guardian_get_sections",
			Description: "Get all available Guardian sections",
			InputSchema: object(nil, nil),
		},
		{
			Name:        "guardian_search_tags",
			Description: "Search through Guardian's 50,000+ tags to find relevant ones",
			InputSchema: object([]string{"query"}, map[string]Property{
				"query":     str("Search term for tag names"),
				"page_size": integer("Results per page, max 200 (default: 20)", 1, 200),
				"page":      integer(descPage, 1, 0),
			}),
		},
		{
			Name:        "guardian_search_by_length",
			Description: "Search Guardian articles filtered by word count range",
			InputSchema: object(nil, map[string]Property{
				"query":     str("Search terms (optional)"),
				"min_words": integer("Minimum word count (default: 0)", 0, 0),
				"max_words": integer("Maximum word count (default: unlimited)", 1, 0),
				"section":   str("Filter by section ID"),
				"from_date": str(descFromDate),
				"to_date":   str(descToDate),
				"order_by":  str("Sort order: 'newest', 'oldest', 'relevance' (default: 'newest')", orderBy...),
				"page_size": integer("Results per page, max 200 (default: 20)", 1, 200),
			}),
		},
		{
			Name:        "guardian_search_by_author",
			Description: "Search Guardian articles by specific author/journalist",
			InputSchema: object([]string{"author"}, map[string]Property{
				"author":    str("Author name to search for"),
				"query":     str("Additional search terms within author's articles"),
				"section":   str("Filter by section ID"),
				"from_date": str(descFromDate),
				"to_date":   str(descToDate),
				"order_by":  str("Sort order: 'newest', 'oldest', 'relevance' (default: 'newest')", orderBy...),
				"page_size": integer("Results per page, max 200 (default: 20)", 1, 200),
				"page":      integer(descPage, 1, 0),
			}),
		},
		{
			Name:        "guardian_find_related",
			Description: "Find articles related to a given article using shared tags",
			InputSchema: object([]string{"article_id"}, map[string]Property{
				"article_id":           str("Guardian article ID or full URL to find related articles for"),
				"similarity_threshold": integer("Minimum number of shared tags required (default: 2)", 1, 10),
				"exclude_same_section": boolean("Exclude articles from the same section (default: false)"),
				"max_days_old":         integer("Only find articles within this many days of the original (default: unlimited)", 1, 0),
				"page_size":            integer("Results per page, max 50 (default: 10)", 1, 50),
			}),
		},
		{
			Name:        "guardian_get_article_tags",
			Description: "Get detailed tag information for a specific Guardian article",
			InputSchema: object([]string{"article_id"}, map[string]Property{
				"article_id": str("Guardian article ID or full URL to inspect tags for"),
			}),
		},
		{
			Name:        "guardian_content_timeline",
			Description: "Analyze content timeline for a topic over time showing trends and peaks",
			InputSchema: object([]string{"query", "from_date", "to_date"}, map[string]Property{
				"query":     str("Topic or search terms to analyze over time"),
				"from_date": str("Start date (YYYY-MM-DD)"),
				"to_date":   str("End date (YYYY-MM-DD)"),
				"interval":  str("Time interval for analysis (default: month)", "day", "week", "month", "quarter"),
				"section":   str("Filter by section (optional)"),
			}),
		},
		{
			Name:        "guardian_author_profile",
			Description: "Generate comprehensive profile analysis for a Guardian journalist",
			InputSchema: object([]string{"author"}, map[string]Property{
				"author":          str("Author/journalist name to analyze"),
				"analysis_period": str(`Year to analyze (e.g., "2024") or use from_date/to_date`),
				"from_date":       str("Start date (YYYY-MM-DD) - alternative to analysis_period"),
				"to_date":         str("End date (YYYY-MM-DD) - alternative to analysis_period"),
			}),
		},
		{
			Name:        "guardian_topic_trends",
			Description: "Compare trends of multiple topics over time with correlation analysis",
			InputSchema: object([]string{"topics", "from_date", "to_date"}, map[string]Property{
				"topics": {
					Type:        "array",
					Description: "List of topics/keywords to compare (max 5)",
					Items:       &Property{Type: "string"},
					MinItems:    bound(1),
					MaxItems:    bound(5),
				},
				"from_date": str("Start date (YYYY-MM-DD)"),
				"to_date":   str("End date (YYYY-MM-DD)"),
				"interval":  str("Time interval for comparison (default: quarter)", "month", "quarter", "year"),
			}),
		},
		{
			Name:        "guardian_top_stories_by_date",
			Description: "Get intelligently ranked top stories for a specific date using editorial prioritization",
			InputSchema: object([]string{"date"}, map[string]Property{
				"date":        str("Date to analyze (YYYY-MM-DD)"),
				"story_count": integer("Number of top stories to return (default: 10, max: 20)", 1, 20),
				"section":     str("Filter by section (optional)"),
			}),
		},
		{
			Name:        "guardian_recommend_longreads",
			Description: "Get personalized Long Read recommendations based on context and preferences",
			InputSchema: object(nil, map[string]Property{
				"count":            integer("Number of recommendations (default: 3, max: 10)", 1, 10),
				"context":          str("Context about interests, current conversation, or what you're looking for"),
				"from_date":        str("Earliest publication date to consider (default: 3 months ago)"),
				"topic_preference": str(`Specific topic or theme preference (e.g., "climate change", "technology", "culture")`),
			}),
		},
	}
}
