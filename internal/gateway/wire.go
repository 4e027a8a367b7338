package gateway

import "github.com/pdiddy/guardian-mcp/pkg/types"

// Content API JSON structures.

type envelope[T any] struct {
	Response T `json:"response"`
}

type searchResponse struct {
	Status      string        `json:"status"`
	Total       int           `json:"total"`
	StartIndex  int           `json:"startIndex"`
	PageSize    int           `json:"pageSize"`
	CurrentPage int           `json:"currentPage"`
	Pages       int           `json:"pages"`
	OrderBy     string        `json:"orderBy"`
	Results     []wireArticle `json:"results"`
}

type contentResponse struct {
	Status  string       `json:"status"`
	Total   int          `json:"total"`
	Content *wireArticle `json:"content"`
}

type sectionsResponse struct {
	Status  string        `json:"status"`
	Results []wireSection `json:"results"`
}

type tagsResponse struct {
	Status      string    `json:"status"`
	Total       int       `json:"total"`
	CurrentPage int       `json:"currentPage"`
	Pages       int       `json:"pages"`
	Results     []wireTag `json:"results"`
}

type wireArticle struct {
	ID                 string      `json:"id"`
	Type               string      `json:"type"`
	SectionID          string      `json:"sectionId"`
	SectionName        string      `json:"sectionName"`
	WebPublicationDate string      `json:"webPublicationDate"`
	WebTitle           string      `json:"webTitle"`
	WebURL             string      `json:"webUrl"`
	APIURL             string      `json:"apiUrl"`
	Fields             *wireFields `json:"fields"`
	Tags               []wireTag   `json:"tags"`
}

type wireFields struct {
	Headline             string `json:"headline"`
	Standfirst           string `json:"standfirst"`
	Body                 string `json:"body"`
	Byline               string `json:"byline"`
	Thumbnail            string `json:"thumbnail"`
	Publication          string `json:"publication"`
	FirstPublicationDate string `json:"firstPublicationDate"`
	Wordcount            string `json:"wordcount"`
}

type wireTag struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	WebTitle string `json:"webTitle"`
	WebURL   string `json:"webUrl"`
	APIURL   string `json:"apiUrl"`
}

type wireSection struct {
	ID       string `json:"id"`
	WebTitle string `json:"webTitle"`
	WebURL   string `json:"webUrl"`
	APIURL   string `json:"apiUrl"`
}

func (w wireArticle) toArticle() types.Article {
	a := types.Article{
		ID:          w.ID,
		Type:        w.Type,
		SectionID:   w.SectionID,
		SectionName: w.SectionName,
		PublishedAt: parseTimestamp(w.WebPublicationDate),
		Title:       w.WebTitle,
		WebURL:      w.WebURL,
		APIURL:      w.APIURL,
	}
	if w.Fields != nil {
		a.Fields = &types.Fields{
			Headline:             w.Fields.Headline,
			Standfirst:           w.Fields.Standfirst,
			Body:                 w.Fields.Body,
			Byline:               w.Fields.Byline,
			Thumbnail:            w.Fields.Thumbnail,
			Publication:          w.Fields.Publication,
			WordCount:            w.Fields.Wordcount,
			FirstPublicationDate: parseTimestamp(w.Fields.FirstPublicationDate),
		}
	}
	for _, t := range w.Tags {
		a.Tags = append(a.Tags, t.toTag())
	}
	return a
}

func (w wireTag) toTag() types.Tag {
	return types.Tag{ID: w.ID, Type: types.TagType(w.Type), Title: w.WebTitle, WebURL: w.WebURL}
}
