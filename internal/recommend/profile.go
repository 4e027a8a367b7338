// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import "strings"

// Profile is what a reader asked for, derived from free text.
type Profile struct {
	Interests []string `json:"interests" yaml:"interests"`
	Types     []string `json:"types" yaml:"types"`
	Themes    []string `json:"themes" yaml:"themes"`
}

type group struct {
	keywords []string
	label    string
}

// interestGroups map reader vocabulary to interest labels. Order is
// significant: it is the order interests are reported in.
var interestGroups = []group{
	{[]string{"climate", "environment", "global warming", "sustainability"}, "Environment"},
	{[]string{"politics", "election", "government", "policy"}, "Politics"},
	{[]string{"technology", "ai", "artificial intelligence", "digital", "tech"}, "Technology"},
	{[]string{"economy", "business", "finance", "market", "money"}, "Economics"},
	{[]string{"health", "medicine", "pandemic", "covid", "mental health"}, "Health"},
	{[]string{"culture", "art", "music", "film", "literature", "books"}, "Culture"},
	{[]string{"science", "research", "discovery", "study"}, "Science"},
	{[]string{"society", "social", "community", "inequality", "justice"}, "Society"},
	{[]string{"travel", "places", "cities", "countries", "explore"}, "Travel"},
	{[]string{"sports", "football", "athletics", "games"}, "Sports"},
	{[]string{"food", "cooking", "restaurants", "cuisine"}, "Food"},
	{[]string{"war", "conflict", "international", "world", "global"}, "World Affairs"},
	{[]string{"personal", "memoir", "life", "experience", "story"}, "Personal Stories"},
	{[]string{"history", "historical", "past", "archive"}, "History"},
}

var typeGroups = []group{
	{[]string{"investigation", "investigative", "expose"}, "investigative"},
	{[]string{"profile", "biography", "portrait"}, "profile"},
	{[]string{"analysis", "deep dive", "explained"}, "analysis"},
	{[]string{"narrative", "story", "tale"}, "narrative"},
	{[]string{"review", "opinion", "commentary"}, "commentary"},
}

var themeGroups = []group{
	{[]string{"inspiring", "hopeful", "positive"}, "uplifting"},
	{[]string{"serious", "important", "critical"}, "serious"},
	{[]string{"fascinating", "interesting", "curious"}, "intriguing"},
	{[]string{"new", "recent", "current"}, "contemporary"},
	{[]string{"unusual", "weird", "strange", "surprising"}, "unusual"},
}

// FallbackInterests apply when the reader text names no known interest.
var FallbackInterests = []string{"Culture", "Society", "World Affairs"}

// themeWords and typeWords are matched against an article's headline and
// standfirst.
var themeWords = map[string][]string{
	"uplifting":    {"hope", "inspiring", "positive", "success", "triumph", "joy"},
	"serious":      {"crisis", "urgent", "important", "critical", "severe", "major"},
	"intriguing":   {"mystery", "fascinating", "remarkable", "extraordinary", "unusual", "curious"},
	"contemporary": {"new", "modern", "recent", "current", "today", "now"},
	"unusual":      {"strange", "bizarre", "weird", "unexpected", "surprising", "odd"},
}

var typeWords = map[string][]string{
	"investigative": {"investigation", "expose", "reveals", "uncovers", "exclusive", "probe"},
	"profile":       {"profile", "portrait", "life", "biography", "story of", "meet"},
	"analysis":      {"analysis", "explained", "understanding", "deep dive", "breakdown", "examine"},
	"narrative":     {"story", "tale", "journey", "adventure", "experience", "narrative"},
	"commentary":    {"opinion", "view", "perspective", "argues", "believes", "thinks"},
}

// AnalyzeContext derives a Profile from the reader's context and topic
// preference by case-insensitive substring matching.
func AnalyzeContext(context, topicPreference string) Profile {
	text := strings.ToLower(context + " " + topicPreference)
	p := Profile{
		Interests: matchGroups(text, interestGroups),
		Types:     matchGroups(text, typeGroups),
		Themes:    matchGroups(text, themeGroups),
	}
	if len(p.Interests) == 0 {
		p.Interests = append([]string(nil), FallbackInterests...)
	}
	return p
}

func matchGroups(text string, groups []group) []string {
	var out []string
	for _, g := range groups {
		if containsAny(text, g.keywords) {
			out = append(out, g.label)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
