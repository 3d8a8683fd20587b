package citation

import (
	"testing"

	"reportkit/internal/research"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://arxiv.org/abs/2301.001", "academic"},
		{"https://scholar.google.com/citations", "academic"},
		{"https://www.bbc.com/tech", "news"},
		{"https://reuters.com/article", "news"},
		{"https://www.whitehouse.gov/briefing", "government"},
		{"https://mit.edu/research", "academic"},
		{"https://example.com/blog", "web"},
	}

	for _, tt := range tests {
		if got := Classify(tt.url, nil); got != tt.want {
			t.Errorf("Classify(%q): expected %s, got %s", tt.url, tt.want, got)
		}
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	// "arxiv" precedes "gov" in the default table, so a URL containing
	// both resolves academic.
	if got := Classify("https://arxiv.gov/paper", nil); got != "academic" {
		t.Errorf("expected academic, got %s", got)
	}
}

func TestClassifyCustomRules(t *testing.T) {
	rules := []Rule{{Keyword: "internal", Type: "intranet"}}

	if got := Classify("https://wiki.internal.corp/page", rules); got != "intranet" {
		t.Errorf("expected intranet, got %s", got)
	}
	if got := Classify("https://arxiv.org/abs/1", rules); got != "web" {
		t.Errorf("custom rules replace the defaults, expected web, got %s", got)
	}
}

func TestExtractSources(t *testing.T) {
	messages := []research.Message{
		{Role: "user", Content: "see https://ignored.example.com please"},
		{Role: "assistant", Content: "Per https://arxiv.org/abs/2301.001 and https://www.bbc.com/news/item the trend holds. Again: https://arxiv.org/abs/2301.001"},
	}

	sources := ExtractSources(messages, nil)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}

	first := sources[0]
	if first.URL != "https://arxiv.org/abs/2301.001" {
		t.Errorf("expected first-seen order, got %s", first.URL)
	}
	if first.Type != "academic" {
		t.Errorf("expected academic, got %s", first.Type)
	}
	if first.Title != "arxiv" {
		t.Errorf("expected URL-derived title 'arxiv', got %q", first.Title)
	}
	if first.Domain != "arxiv.org" {
		t.Errorf("expected domain arxiv.org, got %q", first.Domain)
	}
	if first.Relevance != "medium" {
		t.Errorf("URL appearing twice should grade medium, got %s", first.Relevance)
	}

	second := sources[1]
	if second.Title != "bbc" {
		t.Errorf("www prefix should be stripped for titles, got %q", second.Title)
	}
}

func TestExtractSourcesIgnoresUserMessages(t *testing.T) {
	messages := []research.Message{
		{Role: "user", Content: "https://only-in-question.example.com"},
	}

	if sources := ExtractSources(messages, nil); len(sources) != 0 {
		t.Errorf("expected no sources from user messages, got %v", sources)
	}
}

func TestRelevanceGrades(t *testing.T) {
	url := "https://example.com/x"
	tests := []struct {
		content string
		want    string
	}{
		{url + " " + url + " " + url, "high"},
		{url, "medium"},
		{"no url here", "low"},
	}

	for _, tt := range tests {
		if got := relevance(url, tt.content); got != tt.want {
			t.Errorf("relevance in %q: expected %s, got %s", tt.content, tt.want, got)
		}
	}
}
