package citation

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"reportkit/internal/research"
)

// Source is a web source referenced by assistant-authored report text.
type Source struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Domain    string `json:"domain"`
	Type      string `json:"type"` // academic|news|government|web
	Year      int    `json:"year"`
	Relevance string `json:"relevance"` // high|medium|low
}

// Rule maps a URL keyword to a source type. Rules are tested in order
// and the first match wins, so academic keywords outrank the generic
// ones below them; a plain map would lose that priority.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Type    string `yaml:"type"`
}

// DefaultRules is the built-in classification table. Academic research
// hosts come first, then news outlets, government domains, and the
// educational fallbacks; anything unmatched is plain web.
var DefaultRules = []Rule{
	{"arxiv", "academic"},
	{"researchgate", "academic"},
	{"scholar", "academic"},
	{"news", "news"},
	{"bbc", "news"},
	{"cnn", "news"},
	{"reuters", "news"},
	{"gov", "government"},
	{"government", "government"},
	{"whitehouse", "government"},
	{"edu", "academic"},
	{"university", "academic"},
	{"college", "academic"},
}

// Classify determines the source type of a URL by case-insensitive
// substring match over the full URL, first rule wins. Empty rules fall
// back to DefaultRules.
func Classify(rawURL string, rules []Rule) string {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	lower := strings.ToLower(rawURL)
	for _, r := range rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Type
		}
	}
	return "web"
}

var urlRe = regexp.MustCompile(`https?://\S+`)

// ExtractSources scans the assistant messages of a conversation for
// http(s) URLs and returns one Source per distinct URL, in first-seen
// order. Deduplication is by exact URL string. User messages are
// ignored; they ask questions, they do not cite.
func ExtractSources(messages []research.Message, rules []Rule) []Source {
	var sources []Source
	seen := make(map[string]bool)
	year := time.Now().Year()

	for _, msg := range messages {
		if msg.Role != "assistant" || msg.Content == "" {
			continue
		}
		for _, raw := range urlRe.FindAllString(msg.Content, -1) {
			if seen[raw] {
				continue
			}
			seen[raw] = true
			sources = append(sources, Source{
				URL:       raw,
				Title:     titleFromURL(raw),
				Domain:    domainFromURL(raw),
				Type:      Classify(raw, rules),
				Year:      year,
				Relevance: relevance(raw, msg.Content),
			})
		}
	}
	return sources
}

// titleFromURL derives a placeholder title from the hostname's first
// label; Enrich replaces it with the real page title when asked to.
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown Source"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}

func domainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

// relevance grades a source by how often its URL appears in the message
// that introduced it.
func relevance(rawURL, content string) string {
	switch n := strings.Count(content, rawURL); {
	case n > 2:
		return "high"
	case n > 0:
		return "medium"
	default:
		return "low"
	}
}
