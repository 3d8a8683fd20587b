// Package export renders a parsed report document back out as markdown,
// JSON, or a standalone HTML page.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"reportkit/internal/citation"
	"reportkit/internal/report"
)

var md = goldmark.New()

// Markdown reassembles a document into canonical markdown. Re-parsing
// the output yields the same titles in the same order, so exports stay
// usable as inputs.
func Markdown(doc *report.Document) string {
	var b strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}
	if len(doc.ExecutiveSummary) > 0 {
		b.WriteString("## Executive Summary\n\n")
		for _, point := range doc.ExecutiveSummary {
			fmt.Fprintf(&b, "• %s\n", point)
		}
		b.WriteString("\n")
	}
	if len(doc.KeyFindings) > 0 {
		b.WriteString("## Key Findings\n\n")
		for _, finding := range doc.KeyFindings {
			fmt.Fprintf(&b, "• %s\n", finding)
		}
		b.WriteString("\n")
	}
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		for _, line := range s.Content {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// JSON marshals the document with stable field names.
func JSON(doc *report.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
.section { border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem 1.5rem; margin: 1rem 0; }
.section h2 { margin-top: 0; }
.meta { color: #6b7280; font-size: 0.85rem; }
.summary { background: #eff6ff; border-radius: 8px; padding: 1rem 1.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .ExecutiveSummary}}<div class="summary"><h2>Executive Summary</h2><ul>
{{range .ExecutiveSummary}}<li>{{.}}</li>
{{end}}</ul></div>{{end}}
{{if .KeyFindings}}<div class="summary"><h2>Key Findings</h2><ul>
{{range .KeyFindings}}<li>{{.}}</li>
{{end}}</ul></div>{{end}}
{{range .Sections}}<div class="section" id="{{.ID}}">
<h2>{{.Icon}} {{.Title}}</h2>
<p class="meta">{{.ReadingTime}} min read</p>
{{.Body}}
</div>
{{end}}
{{if .Sources}}<div class="section"><h2>Sources</h2><ul>
{{range .Sources}}<li><a href="{{.URL}}">{{.Title}}</a> ({{.Type}})</li>
{{end}}</ul></div>{{end}}
</body>
</html>
`))

type htmlSection struct {
	ID          string
	Title       string
	Icon        string
	ReadingTime int
	Body        template.HTML
}

type htmlData struct {
	Title            string
	ExecutiveSummary []string
	KeyFindings      []string
	Sections         []htmlSection
	Sources          []citation.Source
}

// HTML renders the document as a standalone page, section content
// converted through goldmark.
func HTML(doc *report.Document, sources []citation.Source) ([]byte, error) {
	title := doc.Title
	if title == "" {
		title = "Research Report"
	}

	data := htmlData{
		Title:            title,
		ExecutiveSummary: doc.ExecutiveSummary,
		KeyFindings:      doc.KeyFindings,
		Sources:          sources,
	}
	for _, s := range doc.Sections {
		data.Sections = append(data.Sections, htmlSection{
			ID:          s.ID,
			Title:       s.Title,
			Icon:        s.Icon,
			ReadingTime: s.ReadingTime,
			Body:        renderMarkdown(strings.Join(s.Content, "\n")),
		})
	}

	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}
