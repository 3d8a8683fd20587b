package export

import (
	"encoding/json"
	"strings"
	"testing"

	"reportkit/internal/citation"
	"reportkit/internal/report"
)

const sampleReport = "# AI in Healthcare\n## Executive Summary\n• Adoption doubled\n## Analysis\nDiagnostic accuracy improved across trials.\n## References\n[1] Smith 2023"

func TestMarkdownRoundTrip(t *testing.T) {
	doc := report.Parse(sampleReport)
	out := Markdown(doc)

	again := report.Parse(out)
	if again.Title != doc.Title {
		t.Errorf("title changed across round trip: %q vs %q", again.Title, doc.Title)
	}
	if len(again.Sections) != len(doc.Sections) {
		t.Fatalf("section count changed: %d vs %d", len(again.Sections), len(doc.Sections))
	}
	for i := range doc.Sections {
		if again.Sections[i].Title != doc.Sections[i].Title {
			t.Errorf("section %d title changed: %q vs %q", i, again.Sections[i].Title, doc.Sections[i].Title)
		}
	}
	if len(again.ExecutiveSummary) != 1 || again.ExecutiveSummary[0] != "Adoption doubled" {
		t.Errorf("executive summary changed: %v", again.ExecutiveSummary)
	}
}

func TestJSONFieldNames(t *testing.T) {
	doc := report.Parse(sampleReport)
	data, err := JSON(doc)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"title", "executive_summary", "key_findings", "sections"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in JSON output", key)
		}
	}

	sections := decoded["sections"].([]any)
	first := sections[0].(map[string]any)
	if _, ok := first["reading_time_minutes"]; !ok {
		t.Error("missing reading_time_minutes on section")
	}
}

func TestHTML(t *testing.T) {
	doc := report.Parse(sampleReport)
	sources := []citation.Source{{URL: "https://arxiv.org/x", Title: "arxiv", Type: "academic"}}

	out, err := HTML(doc, sources)
	if err != nil {
		t.Fatal(err)
	}
	page := string(out)

	for _, want := range []string{
		"<title>AI in Healthcare</title>",
		"Adoption doubled",
		`id="section-0"`,
		`href="https://arxiv.org/x"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestHTMLUntitledFallback(t *testing.T) {
	out, err := HTML(report.Parse("## Only Section\nx"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<title>Research Report</title>") {
		t.Error("expected fallback title for untitled documents")
	}
}
