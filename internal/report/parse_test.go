package report

import (
	"reflect"
	"testing"
)

func TestParseBasicReport(t *testing.T) {
	text := "# My Report\n## Executive Summary\n• Point A\n• Point B\n## Findings\nSome findings text."
	doc := Parse(text)

	if doc.Title != "My Report" {
		t.Errorf("expected title 'My Report', got %q", doc.Title)
	}
	if !reflect.DeepEqual(doc.ExecutiveSummary, []string{"Point A", "Point B"}) {
		t.Errorf("unexpected executive summary: %v", doc.ExecutiveSummary)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}

	sec := doc.Sections[0]
	if sec.Title != "Findings" {
		t.Errorf("expected section title 'Findings', got %q", sec.Title)
	}
	if !reflect.DeepEqual(sec.Content, []string{"Some findings text."}) {
		t.Errorf("unexpected section content: %v", sec.Content)
	}
	if sec.ID != "section-0" {
		t.Errorf("expected id 'section-0', got %q", sec.ID)
	}
	if sec.ReadingTime != 1 {
		t.Errorf("expected reading time 1, got %d", sec.ReadingTime)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := Parse("")

	if doc.Title != "" {
		t.Errorf("expected empty title, got %q", doc.Title)
	}
	if len(doc.ExecutiveSummary) != 0 || doc.ExecutiveSummary == nil {
		t.Errorf("expected empty non-nil executive summary, got %v", doc.ExecutiveSummary)
	}
	if len(doc.KeyFindings) != 0 || doc.KeyFindings == nil {
		t.Errorf("expected empty non-nil key findings, got %v", doc.KeyFindings)
	}
	if len(doc.Sections) != 0 || doc.Sections == nil {
		t.Errorf("expected empty non-nil sections, got %v", doc.Sections)
	}
}

func TestParseNoHeadings(t *testing.T) {
	doc := Parse("just some prose\nwith no structure at all")

	if doc.Title != "" || len(doc.Sections) != 0 {
		t.Errorf("expected minimal document, got title=%q sections=%d", doc.Title, len(doc.Sections))
	}
}

func TestParseKeyFindings(t *testing.T) {
	text := "## Key Findings\n• First\n• Second\n## Discussion\nBody."
	doc := Parse(text)

	if !reflect.DeepEqual(doc.KeyFindings, []string{"First", "Second"}) {
		t.Errorf("unexpected key findings: %v", doc.KeyFindings)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Title != "Discussion" {
		t.Errorf("expected single Discussion section, got %v", doc.Sections)
	}
}

func TestParseLateExecutiveSummary(t *testing.T) {
	// The hoist is heading-triggered, so a summary at the end of the
	// report still lands at the document level.
	text := "## Introduction\nIntro text.\n## Executive Summary\n• Late point"
	doc := Parse(text)

	if !reflect.DeepEqual(doc.ExecutiveSummary, []string{"Late point"}) {
		t.Errorf("unexpected executive summary: %v", doc.ExecutiveSummary)
	}
	if len(doc.Sections) != 1 {
		t.Errorf("executive summary heading must not open a section, got %d sections", len(doc.Sections))
	}
}

func TestParseFindingsHeadingReplacesExecutive(t *testing.T) {
	// A key-findings heading directly after an executive accumulator
	// replaces it before any section heading forces a flush, so the
	// executive bullets are dropped.
	text := "## Executive Summary\n• Lost\n## Key Findings\n• Kept"
	doc := Parse(text)

	if len(doc.ExecutiveSummary) != 0 {
		t.Errorf("expected dropped executive summary, got %v", doc.ExecutiveSummary)
	}
	if !reflect.DeepEqual(doc.KeyFindings, []string{"Kept"}) {
		t.Errorf("unexpected key findings: %v", doc.KeyFindings)
	}
}

func TestParseTripleHashSection(t *testing.T) {
	doc := Parse("### Deep Dive\nContent here.")

	if len(doc.Sections) != 1 || doc.Sections[0].Title != "Deep Dive" {
		t.Fatalf("expected '### ' to open a section, got %v", doc.Sections)
	}
}

func TestParseSectionIDsSkipSpecialHeadings(t *testing.T) {
	text := "## Executive Summary\n• A\n## Intro\nx\n## Conclusions\ny"
	doc := Parse(text)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].ID != "section-0" || doc.Sections[1].ID != "section-1" {
		t.Errorf("expected ids section-0/section-1, got %q/%q", doc.Sections[0].ID, doc.Sections[1].ID)
	}
}

func TestParseBulletInsideSectionKeptVerbatim(t *testing.T) {
	doc := Parse("## Results\n• item one\nplain line")

	want := []string{"• item one", "plain line"}
	if !reflect.DeepEqual(doc.Sections[0].Content, want) {
		t.Errorf("expected %v, got %v", want, doc.Sections[0].Content)
	}
}

func TestParseBulletWithoutAccumulatorDropped(t *testing.T) {
	doc := Parse("• orphan bullet\n## Intro\nx")

	if len(doc.Sections[0].Content) != 1 || doc.Sections[0].Content[0] != "x" {
		t.Errorf("orphan bullet should be dropped, got %v", doc.Sections[0].Content)
	}
}

func TestParseSectionKinds(t *testing.T) {
	tests := []struct {
		title string
		want  SectionKind
	}{
		{"Research Methodology", KindMethodology},
		{"References", KindReferences},
		{"Methodology and References", KindMethodology},
		{"Discussion", KindGeneric},
	}

	for _, tt := range tests {
		doc := Parse("## " + tt.title + "\nx")
		if got := doc.Sections[0].Kind; got != tt.want {
			t.Errorf("kind for %q: expected %s, got %s", tt.title, tt.want, got)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "# T\n## Executive Summary\n• A\n## Analysis\nBody text here."
	first := Parse(text)
	second := Parse(text)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical documents from repeated parses")
	}
}

func TestReadingTimeTiers(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{149, 2},
		{150, 3},
		{299, 3},
		{300, 2}, // ceil(300/200)
		{400, 2},
		{401, 3},
		{1000, 5},
	}

	for _, tt := range tests {
		content := []string{repeatWords(tt.words)}
		if got := readingTime(content); got != tt.want {
			t.Errorf("readingTime(%d words): expected %d, got %d", tt.words, tt.want, got)
		}
	}
}

func repeatWords(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, 'w', ' ')
	}
	return string(out)
}
