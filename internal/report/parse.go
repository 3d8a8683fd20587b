// Package report parses loosely-structured markdown research reports into
// a navigable document model: a title, hoisted executive-summary and
// key-findings bullets, and an ordered list of sections with icons and
// reading-time estimates.
package report

import (
	"fmt"
	"strings"
)

// SectionKind classifies special sections. Special sections stay in the
// section list; the kind only tags them.
type SectionKind string

const (
	KindGeneric     SectionKind = "generic"
	KindMethodology SectionKind = "methodology"
	KindReferences  SectionKind = "references"
)

// Section is one ##-delimited block of a parsed report.
type Section struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     []string    `json:"content"`
	Icon        string      `json:"icon"`
	ReadingTime int         `json:"reading_time_minutes"`
	Kind        SectionKind `json:"kind"`
}

// Document is the parsed form of a report. It is built fresh from the
// source text on each call and never mutated afterwards.
type Document struct {
	Title            string    `json:"title"`
	ExecutiveSummary []string  `json:"executive_summary"`
	KeyFindings      []string  `json:"key_findings"`
	Sections         []Section `json:"sections"`
}

// accumulator kinds for the line classifier. Executive and findings
// accumulators collect bullets that get hoisted to the document level on
// flush; section content accumulates directly into the open Section.
type accKind int

const (
	accNone accKind = iota
	accExecutive
	accFindings
	accSection
)

// Parse converts report text into a Document. It is total: any string,
// including the empty string or text with no headings at all, yields a
// valid (possibly minimal) document. Malformed markdown never fails.
//
// The classifier walks lines in one forward pass:
//   - "# "   sets the document title (does not open a section)
//   - "##"   headings containing "executive summary" or "key findings"
//     open the corresponding bullet accumulator
//   - "## "  and "### " open a new Section, flushing any prior executive
//     or findings accumulator into the document
//   - "• "   bullets feed an open executive/findings accumulator; inside
//     an ordinary section they are kept verbatim, marker included
//   - blank lines are dropped; any other non-empty line is appended to
//     whichever accumulator is open
//
// A late "## Executive Summary" heading still contributes to
// Document.ExecutiveSummary: the flush is heading-triggered, not
// position-triggered. An executive/findings heading that interrupts
// another executive/findings accumulator replaces it without flushing;
// downstream consumers depend on that exact behavior, so keep it.
func Parse(text string) *Document {
	doc := &Document{
		ExecutiveSummary: []string{},
		KeyFindings:      []string{},
		Sections:         []Section{},
	}

	kind := accNone
	var bullets []string // executive/findings accumulator
	open := -1           // index of the open section in doc.Sections
	sectionIndex := 0

	flushBullets := func() {
		switch kind {
		case accExecutive:
			doc.ExecutiveSummary = bullets
		case accFindings:
			doc.KeyFindings = bullets
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(line, "# "):
			doc.Title = strings.TrimPrefix(line, "# ")

		case strings.HasPrefix(line, "##") && strings.Contains(lower, "executive summary"):
			kind = accExecutive
			bullets = []string{}
			open = -1

		case strings.HasPrefix(line, "##") && strings.Contains(lower, "key findings"):
			kind = accFindings
			bullets = []string{}
			open = -1

		case strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "### "):
			flushBullets()
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			doc.Sections = append(doc.Sections, newSection(sectionIndex, title))
			open = len(doc.Sections) - 1
			sectionIndex++
			kind = accSection
			bullets = nil

		case strings.HasPrefix(line, "• ") && (kind == accExecutive || kind == accFindings):
			bullets = append(bullets, strings.TrimPrefix(line, "• "))

		case line != "":
			// Non-bullet lines feed whichever accumulator is open,
			// including executive/findings. Lines before any heading are
			// dropped, as are bullets with no accumulator at all.
			switch kind {
			case accExecutive, accFindings:
				bullets = append(bullets, line)
			case accSection:
				doc.Sections[open].Content = append(doc.Sections[open].Content, line)
			}
		}
	}

	flushBullets()

	for i := range doc.Sections {
		doc.Sections[i].ReadingTime = readingTime(doc.Sections[i].Content)
	}

	return doc
}

func newSection(index int, title string) Section {
	lower := strings.ToLower(title)
	kind := KindGeneric
	// Methodology is checked before references: a title matching both is
	// tagged methodology.
	if strings.Contains(lower, "methodology") {
		kind = KindMethodology
	} else if strings.Contains(lower, "references") {
		kind = KindReferences
	}

	return Section{
		ID:      sectionID(index),
		Title:   title,
		Content: []string{},
		Icon:    Icon(title),
		Kind:    kind,
	}
}

// sectionID builds the stable synthetic id used for in-page navigation.
func sectionID(index int) string {
	return fmt.Sprintf("section-%d", index)
}

// readingTime estimates minutes for a section from its word count. The
// tiered floor keeps short sections from rounding to useless values while
// still scaling linearly for long ones.
func readingTime(content []string) int {
	words := countWords(strings.Join(content, " "))
	switch {
	case words < 50:
		return 1
	case words < 150:
		return 2
	case words < 300:
		return 3
	default:
		return (words + 199) / 200
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
