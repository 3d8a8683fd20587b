package report

import "strings"

// TotalReadingTime sums the per-section estimates, the number shown in a
// report's "N min read" metadata bar.
func (d *Document) TotalReadingTime() int {
	total := 0
	for _, s := range d.Sections {
		total += s.ReadingTime
	}
	return total
}

// WordCount counts words across all section content.
func (d *Document) WordCount() int {
	total := 0
	for _, s := range d.Sections {
		total += countWords(strings.Join(s.Content, " "))
	}
	return total
}

// Section returns the section with the given id, or nil.
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}
