// Package chart reshapes backend graph payloads into render-ready series.
// The backend attaches an optional graph_data object to report metadata;
// the adapter here validates it, keeps the axis labels, and applies the
// top-N bucketing transform before a charting widget sees the points.
package chart

import (
	"fmt"
	"sort"
)

// DefaultTopN is the bucketing threshold: above this many points the
// low-rank remainder is merged into a single "Others" point.
const DefaultTopN = 5

// Point is a single chart data point. Value2 carries the second series of
// dual-axis charts and is zero otherwise.
type Point struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Value2 float64 `json:"value2,omitempty"`
}

// GraphData is the backend chart payload as it appears in report
// metadata. Data may be missing entirely; callers check HasData before
// adapting.
type GraphData struct {
	Type        string  `json:"type"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	XLabel      string  `json:"x_label,omitempty"`
	YLabel      string  `json:"y_label,omitempty"`
	Data        []Point `json:"data"`
}

// HasData reports whether the payload carries anything to render. A nil
// receiver or absent/empty data means "skip the chart", never an error.
func (g *GraphData) HasData() bool {
	return g != nil && len(g.Data) > 0
}

// Series is the adapted, render-ready form of a GraphData payload.
type Series struct {
	Type   string
	Title  string
	XLabel string
	YLabel string
	Points []Point
}

// Adapt produces a Series from a graph payload, merging low-rank points
// into an "Others (k)" bucket when there are more than topN. topN <= 0
// falls back to DefaultTopN.
//
// Data of length <= topN passes through unchanged, order and values
// intact. Otherwise a copy is stable-sorted descending by value (ties
// keep source order), the first topN survive, and the remainder is summed
// into one synthetic point labelled with the count of merged originals.
// When the remainder sums to zero no synthetic point is appended, so the
// result has exactly topN points instead of topN+1. That asymmetry
// matches the behavior chart consumers already rely on; do not normalize
// it to a constant-length output.
func Adapt(g GraphData, topN int) Series {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := Series{
		Type:   g.Type,
		Title:  g.Title,
		XLabel: g.XLabel,
		YLabel: g.YLabel,
	}

	if len(g.Data) <= topN {
		s.Points = g.Data
		return s
	}

	sorted := make([]Point, len(g.Data))
	copy(sorted, g.Data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	s.Points = sorted[:topN:topN]

	merged := sorted[topN:]
	othersValue := 0.0
	for _, p := range merged {
		othersValue += p.Value
	}
	if othersValue > 0 {
		s.Points = append(s.Points, Point{
			Name:  fmt.Sprintf("Others (%d)", len(merged)),
			Value: othersValue,
		})
	}

	return s
}
