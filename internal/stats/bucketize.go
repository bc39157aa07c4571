package stats

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// OtherID is the reserved member id of the aggregated remainder bucket. Real
// breakdown member ids never use it.
const OtherID = "other"

// BucketEntry is one displayed slice of a Top-N breakdown widget.
type BucketEntry struct {
	ID         string
	Name       string
	Value      float64
	Percentage float64
	Link       string
	Color      string
}

// BucketResult is the Top-N-plus-Other view of a breakdown. Other is nil
// when every member fit within the page size, never a zero-valued entry.
type BucketResult struct {
	Entries []BucketEntry
	Other   *BucketEntry
	Total   float64
}

// ColorFor cycles through a palette by position. Pure: the same index and
// palette always yield the same color.
func ColorFor(index int, palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[index%len(palette)]
}

// searchLink builds a search query filter for a breakdown member.
func searchLink(field, id string) string {
	if field == "" || id == OtherID {
		return ""
	}
	return fmt.Sprintf("%s:%q", field, id)
}

// representativeValue is the single date-filtered value of a member's
// series; a series with no surviving point counts as 0.
func representativeValue(s DataSeries) float64 {
	if len(s.Data) == 0 {
		return 0
	}
	return s.Data[0].Value
}

// Bucketize produces the top pageSize members of a breakdown plus an
// aggregated Other bucket, each annotated with its percentage of the total.
// The input is expected to be date-filtered to one representative point per
// member; members are ranked by value descending, ties keeping input order.
// A zero total yields zero percentages, never NaN.
func Bucketize(series []DataSeries, pageSize int, searchField string, palette []string) BucketResult {
	if pageSize < 0 {
		pageSize = 0
	}

	series = slices.Clone(series)
	slices.SortStableFunc(series, func(a, b DataSeries) int {
		return cmp.Compare(representativeValue(b), representativeValue(a))
	})

	var total float64
	for _, s := range series {
		total += representativeValue(s)
	}

	percentage := func(value float64) float64 {
		if total == 0 {
			return 0
		}
		return math.Round(value / total * 100)
	}

	shown := min(pageSize, len(series))
	result := BucketResult{
		Entries: make([]BucketEntry, 0, shown),
		Total:   total,
	}

	for i := 0; i < shown; i++ {
		s := series[i]
		value := representativeValue(s)
		name := s.Name
		if name == "" {
			name = s.ID
		}
		result.Entries = append(result.Entries, BucketEntry{
			ID:         s.ID,
			Name:       name,
			Value:      value,
			Percentage: percentage(value),
			Link:       searchLink(searchField, s.ID),
			Color:      ColorFor(i, palette),
		})
	}

	if len(series) > shown {
		var otherValue float64
		for _, s := range series[shown:] {
			otherValue += representativeValue(s)
		}
		result.Other = &BucketEntry{
			ID:         OtherID,
			Name:       "Other",
			Value:      otherValue,
			Percentage: percentage(otherValue),
			Color:      ColorFor(shown, palette),
		}
	}

	return result
}

// ChartEntries returns the entries to plot plus a floating annotation. When
// the Other bucket's share reaches the dominance threshold it is removed
// from the chart and described by the annotation instead, so a huge Other
// segment does not drown out the named members. Table views keep using
// Entries and Other directly; the underlying numbers are never altered.
func (r BucketResult) ChartEntries(threshold float64) ([]BucketEntry, string) {
	if r.Other == nil {
		return r.Entries, ""
	}
	if threshold <= 0 || r.Other.Percentage < threshold {
		entries := make([]BucketEntry, 0, len(r.Entries)+1)
		entries = append(entries, r.Entries...)
		entries = append(entries, *r.Other)
		return entries, ""
	}
	annotation := fmt.Sprintf("Other: %.0f%% not shown", r.Other.Percentage)
	return r.Entries, annotation
}
