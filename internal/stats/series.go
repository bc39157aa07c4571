// Package stats transforms raw InvenioRDM aggregation documents into the
// normalized time-series model consumed by the dashboard widgets.
package stats

import (
	"slices"
	"time"
)

// ValueType governs how a point's value is formatted downstream.
type ValueType string

const (
	// ValueNumber formats as a plain count.
	ValueNumber ValueType = "number"
	// ValueFilesize formats as a byte size.
	ValueFilesize ValueType = "filesize"
)

// DataPoint is a single observation in a series.
type DataPoint struct {
	Time         time.Time
	Value        float64
	ReadableDate string
	ValueType    ValueType
}

// DataSeries holds the ordered observations for one breakdown member.
// Data is ordered by time ascending with unique timestamps. Empty Data is
// valid and means the source had no rows for this member.
type DataSeries struct {
	ID        string
	Name      string
	Type      string
	ValueType ValueType
	Data      []DataPoint
}

// NewDataPoint builds a point with a human-readable date label.
func NewDataPoint(t time.Time, value float64, valueType ValueType) DataPoint {
	return DataPoint{
		Time:         t,
		Value:        value,
		ReadableDate: t.Format("Jan 2, 2006"),
		ValueType:    valueType,
	}
}

// Clone returns a deep copy of the series.
func (s DataSeries) Clone() DataSeries {
	out := s
	out.Data = slices.Clone(s.Data)
	return out
}

// WithData returns a copy of the series with its points replaced.
// All non-data metadata is preserved.
func (s DataSeries) WithData(data []DataPoint) DataSeries {
	out := s
	out.Data = data
	return out
}

// Latest returns the most recent point in the series.
func (s DataSeries) Latest() (DataPoint, bool) {
	if len(s.Data) == 0 {
		return DataPoint{}, false
	}
	return s.Data[len(s.Data)-1], true
}

// MergeSeries concatenates per-member series from consecutive yearly blocks.
// Series sharing an id are concatenated in argument order, never overwritten;
// ids first seen in a later group keep their relative order.
func MergeSeries(groups ...[]DataSeries) []DataSeries {
	merged := make([]DataSeries, 0)
	index := make(map[string]int)

	for _, group := range groups {
		for _, series := range group {
			at, ok := index[series.ID]
			if !ok {
				index[series.ID] = len(merged)
				merged = append(merged, series.Clone())
				continue
			}
			merged[at].Data = append(merged[at].Data, series.Data...)
			if merged[at].Name == "" {
				merged[at].Name = series.Name
			}
		}
	}

	for i := range merged {
		sortPoints(merged[i].Data)
	}
	return merged
}

// FlattenPoints returns every point from every series in order of appearance.
func FlattenPoints(series []DataSeries) []DataPoint {
	points := make([]DataPoint, 0)
	for _, s := range series {
		points = append(points, s.Data...)
	}
	return points
}

func sortPoints(points []DataPoint) {
	slices.SortStableFunc(points, func(a, b DataPoint) int {
		return a.Time.Compare(b.Time)
	})
}
