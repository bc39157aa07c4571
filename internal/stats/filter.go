package stats

import "time"

// DateRange bounds a filter window. A zero Start or End leaves that side
// unbounded. Both bounds are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Unbounded reports whether neither bound is set.
func (r DateRange) Unbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t lies inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Years returns the calendar-year span covered by the range. Unset bounds
// report ok=false for that side.
func (r DateRange) Years() (startYear, endYear int, startOK, endOK bool) {
	if !r.Start.IsZero() {
		startYear, startOK = r.Start.Year(), true
	}
	if !r.End.IsZero() {
		endYear, endOK = r.End.Year(), true
	}
	return startYear, endYear, startOK, endOK
}

// FilterSeries retains, per series, the points whose timestamps lie inside
// the range. Series with no qualifying points stay in the result with empty
// data; input is never mutated. A nil input yields an empty slice.
func FilterSeries(series []DataSeries, r DateRange) []DataSeries {
	out := make([]DataSeries, 0, len(series))
	for _, s := range series {
		kept := make([]DataPoint, 0, len(s.Data))
		for _, p := range s.Data {
			if r.Contains(p.Time) {
				kept = append(kept, p)
			}
		}
		out = append(out, s.WithData(kept))
	}
	return out
}

// LatestSeries retains, per series, the single point with the maximum
// timestamp not after the range end; with no end bound this is the most
// recent point overall. Series with no qualifying point keep empty data.
func LatestSeries(series []DataSeries, r DateRange) []DataSeries {
	out := make([]DataSeries, 0, len(series))
	for _, s := range series {
		latest, found := DataPoint{}, false
		for _, p := range s.Data {
			if !r.End.IsZero() && p.Time.After(r.End) {
				continue
			}
			if !found || p.Time.After(latest.Time) {
				latest, found = p, true
			}
		}
		if found {
			out = append(out, s.WithData([]DataPoint{latest}))
		} else {
			out = append(out, s.WithData([]DataPoint{}))
		}
	}
	return out
}
