package stats

import "slices"

// SeriesPicker selects the series for one metric of one breakdown from a
// normalized yearly block.
type SeriesPicker func(YearBlock) []DataSeries

// DeltaRollup reduces the picked delta series across all applicable yearly
// blocks to a single period total. Blocks are prefiltered on calendar-year
// boundaries (a block whose year touches the range's year span is included;
// the point-level filter then narrows to the literal range), the surviving
// series are flattened, range-filtered, and every remaining point's value is
// summed. Missing or malformed series contribute 0.
func DeltaRollup(blocks []YearBlock, pick SeriesPicker, r DateRange) float64 {
	startYear, endYear, startOK, endOK := r.Years()

	var total float64
	for _, block := range blocks {
		if startOK && block.Year < startYear {
			continue
		}
		if endOK && block.Year > endYear {
			continue
		}
		for _, s := range FilterSeries(pick(block), r) {
			for _, p := range s.Data {
				total += p.Value
			}
		}
	}
	return total
}

// SnapshotRollup reduces the picked snapshot series to the value of the
// single most recent applicable yearly block: blocks past the range end's
// year are dropped, the most recent remaining block is filtered to its
// latest in-range point per series, and that point's value is returned.
// Returns 0 when nothing survives.
func SnapshotRollup(blocks []YearBlock, pick SeriesPicker, r DateRange) float64 {
	_, endYear, _, endOK := r.Years()

	applicable := make([]YearBlock, 0, len(blocks))
	for _, block := range blocks {
		if endOK && block.Year > endYear {
			continue
		}
		applicable = append(applicable, block)
	}
	if len(applicable) == 0 {
		return 0
	}

	slices.SortStableFunc(applicable, func(a, b YearBlock) int {
		return b.Year - a.Year
	})

	var total float64
	for _, s := range LatestSeries(pick(applicable[0]), r) {
		for _, p := range s.Data {
			total += p.Value
		}
	}
	return total
}
