package stats

// primaryMetric is the metric used to probe a breakdown for data: record
// counts for the record domain, view counts for usage.
func primaryMetric(domain Domain) Metric {
	if domain == DomainUsage {
		return MetricViews
	}
	return MetricRecords
}

// AvailableBreakdowns inspects the yearly blocks and reports which breakdown
// dimensions carry at least one data point within the date range, in
// canonical category order. Widgets for absent dimensions are not worth
// rendering.
func AvailableBreakdowns(blocks []YearBlock, sel Selector, r DateRange) []Category {
	metric := primaryMetric(sel.Domain)

	available := make([]Category, 0, len(CategoryOrder))
	for _, category := range CategoryOrder {
		if category == CategoryGlobal {
			continue
		}
		pick, ok := PickSeries(sel, category, metric)
		if !ok {
			continue
		}
		if breakdownHasData(blocks, pick, r) {
			available = append(available, category)
		}
	}
	return available
}

func breakdownHasData(blocks []YearBlock, pick SeriesPicker, r DateRange) bool {
	for _, block := range blocks {
		for _, s := range pick(block) {
			for _, p := range s.Data {
				if r.Contains(p.Time) {
					return true
				}
			}
		}
	}
	return false
}
