package stats

// Metric names one measured quantity within a category collection.
type Metric int

const (
	MetricRecords Metric = iota
	MetricParents
	MetricUploaders
	MetricFileCount
	MetricDataVolume
	MetricViews
	MetricDownloads
	MetricVisitors
)

// String returns the stable metric name.
func (m Metric) String() string {
	switch m {
	case MetricRecords:
		return "records"
	case MetricParents:
		return "parents"
	case MetricUploaders:
		return "uploaders"
	case MetricFileCount:
		return "fileCount"
	case MetricDataVolume:
		return "dataVolume"
	case MetricViews:
		return "views"
	case MetricDownloads:
		return "downloads"
	case MetricVisitors:
		return "visitors"
	default:
		return "unknown"
	}
}

// Selector addresses one of the parallel collections of a yearly block.
type Selector struct {
	Domain  Domain
	Cadence Cadence
	Basis   Basis
}

// PickSeries resolves (selector, category, metric) to an accessor over
// normalized yearly blocks. The closed dispatch makes a combination the
// model does not carry an explicit ok=false instead of a silent empty
// result: record snapshots expose uploaders, file counts, and data volume
// only for the global rollup and the file-presence breakdown, and usage
// collections never expose record metrics.
func PickSeries(sel Selector, category Category, metric Metric) (SeriesPicker, bool) {
	switch sel.Domain {
	case DomainRecords:
		if sel.Cadence == CadenceDelta {
			return pickRecordDelta(sel.Basis, category, metric)
		}
		return pickRecordSnapshot(sel.Basis, category, metric)
	case DomainUsage:
		if sel.Cadence == CadenceDelta {
			return pickUsageDelta(category, metric)
		}
		return pickUsageSnapshot(category, metric)
	}
	return nil, false
}

func pickRecordDelta(basis Basis, category Category, metric Metric) (SeriesPicker, bool) {
	field := func(b RecordDeltaBreakdown) []DataSeries {
		switch metric {
		case MetricRecords:
			return b.Records
		case MetricParents:
			return b.Parents
		case MetricUploaders:
			return b.Uploaders
		case MetricFileCount:
			return b.FileCount
		case MetricDataVolume:
			return b.DataVolume
		default:
			return nil
		}
	}
	switch metric {
	case MetricRecords, MetricParents, MetricUploaders, MetricFileCount, MetricDataVolume:
	default:
		return nil, false
	}

	if category == CategoryGlobal {
		return func(block YearBlock) []DataSeries {
			return field(block.RecordDeltas[basis].Global)
		}, true
	}
	if _, ok := recordCategories[category]; !ok {
		return nil, false
	}
	return func(block YearBlock) []DataSeries {
		return field(block.RecordDeltas[basis].Breakdowns[category])
	}, true
}

func pickRecordSnapshot(basis Basis, category Category, metric Metric) (SeriesPicker, bool) {
	full := func(b RecordSnapshotFull) []DataSeries {
		switch metric {
		case MetricRecords:
			return b.Records
		case MetricParents:
			return b.Parents
		case MetricUploaders:
			return b.Uploaders
		case MetricFileCount:
			return b.FileCount
		case MetricDataVolume:
			return b.DataVolume
		default:
			return nil
		}
	}

	switch category {
	case CategoryGlobal:
		switch metric {
		case MetricRecords, MetricParents, MetricUploaders, MetricFileCount, MetricDataVolume:
			return func(block YearBlock) []DataSeries {
				return full(block.RecordSnapshots[basis].Global)
			}, true
		}
		return nil, false
	case CategoryFilePresence:
		switch metric {
		case MetricRecords, MetricParents, MetricUploaders, MetricFileCount, MetricDataVolume:
			return func(block YearBlock) []DataSeries {
				return full(block.RecordSnapshots[basis].FilePresence)
			}, true
		}
		return nil, false
	}

	if _, ok := recordCategories[category]; !ok {
		return nil, false
	}
	// Per-member snapshots intentionally carry records and parents only.
	switch metric {
	case MetricRecords:
		return func(block YearBlock) []DataSeries {
			return block.RecordSnapshots[basis].Breakdowns[category].Records
		}, true
	case MetricParents:
		return func(block YearBlock) []DataSeries {
			return block.RecordSnapshots[basis].Breakdowns[category].Parents
		}, true
	}
	return nil, false
}

func usageField(b UsageBreakdown, metric Metric) []DataSeries {
	switch metric {
	case MetricViews:
		return b.Views
	case MetricDownloads:
		return b.Downloads
	case MetricVisitors:
		return b.Visitors
	case MetricDataVolume:
		return b.DataVolume
	default:
		return nil
	}
}

func usageMetricOK(metric Metric) bool {
	switch metric {
	case MetricViews, MetricDownloads, MetricVisitors, MetricDataVolume:
		return true
	}
	return false
}

func pickUsageDelta(category Category, metric Metric) (SeriesPicker, bool) {
	if !usageMetricOK(metric) {
		return nil, false
	}
	if category == CategoryGlobal {
		return func(block YearBlock) []DataSeries {
			return usageField(block.UsageDeltas.Global, metric)
		}, true
	}
	if _, ok := usageCategories[category]; !ok {
		return nil, false
	}
	return func(block YearBlock) []DataSeries {
		return usageField(block.UsageDeltas.Breakdowns[category], metric)
	}, true
}

func pickUsageSnapshot(category Category, metric Metric) (SeriesPicker, bool) {
	if !usageMetricOK(metric) {
		return nil, false
	}
	if category == CategoryGlobal {
		return func(block YearBlock) []DataSeries {
			return usageField(block.UsageSnapshots.Global, metric)
		}, true
	}
	if _, ok := usageCategories[category]; !ok {
		return nil, false
	}
	return func(block YearBlock) []DataSeries {
		return usageField(block.UsageSnapshots.Breakdowns[category], metric)
	}, true
}

// PickByView returns the by-view variant of a split usage snapshot
// breakdown.
func PickByView(category Category) (SeriesPicker, bool) {
	if !isSplitCategory(category) {
		return nil, false
	}
	return func(block YearBlock) []DataSeries {
		return block.UsageSnapshots.ByView[category].Views
	}, true
}

// PickByDownload returns the by-download variant of a split usage snapshot
// breakdown. The data-volume companion series is addressable through
// PickSeries on the unsplit breakdown.
func PickByDownload(category Category) (SeriesPicker, bool) {
	if !isSplitCategory(category) {
		return nil, false
	}
	return func(block YearBlock) []DataSeries {
		return block.UsageSnapshots.ByDownload[category].Downloads
	}, true
}

func isSplitCategory(category Category) bool {
	for _, c := range splitUsageCategories {
		if c == category {
			return true
		}
	}
	return false
}
