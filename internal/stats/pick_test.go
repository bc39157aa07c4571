package stats

import "testing"

// pickBlock builds one yearly block with a distinct point value per
// collection so the resolved accessor is identifiable by what it returns.
func pickBlock() YearBlock {
	series := func(value float64) []DataSeries {
		return []DataSeries{testSeries(GlobalID, pt("2024-06-01", value))}
	}

	return YearBlock{
		Year: 2024,
		RecordDeltas: map[Basis]RecordDeltaCollection{
			BasisAdded: {
				Global: RecordDeltaBreakdown{Records: series(1), Uploaders: series(2)},
				Breakdowns: map[Category]RecordDeltaBreakdown{
					CategoryLanguages: {Records: series(3), DataVolume: series(4)},
				},
			},
			BasisPublished: {
				Global: RecordDeltaBreakdown{Records: series(5)},
			},
		},
		RecordSnapshots: map[Basis]RecordSnapshotCollection{
			BasisAdded: {
				Global:       RecordSnapshotFull{Records: series(6), FileCount: series(7)},
				FilePresence: RecordSnapshotFull{DataVolume: series(8)},
				Breakdowns: map[Category]RecordSnapshotBreakdown{
					CategoryLanguages: {Records: series(9), Parents: series(10)},
				},
			},
		},
		UsageDeltas: UsageDeltaCollection{
			Global: UsageBreakdown{Views: series(11)},
			Breakdowns: map[Category]UsageBreakdown{
				CategoryCountries: {Downloads: series(12)},
			},
		},
		UsageSnapshots: UsageSnapshotCollection{
			Global: UsageBreakdown{Visitors: series(13), DataVolume: series(14)},
			Breakdowns: map[Category]UsageBreakdown{
				CategoryCountries: {Views: series(15)},
			},
			ByView: map[Category]UsageViewBreakdown{
				CategoryCountries: {Views: series(16)},
			},
			ByDownload: map[Category]UsageDownloadBreakdown{
				CategoryCountries: {Downloads: series(17)},
			},
		},
	}
}

func firstValue(t *testing.T, pick SeriesPicker, block YearBlock) float64 {
	t.Helper()
	series := pick(block)
	if len(series) != 1 || len(series[0].Data) != 1 {
		t.Fatalf("expected one series with one point, got %v", series)
	}
	return series[0].Data[0].Value
}

func TestPickSeries(t *testing.T) {
	t.Parallel()

	block := pickBlock()

	tests := []struct {
		name     string
		sel      Selector
		category Category
		metric   Metric
		want     float64
	}{
		{
			name:     "record delta global",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryGlobal,
			metric:   MetricRecords,
			want:     1,
		},
		{
			name:     "record delta global uploaders",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryGlobal,
			metric:   MetricUploaders,
			want:     2,
		},
		{
			name:     "record delta breakdown",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryLanguages,
			metric:   MetricRecords,
			want:     3,
		},
		{
			name:     "record delta breakdown data volume",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryLanguages,
			metric:   MetricDataVolume,
			want:     4,
		},
		{
			name:     "basis selects the parallel copy",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisPublished},
			category: CategoryGlobal,
			metric:   MetricRecords,
			want:     5,
		},
		{
			name:     "record snapshot global",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryGlobal,
			metric:   MetricRecords,
			want:     6,
		},
		{
			name:     "record snapshot global file count",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryGlobal,
			metric:   MetricFileCount,
			want:     7,
		},
		{
			name:     "file presence carries the full metric set",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryFilePresence,
			metric:   MetricDataVolume,
			want:     8,
		},
		{
			name:     "record snapshot breakdown records",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryLanguages,
			metric:   MetricRecords,
			want:     9,
		},
		{
			name:     "record snapshot breakdown parents",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryLanguages,
			metric:   MetricParents,
			want:     10,
		},
		{
			name:     "usage delta global",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceDelta},
			category: CategoryGlobal,
			metric:   MetricViews,
			want:     11,
		},
		{
			name:     "usage delta breakdown",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceDelta},
			category: CategoryCountries,
			metric:   MetricDownloads,
			want:     12,
		},
		{
			name:     "usage snapshot global visitors",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceSnapshot},
			category: CategoryGlobal,
			metric:   MetricVisitors,
			want:     13,
		},
		{
			name:     "usage snapshot global data volume",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceSnapshot},
			category: CategoryGlobal,
			metric:   MetricDataVolume,
			want:     14,
		},
		{
			name:     "usage snapshot breakdown",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceSnapshot},
			category: CategoryCountries,
			metric:   MetricViews,
			want:     15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pick, ok := PickSeries(tt.sel, tt.category, tt.metric)
			if !ok {
				t.Fatal("expected combination to resolve")
			}
			if got := firstValue(t, pick, block); got != tt.want {
				t.Fatalf("expected value %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPickSeriesRejectsUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sel      Selector
		category Category
		metric   Metric
	}{
		{
			name:     "usage metric on record collection",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryGlobal,
			metric:   MetricViews,
		},
		{
			name:     "record metric on usage collection",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceDelta},
			category: CategoryGlobal,
			metric:   MetricRecords,
		},
		{
			name:     "uploaders on per-member snapshot",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceSnapshot, Basis: BasisAdded},
			category: CategoryLanguages,
			metric:   MetricUploaders,
		},
		{
			name:     "usage-only dimension on record collection",
			sel:      Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded},
			category: CategoryCountries,
			metric:   MetricRecords,
		},
		{
			name:     "record-only dimension on usage collection",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceSnapshot},
			category: CategoryPeriodicals,
			metric:   MetricViews,
		},
		{
			name:     "file presence on usage collection",
			sel:      Selector{Domain: DomainUsage, Cadence: CadenceDelta},
			category: CategoryFilePresence,
			metric:   MetricViews,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if pick, ok := PickSeries(tt.sel, tt.category, tt.metric); ok || pick != nil {
				t.Fatalf("expected combination to be rejected, got ok=%v", ok)
			}
		})
	}
}

func TestPickSplitVariants(t *testing.T) {
	t.Parallel()

	block := pickBlock()

	pick, ok := PickByView(CategoryCountries)
	if !ok {
		t.Fatal("expected by-view variant for countries")
	}
	if got := firstValue(t, pick, block); got != 16 {
		t.Fatalf("expected by-view value 16, got %v", got)
	}

	pick, ok = PickByDownload(CategoryCountries)
	if !ok {
		t.Fatal("expected by-download variant for countries")
	}
	if got := firstValue(t, pick, block); got != 17 {
		t.Fatalf("expected by-download value 17, got %v", got)
	}

	if _, ok := PickByView(CategoryResourceTypes); ok {
		t.Fatal("resource types snapshot rows are not split by view")
	}
	if _, ok := PickByDownload(CategoryFileTypes); ok {
		t.Fatal("file types snapshot rows are not split by download")
	}
}
