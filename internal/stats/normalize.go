package stats

import (
	"math"
	"slices"
	"time"
)

// GlobalID is the member id of the single whole-collection series.
const GlobalID = "global"

// RecordDeltaBreakdown holds per-member series for every record delta metric.
type RecordDeltaBreakdown struct {
	Records    []DataSeries
	Parents    []DataSeries
	Uploaders  []DataSeries
	FileCount  []DataSeries
	DataVolume []DataSeries
}

// RecordSnapshotBreakdown holds per-member series for record snapshots.
// Snapshot subcounts only carry record and parent totals per member; the
// remaining metrics exist only on Global and FilePresence (see
// RecordSnapshotFull). This asymmetry with deltas is source behavior and is
// preserved deliberately.
type RecordSnapshotBreakdown struct {
	Records []DataSeries
	Parents []DataSeries
}

// RecordSnapshotFull is the full snapshot metric set, available for the
// global rollup and the file-presence breakdown only.
type RecordSnapshotFull struct {
	Records    []DataSeries
	Parents    []DataSeries
	Uploaders  []DataSeries
	FileCount  []DataSeries
	DataVolume []DataSeries
}

// UsageBreakdown holds per-member series for every usage metric.
type UsageBreakdown struct {
	Views      []DataSeries
	Downloads  []DataSeries
	Visitors   []DataSeries
	DataVolume []DataSeries
}

// UsageViewBreakdown is the by-view variant of a split usage snapshot
// breakdown.
type UsageViewBreakdown struct {
	Views []DataSeries
}

// UsageDownloadBreakdown is the by-download variant of a split usage
// snapshot breakdown.
type UsageDownloadBreakdown struct {
	Downloads  []DataSeries
	DataVolume []DataSeries
}

// RecordDeltaCollection maps record delta metrics per breakdown dimension.
type RecordDeltaCollection struct {
	Global     RecordDeltaBreakdown
	Breakdowns map[Category]RecordDeltaBreakdown
}

// RecordSnapshotCollection maps record snapshot metrics per breakdown
// dimension.
type RecordSnapshotCollection struct {
	Global       RecordSnapshotFull
	FilePresence RecordSnapshotFull
	Breakdowns   map[Category]RecordSnapshotBreakdown
}

// UsageDeltaCollection maps usage delta metrics per breakdown dimension.
type UsageDeltaCollection struct {
	Global     UsageBreakdown
	Breakdowns map[Category]UsageBreakdown
}

// UsageSnapshotCollection maps usage snapshot metrics per breakdown
// dimension. Breakdowns whose snapshot rows carry both view and download
// totals are additionally split into independently addressable by-view and
// by-download variants.
type UsageSnapshotCollection struct {
	Global     UsageBreakdown
	Breakdowns map[Category]UsageBreakdown
	ByView     map[Category]UsageViewBreakdown
	ByDownload map[Category]UsageDownloadBreakdown
}

// seriesBuilder accumulates points per breakdown member, preserving first-seen
// member order.
type seriesBuilder struct {
	valueType ValueType
	order     []string
	series    map[string]*DataSeries
}

func newSeriesBuilder(valueType ValueType) *seriesBuilder {
	return &seriesBuilder{
		valueType: valueType,
		series:    make(map[string]*DataSeries),
	}
}

func (b *seriesBuilder) add(id, name string, t time.Time, value float64) {
	s, ok := b.series[id]
	if !ok {
		s = &DataSeries{
			ID:        id,
			Name:      name,
			Type:      "line",
			ValueType: b.valueType,
		}
		b.series[id] = s
		b.order = append(b.order, id)
	}
	if s.Name == "" {
		s.Name = name
	}
	s.Data = append(s.Data, NewDataPoint(t, value, b.valueType))
}

func (b *seriesBuilder) build() []DataSeries {
	out := make([]DataSeries, 0, len(b.order))
	for _, id := range b.order {
		s := *b.series[id]
		sortPoints(s.Data)
		out = append(out, s)
	}
	return out
}

// recordDeltaValues is the multi-metric payload computed for one member of
// one delta row.
type recordDeltaValues struct {
	records    float64
	parents    float64
	uploaders  float64
	fileCount  float64
	dataVolume float64
}

// pairNet computes (added.metadataOnly + added.withFiles) minus the same sum
// over removed, for records and parents alike.
func pairNet(m map[string]any) float64 {
	added := mapAt(m, "added")
	removed := mapAt(m, "removed")
	return numberAt(added, "metadata_only") + numberAt(added, "with_files") -
		numberAt(removed, "metadata_only") - numberAt(removed, "with_files")
}

func fileNet(m map[string]any, field string) float64 {
	return numberAt(mapAt(m, "added"), field) - numberAt(mapAt(m, "removed"), field)
}

func extractRecordDelta(row map[string]any) recordDeltaValues {
	files := mapAt(row, "files")
	return recordDeltaValues{
		records:    pairNet(mapAt(row, "records")),
		parents:    pairNet(mapAt(row, "parents")),
		uploaders:  numberAt(row, "uploaders"),
		fileCount:  fileNet(files, "file_count"),
		dataVolume: fileNet(files, "data_volume"),
	}
}

// recordDeltaBuilders groups the per-metric builders for one breakdown.
type recordDeltaBuilders struct {
	records    *seriesBuilder
	parents    *seriesBuilder
	uploaders  *seriesBuilder
	fileCount  *seriesBuilder
	dataVolume *seriesBuilder
}

func newRecordDeltaBuilders() recordDeltaBuilders {
	return recordDeltaBuilders{
		records:    newSeriesBuilder(ValueNumber),
		parents:    newSeriesBuilder(ValueNumber),
		uploaders:  newSeriesBuilder(ValueNumber),
		fileCount:  newSeriesBuilder(ValueNumber),
		dataVolume: newSeriesBuilder(ValueFilesize),
	}
}

func (b recordDeltaBuilders) add(id, name string, t time.Time, v recordDeltaValues) {
	b.records.add(id, name, t, v.records)
	b.parents.add(id, name, t, v.parents)
	b.uploaders.add(id, name, t, v.uploaders)
	b.fileCount.add(id, name, t, v.fileCount)
	b.dataVolume.add(id, name, t, v.dataVolume)
}

func (b recordDeltaBuilders) build() RecordDeltaBreakdown {
	return RecordDeltaBreakdown{
		Records:    b.records.build(),
		Parents:    b.parents.build(),
		Uploaders:  b.uploaders.build(),
		FileCount:  b.fileCount.build(),
		DataVolume: b.dataVolume.build(),
	}
}

// normalizeRecordDeltas converts one year of record delta rows into
// category-keyed series collections.
func normalizeRecordDeltas(entries []RawEntry) RecordDeltaCollection {
	global := newRecordDeltaBuilders()
	byCategory := make(map[Category]recordDeltaBuilders)

	for _, entry := range entries {
		t, ok := parseDate(stringAt(entry, "period_start"))
		if !ok {
			continue
		}

		global.add(GlobalID, CategoryGlobal.Label(), t, extractRecordDelta(entry))

		subcounts := mapAt(entry, "subcounts")
		for category, key := range recordCategories {
			rows := sliceAt(subcounts, key)
			if len(rows) == 0 {
				continue
			}
			builders, ok := byCategory[category]
			if !ok {
				builders = newRecordDeltaBuilders()
				byCategory[category] = builders
			}
			for _, raw := range rows {
				row, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				id := stringAt(row, "id")
				if id == "" {
					continue
				}
				builders.add(id, parseLabel(row["label"]), t, extractRecordDelta(row))
			}
		}
	}

	collection := RecordDeltaCollection{
		Global:     global.build(),
		Breakdowns: make(map[Category]RecordDeltaBreakdown, len(byCategory)),
	}
	for category, builders := range byCategory {
		collection.Breakdowns[category] = builders.build()
	}
	return collection
}

// totalPair sums metadataOnly and withFiles at a snapshot timestamp. No
// subtraction happens for snapshots.
func totalPair(m map[string]any) float64 {
	return numberAt(m, "metadata_only") + numberAt(m, "with_files")
}

func extractRecordSnapshotFull(row map[string]any, recordsKey, parentsKey, filesKey, uploadersKey string) recordDeltaValues {
	files := mapAt(row, filesKey)
	return recordDeltaValues{
		records:    totalPair(mapAt(row, recordsKey)),
		parents:    totalPair(mapAt(row, parentsKey)),
		uploaders:  numberAt(row, uploadersKey),
		fileCount:  numberAt(files, "file_count"),
		dataVolume: numberAt(files, "data_volume"),
	}
}

type recordSnapshotFullBuilders struct {
	builders recordDeltaBuilders
}

func (b recordSnapshotFullBuilders) build() RecordSnapshotFull {
	full := b.builders.build()
	return RecordSnapshotFull{
		Records:    full.Records,
		Parents:    full.Parents,
		Uploaders:  full.Uploaders,
		FileCount:  full.FileCount,
		DataVolume: full.DataVolume,
	}
}

// normalizeRecordSnapshots converts one year of record snapshot rows into
// category-keyed series collections, preserving the per-member metric
// asymmetry described on RecordSnapshotBreakdown.
func normalizeRecordSnapshots(entries []RawEntry) RecordSnapshotCollection {
	global := recordSnapshotFullBuilders{builders: newRecordDeltaBuilders()}
	filePresence := recordSnapshotFullBuilders{builders: newRecordDeltaBuilders()}

	type snapshotBuilders struct {
		records *seriesBuilder
		parents *seriesBuilder
	}
	byCategory := make(map[Category]snapshotBuilders)

	for _, entry := range entries {
		t, ok := parseDate(stringAt(entry, "snapshot_date"))
		if !ok {
			continue
		}

		global.builders.add(GlobalID, CategoryGlobal.Label(), t,
			extractRecordSnapshotFull(entry, "total_records", "total_parents", "total_files", "total_uploaders"))

		subcounts := mapAt(entry, "subcounts")
		for category, key := range recordCategories {
			rows := sliceAt(subcounts, key)
			if len(rows) == 0 {
				continue
			}
			for _, raw := range rows {
				row, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				id := stringAt(row, "id")
				if id == "" {
					continue
				}
				name := parseLabel(row["label"])

				if category == CategoryFilePresence {
					filePresence.builders.add(id, name, t,
						extractRecordSnapshotFull(row, "records", "parents", "files", "uploaders"))
					continue
				}

				builders, ok := byCategory[category]
				if !ok {
					builders = snapshotBuilders{
						records: newSeriesBuilder(ValueNumber),
						parents: newSeriesBuilder(ValueNumber),
					}
					byCategory[category] = builders
				}
				builders.records.add(id, name, t, totalPair(mapAt(row, "records")))
				builders.parents.add(id, name, t, totalPair(mapAt(row, "parents")))
			}
		}
	}

	collection := RecordSnapshotCollection{
		Global:       global.build(),
		FilePresence: filePresence.build(),
		Breakdowns:   make(map[Category]RecordSnapshotBreakdown, len(byCategory)),
	}
	for category, builders := range byCategory {
		collection.Breakdowns[category] = RecordSnapshotBreakdown{
			Records: builders.records.build(),
			Parents: builders.parents.build(),
		}
	}
	return collection
}

// usageValues is the multi-metric payload for one member of one usage row.
type usageValues struct {
	views      float64
	downloads  float64
	visitors   float64
	dataVolume float64
}

func extractUsage(row map[string]any) usageValues {
	views := numberAt(row, "views")
	downloads := numberAt(row, "downloads")
	return usageValues{
		views:      views,
		downloads:  downloads,
		visitors:   math.Max(views, downloads),
		dataVolume: numberAt(row, "data_volume"),
	}
}

type usageBuilders struct {
	views      *seriesBuilder
	downloads  *seriesBuilder
	visitors   *seriesBuilder
	dataVolume *seriesBuilder
}

func newUsageBuilders() usageBuilders {
	return usageBuilders{
		views:      newSeriesBuilder(ValueNumber),
		downloads:  newSeriesBuilder(ValueNumber),
		visitors:   newSeriesBuilder(ValueNumber),
		dataVolume: newSeriesBuilder(ValueFilesize),
	}
}

func (b usageBuilders) add(id, name string, t time.Time, v usageValues) {
	b.views.add(id, name, t, v.views)
	b.downloads.add(id, name, t, v.downloads)
	b.visitors.add(id, name, t, v.visitors)
	b.dataVolume.add(id, name, t, v.dataVolume)
}

func (b usageBuilders) build() UsageBreakdown {
	return UsageBreakdown{
		Views:      b.views.build(),
		Downloads:  b.downloads.build(),
		Visitors:   b.visitors.build(),
		DataVolume: b.dataVolume.build(),
	}
}

func normalizeUsage(entries []RawEntry, dateField string) (UsageBreakdown, map[Category]UsageBreakdown) {
	global := newUsageBuilders()
	byCategory := make(map[Category]usageBuilders)

	for _, entry := range entries {
		t, ok := parseDate(stringAt(entry, dateField))
		if !ok {
			continue
		}

		global.add(GlobalID, CategoryGlobal.Label(), t, extractUsage(entry))

		subcounts := mapAt(entry, "subcounts")
		for category, key := range usageCategories {
			rows := sliceAt(subcounts, key)
			if len(rows) == 0 {
				continue
			}
			builders, ok := byCategory[category]
			if !ok {
				builders = newUsageBuilders()
				byCategory[category] = builders
			}
			for _, raw := range rows {
				row, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				id := stringAt(row, "id")
				if id == "" {
					continue
				}
				builders.add(id, parseLabel(row["label"]), t, extractUsage(row))
			}
		}
	}

	breakdowns := make(map[Category]UsageBreakdown, len(byCategory))
	for category, builders := range byCategory {
		breakdowns[category] = builders.build()
	}
	return global.build(), breakdowns
}

// normalizeUsageDeltas converts one year of usage delta rows.
func normalizeUsageDeltas(entries []RawEntry) UsageDeltaCollection {
	global, breakdowns := normalizeUsage(entries, "period_start")
	return UsageDeltaCollection{Global: global, Breakdowns: breakdowns}
}

// normalizeUsageSnapshots converts one year of usage snapshot rows. A single
// snapshot row carries both view and download totals for the same member, so
// the split breakdowns are derived into independently addressable variants.
func normalizeUsageSnapshots(entries []RawEntry) UsageSnapshotCollection {
	global, breakdowns := normalizeUsage(entries, "snapshot_date")

	collection := UsageSnapshotCollection{
		Global:     global,
		Breakdowns: breakdowns,
		ByView:     make(map[Category]UsageViewBreakdown),
		ByDownload: make(map[Category]UsageDownloadBreakdown),
	}

	for _, category := range splitUsageCategories {
		breakdown, ok := breakdowns[category]
		if !ok {
			continue
		}
		collection.ByView[category] = UsageViewBreakdown{
			Views: cloneAll(breakdown.Views),
		}
		collection.ByDownload[category] = UsageDownloadBreakdown{
			Downloads:  cloneAll(breakdown.Downloads),
			DataVolume: cloneAll(breakdown.DataVolume),
		}
	}
	return collection
}

func cloneAll(series []DataSeries) []DataSeries {
	out := make([]DataSeries, len(series))
	for i, s := range series {
		out[i] = s.Clone()
	}
	return out
}

// YearBlock holds the normalized collections derived from one raw yearly
// document. Record collections are kept in three parallel per-basis copies.
type YearBlock struct {
	Year            int
	RecordDeltas    map[Basis]RecordDeltaCollection
	RecordSnapshots map[Basis]RecordSnapshotCollection
	UsageDeltas     UsageDeltaCollection
	UsageSnapshots  UsageSnapshotCollection
}

// Model is the fully normalized statistics model for one fetch. It is
// rebuilt whole whenever new raw documents arrive and treated as read-only
// shared state afterwards.
type Model struct {
	Blocks []YearBlock
}

// Normalize converts raw yearly aggregation documents into the canonical
// time-series model. Blocks are ordered ascending by year.
func Normalize(raw []RawYearBlock) Model {
	blocks := make([]YearBlock, 0, len(raw))
	for _, doc := range raw {
		block := YearBlock{
			Year:            doc.Year,
			RecordDeltas:    make(map[Basis]RecordDeltaCollection, len(AllBases)),
			RecordSnapshots: make(map[Basis]RecordSnapshotCollection, len(AllBases)),
			UsageDeltas:     normalizeUsageDeltas(doc.UsageDeltas),
			UsageSnapshots:  normalizeUsageSnapshots(doc.UsageSnapshots),
		}
		for _, basis := range AllBases {
			block.RecordDeltas[basis] = normalizeRecordDeltas(doc.RecordDeltas[basis])
			block.RecordSnapshots[basis] = normalizeRecordSnapshots(doc.RecordSnapshots[basis])
		}
		blocks = append(blocks, block)
	}

	slices.SortStableFunc(blocks, func(a, b YearBlock) int {
		return a.Year - b.Year
	})
	return Model{Blocks: blocks}
}

// Merged concatenates the picked series across every yearly block, matching
// members by id.
func (m Model) Merged(pick func(YearBlock) []DataSeries) []DataSeries {
	groups := make([][]DataSeries, 0, len(m.Blocks))
	for _, block := range m.Blocks {
		groups = append(groups, pick(block))
	}
	return MergeSeries(groups...)
}
