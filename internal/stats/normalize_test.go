package stats

import (
	"testing"
)

const yearBlock2023 = `{
	"year": 2023,
	"record_deltas_added": [
		{
			"period_start": "2023-06-01",
			"records": {"added": {"metadata_only": 2, "with_files": 3}, "removed": {"metadata_only": 1, "with_files": 0}},
			"parents": {"added": {"metadata_only": 2, "with_files": 2}, "removed": {"metadata_only": 0, "with_files": 0}},
			"files": {"added": {"file_count": 6, "data_volume": 6000}, "removed": {"file_count": 1, "data_volume": 1000}},
			"uploaders": 2,
			"subcounts": {
				"by_resource_type": [
					{
						"id": "dataset",
						"label": {"en": "Dataset", "de": "Datensatz"},
						"records": {"added": {"metadata_only": 1, "with_files": 2}, "removed": {"metadata_only": 0, "with_files": 0}},
						"parents": {"added": {"metadata_only": 1, "with_files": 1}, "removed": {"metadata_only": 0, "with_files": 0}},
						"files": {"added": {"file_count": 4, "data_volume": 4000}, "removed": {"file_count": 0, "data_volume": 0}},
						"uploaders": 1
					}
				]
			}
		}
	],
	"record_snapshots_added": [
		{
			"snapshot_date": "2023-12-31",
			"total_records": {"metadata_only": 10, "with_files": 30},
			"total_parents": {"metadata_only": 8, "with_files": 25},
			"total_files": {"file_count": 90, "data_volume": 90000},
			"total_uploaders": 12,
			"subcounts": {
				"by_resource_type": [
					{
						"id": "dataset",
						"label": {"en": "Dataset"},
						"records": {"metadata_only": 4, "with_files": 16},
						"parents": {"metadata_only": 3, "with_files": 12}
					}
				],
				"by_file_presence": [
					{
						"id": "with_files",
						"label": "With files",
						"records": {"metadata_only": 0, "with_files": 30},
						"parents": {"metadata_only": 0, "with_files": 25},
						"files": {"file_count": 90, "data_volume": 90000},
						"uploaders": 11
					}
				]
			}
		}
	],
	"usage_deltas": [
		{
			"period_start": "2023-06-01",
			"views": 40,
			"downloads": 55,
			"data_volume": 5500,
			"subcounts": {
				"by_country": [
					{"id": "US", "label": "United States", "views": 25, "downloads": 30, "data_volume": 3000}
				]
			}
		}
	],
	"usage_snapshots": [
		{
			"snapshot_date": "2023-12-31",
			"views": 400,
			"downloads": 550,
			"data_volume": 55000,
			"subcounts": {
				"by_country": [
					{"id": "US", "label": "United States", "views": 250, "downloads": 300, "data_volume": 30000}
				],
				"by_resource_type": [
					{"id": "dataset", "label": {"en": "Dataset"}, "views": 180, "downloads": 210, "data_volume": 21000}
				]
			}
		}
	]
}`

const yearBlock2024 = `{
	"year": 2024,
	"record_deltas_added": [
		{
			"period_start": "2024-01-15",
			"records": {"added": {"metadata_only": 0, "with_files": 5}, "removed": {"metadata_only": 0, "with_files": 0}},
			"parents": {"added": {"metadata_only": 0, "with_files": 5}, "removed": {"metadata_only": 0, "with_files": 0}},
			"files": {"added": {"file_count": 10, "data_volume": 10000}, "removed": {"file_count": 0, "data_volume": 0}},
			"uploaders": 3,
			"subcounts": {
				"by_resource_type": [
					{
						"id": "dataset",
						"label": {"en": "Dataset"},
						"records": {"added": {"metadata_only": 0, "with_files": 5}, "removed": {"metadata_only": 0, "with_files": 0}},
						"parents": {"added": {"metadata_only": 0, "with_files": 5}, "removed": {"metadata_only": 0, "with_files": 0}},
						"files": {"added": {"file_count": 10, "data_volume": 10000}, "removed": {"file_count": 0, "data_volume": 0}},
						"uploaders": 3
					}
				]
			}
		}
	],
	"record_snapshots_added": [
		{
			"snapshot_date": "2024-12-31",
			"total_records": {"metadata_only": 10, "with_files": 35},
			"total_parents": {"metadata_only": 8, "with_files": 30},
			"total_files": {"file_count": 100, "data_volume": 100000},
			"total_uploaders": 15,
			"subcounts": {}
		}
	],
	"usage_deltas": [],
	"usage_snapshots": []
}`

func testModel(t *testing.T) Model {
	t.Helper()
	blocks, err := ParseYearBlocks([]byte("[" + yearBlock2023 + "," + yearBlock2024 + "]"))
	if err != nil {
		t.Fatalf("ParseYearBlocks failed: %v", err)
	}
	return Normalize(blocks)
}

func TestNormalize_RecordDeltaNetValues(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	if len(model.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(model.Blocks))
	}

	deltas := model.Blocks[0].RecordDeltas[BasisAdded]
	global := deltas.Global

	tests := []struct {
		name   string
		series []DataSeries
		want   float64
	}{
		{"records net", global.Records, 4},      // (2+3) - (1+0)
		{"parents net", global.Parents, 4},      // (2+2) - 0
		{"uploaders flat", global.Uploaders, 2},
		{"file count net", global.FileCount, 5},     // 6 - 1
		{"data volume net", global.DataVolume, 5000}, // 6000 - 1000
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.series) != 1 {
				t.Fatalf("global must have exactly one member, got %d", len(tt.series))
			}
			if len(tt.series[0].Data) != 1 {
				t.Fatalf("got %d points, want 1", len(tt.series[0].Data))
			}
			if got := tt.series[0].Data[0].Value; got != tt.want {
				t.Fatalf("value = %v, want %v", got, tt.want)
			}
		})
	}

	if got := global.DataVolume[0].ValueType; got != ValueFilesize {
		t.Fatalf("data volume value type = %q, want filesize", got)
	}
}

func TestNormalize_BreakdownMemberAndLabel(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	breakdown := model.Blocks[0].RecordDeltas[BasisAdded].Breakdowns[CategoryResourceTypes]

	if len(breakdown.Records) != 1 {
		t.Fatalf("got %d members, want 1", len(breakdown.Records))
	}
	member := breakdown.Records[0]
	if member.ID != "dataset" {
		t.Fatalf("member id = %q, want dataset", member.ID)
	}
	// Localized label objects resolve to one display string.
	if member.Name != "Dataset" {
		t.Fatalf("member name = %q, want resolved English label", member.Name)
	}
	if member.Data[0].Value != 3 { // (1+2) - 0
		t.Fatalf("member net = %v, want 3", member.Data[0].Value)
	}
}

func TestNormalize_SnapshotAsymmetry(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	snapshots := model.Blocks[0].RecordSnapshots[BasisAdded]

	// Global carries the full metric set, summed with no subtraction.
	if got := snapshots.Global.Records[0].Data[0].Value; got != 40 {
		t.Fatalf("global snapshot records = %v, want 40", got)
	}
	if got := snapshots.Global.Uploaders[0].Data[0].Value; got != 12 {
		t.Fatalf("global snapshot uploaders = %v, want 12", got)
	}
	if got := snapshots.Global.DataVolume[0].Data[0].Value; got != 90000 {
		t.Fatalf("global snapshot data volume = %v, want 90000", got)
	}

	// File presence is the only breakdown with the full set.
	presence := snapshots.FilePresence
	if len(presence.Uploaders) != 1 || presence.Uploaders[0].Data[0].Value != 11 {
		t.Fatalf("file presence uploaders = %+v, want one member with 11", presence.Uploaders)
	}

	// Per-member snapshots carry records and parents only.
	breakdown, ok := snapshots.Breakdowns[CategoryResourceTypes]
	if !ok {
		t.Fatal("resource type snapshot breakdown missing")
	}
	if got := breakdown.Records[0].Data[0].Value; got != 20 {
		t.Fatalf("snapshot member records = %v, want 20", got)
	}
	if got := breakdown.Parents[0].Data[0].Value; got != 15 {
		t.Fatalf("snapshot member parents = %v, want 15", got)
	}
}

func TestNormalize_UsageVisitors(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	usage := model.Blocks[0].UsageDeltas

	if got := usage.Global.Views[0].Data[0].Value; got != 40 {
		t.Fatalf("views = %v, want 40", got)
	}
	if got := usage.Global.Downloads[0].Data[0].Value; got != 55 {
		t.Fatalf("downloads = %v, want 55", got)
	}
	// Visitors are estimated as max(views, downloads).
	if got := usage.Global.Visitors[0].Data[0].Value; got != 55 {
		t.Fatalf("visitors = %v, want 55", got)
	}
}

func TestNormalize_UsageSnapshotSplitVariants(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	snapshots := model.Blocks[0].UsageSnapshots

	byView, ok := snapshots.ByView[CategoryCountries]
	if !ok {
		t.Fatal("countries by-view variant missing")
	}
	if got := byView.Views[0].Data[0].Value; got != 250 {
		t.Fatalf("by-view value = %v, want 250", got)
	}

	byDownload, ok := snapshots.ByDownload[CategoryCountries]
	if !ok {
		t.Fatal("countries by-download variant missing")
	}
	if got := byDownload.Downloads[0].Data[0].Value; got != 300 {
		t.Fatalf("by-download value = %v, want 300", got)
	}
	if got := byDownload.DataVolume[0].Data[0].Value; got != 30000 {
		t.Fatalf("by-download data volume = %v, want 30000", got)
	}

	// Resource types are not a split dimension.
	if _, ok := snapshots.ByView[CategoryResourceTypes]; ok {
		t.Fatal("resource types must not be split")
	}
	if _, ok := snapshots.Breakdowns[CategoryResourceTypes]; !ok {
		t.Fatal("unsplit resource type breakdown missing")
	}
}

func TestNormalize_MergedAcrossYears(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	pick, ok := PickSeries(Selector{Domain: DomainRecords, Cadence: CadenceDelta, Basis: BasisAdded}, CategoryResourceTypes, MetricRecords)
	if !ok {
		t.Fatal("PickSeries refused a valid combination")
	}

	merged := model.Merged(pick)

	if len(merged) != 1 {
		t.Fatalf("got %d members, want 1 (same id across years)", len(merged))
	}
	if len(merged[0].Data) != 2 {
		t.Fatalf("got %d points, want 2 concatenated across years", len(merged[0].Data))
	}
	if !merged[0].Data[0].Time.Before(merged[0].Data[1].Time) {
		t.Fatal("merged points not in ascending time order")
	}
}

func TestNormalize_MalformedInput(t *testing.T) {
	t.Parallel()

	raw := `[{
		"year": 2024,
		"record_deltas_added": [
			{"period_start": "not-a-date", "records": {"added": {"metadata_only": 1}}},
			{"period_start": "2024-03-01", "records": "garbage", "uploaders": "many"},
			{"period_start": "2024-04-01", "records": {"added": {"metadata_only": "7", "with_files": null}}}
		]
	}]`

	blocks, err := ParseYearBlocks([]byte(raw))
	if err != nil {
		t.Fatalf("ParseYearBlocks failed: %v", err)
	}

	model := Normalize(blocks)
	global := model.Blocks[0].RecordDeltas[BasisAdded].Global

	// The unparseable row is skipped; malformed fields contribute 0.
	if len(global.Records) != 1 || len(global.Records[0].Data) != 2 {
		t.Fatalf("got %+v, want 2 points from the parseable rows", global.Records)
	}
	if got := global.Records[0].Data[0].Value; got != 0 {
		t.Fatalf("garbage records row = %v, want 0", got)
	}
	if got := global.Records[0].Data[1].Value; got != 7 {
		t.Fatalf("numeric-string row = %v, want 7", got)
	}
}

func TestNormalize_BlocksSortedByYear(t *testing.T) {
	t.Parallel()

	blocks, err := ParseYearBlocks([]byte("[" + yearBlock2024 + "," + yearBlock2023 + "]"))
	if err != nil {
		t.Fatalf("ParseYearBlocks failed: %v", err)
	}

	model := Normalize(blocks)

	if model.Blocks[0].Year != 2023 || model.Blocks[1].Year != 2024 {
		t.Fatalf("blocks out of order: %d, %d", model.Blocks[0].Year, model.Blocks[1].Year)
	}
}
