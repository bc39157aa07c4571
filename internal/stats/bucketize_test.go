package stats

import (
	"math"
	"testing"
)

var testPalette = []string{"#4dabf7", "#f783ac", "#69db7c", "#ffd43b"}

// bucketInput is deliberately unordered; ranking is Bucketize's job.
func bucketInput() []DataSeries {
	return []DataSeries{
		testSeries("c", pt("2024-01-01", 25)),
		testSeries("a", pt("2024-01-01", 100)),
		testSeries("d", pt("2024-01-01", 25)),
		testSeries("b", pt("2024-01-01", 50)),
	}
}

func TestBucketize_TopNPlusOther(t *testing.T) {
	t.Parallel()

	result := Bucketize(bucketInput(), 2, "metadata.resource_type.id", testPalette)

	if result.Total != 200 {
		t.Fatalf("Total = %v, want 200", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(result.Entries))
	}

	wantEntries := []struct {
		id    string
		value float64
		pct   float64
	}{
		{"a", 100, 50},
		{"b", 50, 25},
	}
	for i, want := range wantEntries {
		entry := result.Entries[i]
		if entry.ID != want.id || entry.Value != want.value || entry.Percentage != want.pct {
			t.Errorf("entry %d = {%s %v %v%%}, want {%s %v %v%%}",
				i, entry.ID, entry.Value, entry.Percentage, want.id, want.value, want.pct)
		}
		if entry.Color != testPalette[i] {
			t.Errorf("entry %d color = %q, want %q", i, entry.Color, testPalette[i])
		}
		if entry.Link == "" {
			t.Errorf("entry %d has no search link", i)
		}
	}

	if result.Other == nil {
		t.Fatal("Other bucket missing")
	}
	if result.Other.ID != OtherID {
		t.Fatalf("Other id = %q, want %q", result.Other.ID, OtherID)
	}
	if result.Other.Value != 50 || result.Other.Percentage != 25 {
		t.Fatalf("Other = %v/%v%%, want 50/25%%", result.Other.Value, result.Other.Percentage)
	}
	if result.Other.Link != "" {
		t.Fatalf("Other must not link to a search: %q", result.Other.Link)
	}
}

func TestBucketize_NoRemainderMeansNilOther(t *testing.T) {
	t.Parallel()

	result := Bucketize(bucketInput(), 10, "", testPalette)

	if result.Other != nil {
		t.Fatalf("Other = %+v, want nil when every member is shown", result.Other)
	}
	if len(result.Entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(result.Entries))
	}
}

func TestBucketize_ZeroTotal(t *testing.T) {
	t.Parallel()

	series := []DataSeries{
		testSeries("a", pt("2024-01-01", 0)),
		testSeries("b", pt("2024-01-01", 0)),
		testSeries("c"),
	}

	result := Bucketize(series, 2, "", testPalette)

	if result.Total != 0 {
		t.Fatalf("Total = %v, want 0", result.Total)
	}
	for i, entry := range result.Entries {
		if entry.Percentage != 0 || math.IsNaN(entry.Percentage) {
			t.Errorf("entry %d percentage = %v, want exactly 0", i, entry.Percentage)
		}
	}
	if result.Other == nil || result.Other.Percentage != 0 {
		t.Fatalf("Other = %+v, want zero percentage", result.Other)
	}
}

func TestBucketize_MissingPointCountsAsZero(t *testing.T) {
	t.Parallel()

	series := []DataSeries{
		testSeries("a", pt("2024-01-01", 80)),
		testSeries("empty"),
		testSeries("b", pt("2024-01-01", 20)),
	}

	result := Bucketize(series, 3, "", testPalette)

	if result.Total != 100 {
		t.Fatalf("Total = %v, want 100", result.Total)
	}
	if result.Entries[2].ID != "empty" || result.Entries[2].Value != 0 || result.Entries[2].Percentage != 0 {
		t.Fatalf("empty member = %+v, want zero value ranked last", result.Entries[2])
	}
}

func TestBucketize_PercentagesSumNear100(t *testing.T) {
	t.Parallel()

	series := []DataSeries{
		testSeries("a", pt("2024-01-01", 33)),
		testSeries("b", pt("2024-01-01", 33)),
		testSeries("c", pt("2024-01-01", 33)),
		testSeries("d", pt("2024-01-01", 1)),
	}

	result := Bucketize(series, 3, "", testPalette)

	sum := 0.0
	for _, entry := range result.Entries {
		sum += entry.Percentage
	}
	if result.Other != nil {
		sum += result.Other.Percentage
	}
	if math.Abs(sum-100) > 1 {
		t.Fatalf("percentages sum to %v, want within 1 of 100", sum)
	}
}

func TestBucketize_PaletteCycles(t *testing.T) {
	t.Parallel()

	series := make([]DataSeries, 6)
	for i := range series {
		series[i] = testSeries(string(rune('a'+i)), pt("2024-01-01", 10))
	}

	result := Bucketize(series, 6, "", testPalette[:2])

	for i, entry := range result.Entries {
		want := testPalette[i%2]
		if entry.Color != want {
			t.Errorf("entry %d color = %q, want %q", i, entry.Color, want)
		}
	}
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	if got := ColorFor(5, testPalette); got != testPalette[1] {
		t.Fatalf("ColorFor(5) = %q, want %q", got, testPalette[1])
	}
	if got := ColorFor(0, nil); got != "" {
		t.Fatalf("ColorFor with empty palette = %q, want empty", got)
	}
}

func TestChartEntries_DominantOtherBecomesAnnotation(t *testing.T) {
	t.Parallel()

	// Two large members and a long tail that dwarfs them in aggregate.
	series := []DataSeries{
		testSeries("a", pt("2024-01-01", 12)),
		testSeries("b", pt("2024-01-01", 8)),
	}
	for i := 0; i < 10; i++ {
		series = append(series, testSeries(string(rune('c'+i)), pt("2024-01-01", 8)))
	}
	result := Bucketize(series, 2, "", testPalette)

	entries, annotation := result.ChartEntries(50)
	if len(entries) != 2 {
		t.Fatalf("dominant Other still charted: %d entries", len(entries))
	}
	if annotation == "" {
		t.Fatal("missing floating annotation for hidden Other")
	}
	// The numbers behind the chart stay untouched.
	if result.Other == nil || result.Other.Value != 80 {
		t.Fatalf("Other data altered: %+v", result.Other)
	}

	entries, annotation = result.ChartEntries(90)
	if len(entries) != 3 || annotation != "" {
		t.Fatalf("below-threshold Other hidden: %d entries, %q", len(entries), annotation)
	}
}

func TestChartEntries_NoOther(t *testing.T) {
	t.Parallel()

	result := Bucketize(bucketInput(), 10, "", testPalette)
	entries, annotation := result.ChartEntries(50)
	if len(entries) != 4 || annotation != "" {
		t.Fatalf("ChartEntries without Other: %d entries, %q", len(entries), annotation)
	}
}
