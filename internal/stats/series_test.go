package stats

import (
	"testing"
	"time"
)

// day parses a test date in UTC.
func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// pt builds a plain numeric test point.
func pt(date string, value float64) DataPoint {
	return NewDataPoint(day(date), value, ValueNumber)
}

// testSeries builds a named series from points.
func testSeries(id string, points ...DataPoint) DataSeries {
	return DataSeries{ID: id, Name: id, Type: "line", ValueType: ValueNumber, Data: points}
}

func TestMergeSeries_ConcatenatesSharedMembers(t *testing.T) {
	t.Parallel()

	year1 := []DataSeries{
		testSeries("dataset", pt("2023-02-01", 5), pt("2023-06-01", 7)),
		testSeries("software", pt("2023-03-01", 2)),
	}
	year2 := []DataSeries{
		testSeries("dataset", pt("2024-01-01", 9)),
		testSeries("image", pt("2024-02-01", 1)),
	}

	merged := MergeSeries(year1, year2)

	if len(merged) != 3 {
		t.Fatalf("MergeSeries returned %d series, want 3", len(merged))
	}
	if merged[0].ID != "dataset" || merged[1].ID != "software" || merged[2].ID != "image" {
		t.Fatalf("unexpected member order: %s, %s, %s", merged[0].ID, merged[1].ID, merged[2].ID)
	}
	if len(merged[0].Data) != 3 {
		t.Fatalf("dataset series has %d points, want 3 (concatenated, not overwritten)", len(merged[0].Data))
	}
	for i := 1; i < len(merged[0].Data); i++ {
		if merged[0].Data[i].Time.Before(merged[0].Data[i-1].Time) {
			t.Fatalf("merged points out of order at %d", i)
		}
	}
}

func TestMergeSeries_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := testSeries("dataset", pt("2023-02-01", 5))
	group := []DataSeries{original}

	merged := MergeSeries(group, []DataSeries{testSeries("dataset", pt("2024-01-01", 9))})
	merged[0].Data[0] = pt("2020-01-01", 0)

	if len(group[0].Data) != 1 || group[0].Data[0].Value != 5 {
		t.Fatalf("input series mutated: %+v", group[0].Data)
	}
}

func TestDataSeries_Latest(t *testing.T) {
	t.Parallel()

	empty := testSeries("empty")
	if _, ok := empty.Latest(); ok {
		t.Fatal("Latest on empty series reported ok")
	}

	s := testSeries("views", pt("2024-01-01", 1), pt("2024-02-01", 2))
	latest, ok := s.Latest()
	if !ok || latest.Value != 2 {
		t.Fatalf("Latest = %+v, %v; want value 2", latest, ok)
	}
}

func TestNewDataPoint_ReadableDate(t *testing.T) {
	t.Parallel()

	p := NewDataPoint(day("2024-01-15"), 3, ValueFilesize)
	if p.ReadableDate != "Jan 15, 2024" {
		t.Fatalf("ReadableDate = %q, want %q", p.ReadableDate, "Jan 15, 2024")
	}
	if p.ValueType != ValueFilesize {
		t.Fatalf("ValueType = %q, want filesize", p.ValueType)
	}
}
