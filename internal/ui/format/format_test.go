package format

import (
	"testing"
	"time"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small", n: 999, want: "999"},
		{name: "thousand", n: 1_000, want: "1.0K"},
		{name: "thousands", n: 12_345, want: "12.3K"},
		{name: "million", n: 2_500_000, want: "2.5M"},
		{name: "billion", n: 1_200_000_000, want: "1.2B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.n); got != tt.want {
				t.Fatalf("Number(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestShortNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small", n: 999, want: "999"},
		{name: "fraction", n: 9_900, want: "9.9K"},
		{name: "whole-k", n: 120_000, want: "120K"},
		{name: "fraction-m", n: 2_500_000, want: "2.5M"},
		{name: "whole-m", n: 120_000_000, want: "120M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortNumber(tt.n); got != tt.want {
				t.Fatalf("ShortNumber(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "bytes", bytes: 512, want: "512 B"},
		{name: "kilobyte", bytes: 1024, want: "1.0 KB"},
		{name: "kilobyte-fraction", bytes: 1536, want: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, want: "1.0 MB"},
		{name: "gigabyte", bytes: 1024 * 1024 * 1024, want: "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bytes(tt.bytes); got != tt.want {
				t.Fatalf("Bytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestValue(t *testing.T) {
	if got := Value(2048, stats.ValueFilesize); got != "2.0 KB" {
		t.Fatalf("Value(2048, filesize) = %q, want %q", got, "2.0 KB")
	}
	if got := Value(2048, stats.ValueNumber); got != "2.0K" {
		t.Fatalf("Value(2048, number) = %q, want %q", got, "2.0K")
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		defined bool
		want    string
	}{
		{name: "undefined", rate: 0, defined: false, want: "-"},
		{name: "positive", rate: 50, defined: true, want: "+50.0%"},
		{name: "negative", rate: -12.5, defined: true, want: "-12.5%"},
		{name: "zero", rate: 0, defined: true, want: "+0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.rate, tt.defined); got != tt.want {
				t.Fatalf("Rate(%v, %v) = %q, want %q", tt.rate, tt.defined, got, tt.want)
			}
		})
	}
}

func TestRangeLabel(t *testing.T) {
	day := func(value string) time.Time {
		out, err := time.Parse("2006-01-02", value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		return out
	}

	tests := []struct {
		name string
		r    stats.DateRange
		want string
	}{
		{name: "unbounded", r: stats.DateRange{}, want: "all time"},
		{name: "bounded", r: stats.DateRange{Start: day("2023-01-01"), End: day("2023-06-30")}, want: "2023-01-01 – 2023-06-30"},
		{name: "open-start", r: stats.DateRange{End: day("2023-06-30")}, want: "... – 2023-06-30"},
		{name: "open-end", r: stats.DateRange{Start: day("2023-01-01")}, want: "2023-01-01 – ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangeLabel(tt.r); got != tt.want {
				t.Fatalf("RangeLabel(%v) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}
}
