package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// RawEntry is one per-period row of a raw aggregation document. Rows are kept
// loosely typed because field sets vary by domain and cadence; extraction
// goes through the defensive parse helpers and substitutes 0 for anything
// absent or malformed.
type RawEntry map[string]any

// RawYearBlock is one raw aggregation document, covering exactly one
// calendar year of periods.
type RawYearBlock struct {
	Year            int
	RecordDeltas    map[Basis][]RawEntry
	RecordSnapshots map[Basis][]RawEntry
	UsageDeltas     []RawEntry
	UsageSnapshots  []RawEntry
}

// UnmarshalJSON decodes a yearly document, mapping the basis-suffixed keys
// (record_deltas_added, record_snapshots_published, ...) into per-basis rows.
func (b *RawYearBlock) UnmarshalJSON(data []byte) error {
	var doc struct {
		Year                     json.Number `json:"year"`
		RecordDeltasAdded        []RawEntry  `json:"record_deltas_added"`
		RecordDeltasCreated      []RawEntry  `json:"record_deltas_created"`
		RecordDeltasPublished    []RawEntry  `json:"record_deltas_published"`
		RecordSnapshotsAdded     []RawEntry  `json:"record_snapshots_added"`
		RecordSnapshotsCreated   []RawEntry  `json:"record_snapshots_created"`
		RecordSnapshotsPublished []RawEntry  `json:"record_snapshots_published"`
		UsageDeltas              []RawEntry  `json:"usage_deltas"`
		UsageSnapshots           []RawEntry  `json:"usage_snapshots"`
	}
	if err := safeParseJSON(data, &doc); err != nil {
		return err
	}

	year, _ := doc.Year.Int64()
	b.Year = int(year)
	b.RecordDeltas = map[Basis][]RawEntry{
		BasisAdded:     doc.RecordDeltasAdded,
		BasisCreated:   doc.RecordDeltasCreated,
		BasisPublished: doc.RecordDeltasPublished,
	}
	b.RecordSnapshots = map[Basis][]RawEntry{
		BasisAdded:     doc.RecordSnapshotsAdded,
		BasisCreated:   doc.RecordSnapshotsCreated,
		BasisPublished: doc.RecordSnapshotsPublished,
	}
	b.UsageDeltas = doc.UsageDeltas
	b.UsageSnapshots = doc.UsageSnapshots
	return nil
}

// ParseYearBlocks decodes a JSON array of yearly aggregation documents.
func ParseYearBlocks(data []byte) ([]RawYearBlock, error) {
	var blocks []RawYearBlock
	if err := safeParseJSON(data, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// safeParseJSON decodes JSON while preserving numbers as json.Number.
// It mirrors json.Unmarshal by rejecting trailing non-whitespace data.
func safeParseJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra JSON input")
	}
	return nil
}
