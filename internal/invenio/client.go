// Package invenio provides the InvenioRDM statistics API client and the
// Redis-backed cache for normalized statistics models.
package invenio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

// Client fetches raw aggregation documents and record listings from an
// InvenioRDM instance.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates an API client for the given instance base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api url %q has no scheme or host", baseURL)
	}

	return &Client{
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: parsed.String(),
	}, nil
}

// BaseURL returns the configured instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CommunityStats fetches the yearly aggregation documents for a community
// over an inclusive year range.
func (c *Client) CommunityStats(ctx context.Context, communityID string, startYear, endYear int) ([]stats.RawYearBlock, error) {
	endpoint := fmt.Sprintf("%s/api/stats/communities/%s", c.baseURL, url.PathEscape(communityID))
	query := url.Values{
		"start_year": {strconv.Itoa(startYear)},
		"end_year":   {strconv.Itoa(endYear)},
	}

	body, err := c.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch community stats: %w", err)
	}

	blocks, err := stats.ParseYearBlocks(body)
	if err != nil {
		return nil, fmt.Errorf("decode community stats: %w", err)
	}
	return blocks, nil
}

// RecordSort selects the ordering of a record listing.
type RecordSort string

const (
	// SortMostViewed orders records by view count descending.
	SortMostViewed RecordSort = "mostviewed"
	// SortMostDownloaded orders records by download count descending.
	SortMostDownloaded RecordSort = "mostdownloaded"
)

// TopRecordsQuery addresses one page of a most-viewed or most-downloaded
// record listing.
type TopRecordsQuery struct {
	CommunityID string
	Sort        RecordSort
	Page        int
	PageSize    int
	Range       stats.DateRange
}

// RecordSummary is one record row of a top-records listing.
type RecordSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Views     float64 `json:"views"`
	Downloads float64 `json:"downloads"`
}

// RecordPage is one page of a top-records listing.
type RecordPage struct {
	Records []RecordSummary `json:"hits"`
	Total   int             `json:"total"`
}

// TopRecords fetches one page of the most-viewed or most-downloaded record
// listing. These listings feed two display widgets directly and bypass the
// transformation engine.
func (c *Client) TopRecords(ctx context.Context, q TopRecordsQuery) (RecordPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	sort := q.Sort
	if sort == "" {
		sort = SortMostViewed
	}

	query := url.Values{
		"sort": {string(sort)},
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.PageSize)},
	}
	if !q.Range.Start.IsZero() {
		query.Set("start_date", q.Range.Start.Format("2006-01-02"))
	}
	if !q.Range.End.IsZero() {
		query.Set("end_date", q.Range.End.Format("2006-01-02"))
	}

	endpoint := fmt.Sprintf("%s/api/stats/communities/%s/records", c.baseURL, url.PathEscape(q.CommunityID))
	body, err := c.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return RecordPage{}, fmt.Errorf("fetch top records: %w", err)
	}

	var page RecordPage
	if err := json.Unmarshal(body, &page); err != nil {
		return RecordPage{}, fmt.Errorf("decode top records: %w", err)
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, err
	}
	return body, nil
}
