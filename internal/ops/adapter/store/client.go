package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/config"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

const defaultBaseURL = "https://api.airtable.com"

// ErrRecordNotFound is the store-level miss; repos translate it into the
// entity sentinel the caller expects.
var ErrRecordNotFound = errors.New("record not found")

// Client is a thin REST client for the record store. One instance is built at
// startup and shared by every repo.
type Client struct {
	baseURL string
	apiKey  string
	baseID  string
	httpc   *http.Client
	mylog   logger.Logger
}

func NewClient(cfg *config.RecordStore, mylog logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		baseID:  cfg.BaseID,
		httpc:   &http.Client{Timeout: core.WaitTime * time.Second},
		mylog:   mylog.With("adapter", "record_store"),
	}
}

// Record is one row of a table. Fields hold the raw JSON values; the typed
// accessors below absorb the store's loose typing (numbers as float64,
// lookups as arrays).
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type Sort struct {
	Field     string
	Direction string // "asc" | "desc"
}

type ListOptions struct {
	Formula    string
	MaxRecords int
	Sort       []Sort
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	q := url.Values{}
	if opts.Formula != "" {
		q.Set("filterByFormula", opts.Formula)
	}
	if opts.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	for i, s := range opts.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
	}

	endpoint := c.tableURL(table)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out listResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (c *Client) GetRecord(ctx context.Context, table, id string) (Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) UpdateRecord(ctx context.Context, table, id string, fields map[string]any) (Record, error) {
	body, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return Record{}, err
	}
	var out Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), body, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/v0/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.mylog.Action("store_request_failed").Error("Record store unreachable", err, "method", method)
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrRecordNotFound
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.mylog.Action("store_request_failed").Error(
			"Record store returned an error",
			fmt.Errorf("status %d", resp.StatusCode),
			"method", method, "body", string(data),
		)
		return fmt.Errorf("%w: status %d", core.ErrStoreUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Typed field accessors. Lookup and link fields arrive as arrays even when
// semantically single-valued; the scalar accessors collapse them to their
// first element.

func (r Record) str(field string) string {
	switch v := r.Fields[field].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func (r Record) strs(field string) []string {
	switch v := r.Fields[field].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (r Record) num(field string) float64 {
	switch v := r.Fields[field].(type) {
	case float64:
		return v
	case []any:
		if len(v) > 0 {
			if f, ok := v[0].(float64); ok {
				return f
			}
		}
	}
	return 0
}

func (r Record) intval(field string) int {
	return int(r.num(field))
}

func (r Record) boolean(field string) bool {
	v, ok := r.Fields[field].(bool)
	return ok && v
}

// date parses date-only and timestamp values.
func (r Record) date(field string) *time.Time {
	s := r.str(field)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
