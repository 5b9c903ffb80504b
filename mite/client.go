// Package mite is a client for the mite time-tracking API. It covers the
// time-entry CRUD and tracker operations the CLI needs; entries are
// normalized into worklog.Entry at this boundary.
package mite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gomite/worklog"
)

const dayLayout = "2006-01-02"

// AtOptions are the relative range keywords the time_entries endpoint
// accepts via the at parameter.
var AtOptions = []string{
	"today",
	"yesterday",
	"this_week",
	"last_week",
	"this_month",
	"last_month",
	"this_year",
	"last_year",
}

// Client defines the mite API operations used by the application.
type Client interface {
	ListEntries(ctx context.Context, from, to time.Time) ([]worklog.Entry, error)
	ListEntriesAt(ctx context.Context, at string) ([]worklog.Entry, error)
	CreateEntry(ctx context.Context, entry NewEntry) (worklog.Entry, error)
	UpdateEntry(ctx context.Context, id int64, patch EntryPatch) error
	DeleteEntry(ctx context.Context, id int64) error
	Tracker(ctx context.Context) (*Tracking, error)
	StartTracker(ctx context.Context, id int64) (*Tracking, error)
	StopTracker(ctx context.Context, id int64) (*Tracking, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	// Account is the mite subdomain; the base URL is derived from it
	// unless BaseURL overrides it (tests, self-hosted proxies).
	Account    string
	APIKey     string
	BaseURL    string
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	account    string
	apiKey     string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	account := strings.TrimSpace(cfg.Account)
	if account == "" {
		return nil, errors.New("mite account is required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("mite api key is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.mite.yo.lk", account)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid mite URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		account:    account,
		apiKey:     apiKey,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

// NewEntry is the payload for creating a time entry.
type NewEntry struct {
	Date      time.Time
	Minutes   int
	Note      string
	ProjectID int64
	ServiceID int64
}

// EntryPatch carries partial updates; nil fields are left untouched.
type EntryPatch struct {
	Date      *time.Time
	Minutes   *int
	Note      *string
	ProjectID *int64
	ServiceID *int64
}

func (p EntryPatch) isEmpty() bool {
	return p.Date == nil && p.Minutes == nil && p.Note == nil && p.ProjectID == nil && p.ServiceID == nil
}

// Tracking is the state of the live tracker on one entry.
type Tracking struct {
	ID      int64  `json:"id"`
	Minutes int    `json:"minutes"`
	Since   string `json:"since"`
}

type timeEntryPayload struct {
	ID           int64  `json:"id,omitempty"`
	Minutes      int    `json:"minutes"`
	DateAt       string `json:"date_at,omitempty"`
	Note         string `json:"note,omitempty"`
	CustomerID   int64  `json:"customer_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	ProjectID    int64  `json:"project_id,omitempty"`
	ProjectName  string `json:"project_name,omitempty"`
	ServiceID    int64  `json:"service_id,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`
	Locked       bool   `json:"locked,omitempty"`
}

type timeEntryEnvelope struct {
	TimeEntry timeEntryPayload `json:"time_entry"`
}

type trackerEnvelope struct {
	Tracker struct {
		TrackingTimeEntry *Tracking `json:"tracking_time_entry"`
	} `json:"tracker"`
}

type patchPayload struct {
	Minutes   *int    `json:"minutes,omitempty"`
	DateAt    *string `json:"date_at,omitempty"`
	Note      *string `json:"note,omitempty"`
	ProjectID *int64  `json:"project_id,omitempty"`
	ServiceID *int64  `json:"service_id,omitempty"`
}

func (c *HTTPClient) ListEntries(ctx context.Context, from, to time.Time) ([]worklog.Entry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid entry range: %s > %s", FormatDay(from), FormatDay(to))
	}
	path := fmt.Sprintf("/time_entries.json?user_id=current&from=%s&to=%s", FormatDay(from), FormatDay(to))
	return c.listEntries(ctx, path)
}

func (c *HTTPClient) ListEntriesAt(ctx context.Context, at string) ([]worklog.Entry, error) {
	at = strings.TrimSpace(strings.ToLower(at))
	if !validAtOption(at) {
		return nil, fmt.Errorf("unsupported at option %q (supported: %s)", at, strings.Join(AtOptions, ", "))
	}
	path := fmt.Sprintf("/time_entries.json?user_id=current&at=%s", url.QueryEscape(at))
	return c.listEntries(ctx, path)
}

func (c *HTTPClient) listEntries(ctx context.Context, path string) ([]worklog.Entry, error) {
	var envelopes []timeEntryEnvelope
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &envelopes); err != nil {
		return nil, err
	}

	entries := make([]worklog.Entry, 0, len(envelopes))
	for _, envelope := range envelopes {
		entry, err := toEntry(envelope.TimeEntry)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, entry NewEntry) (worklog.Entry, error) {
	if entry.Minutes <= 0 {
		return worklog.Entry{}, errors.New("entry minutes must be positive")
	}

	payload := timeEntryEnvelope{TimeEntry: timeEntryPayload{
		Minutes:   entry.Minutes,
		DateAt:    FormatDay(entry.Date),
		Note:      entry.Note,
		ProjectID: entry.ProjectID,
		ServiceID: entry.ServiceID,
	}}

	var created timeEntryEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/time_entries.json", payload, &created); err != nil {
		return worklog.Entry{}, err
	}
	return toEntry(created.TimeEntry)
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id int64, patch EntryPatch) error {
	if patch.isEmpty() {
		return errors.New("entry patch must not be empty")
	}

	body := patchPayload{
		Minutes:   patch.Minutes,
		Note:      patch.Note,
		ProjectID: patch.ProjectID,
		ServiceID: patch.ServiceID,
	}
	if patch.Date != nil {
		formatted := FormatDay(*patch.Date)
		body.DateAt = &formatted
	}

	path := fmt.Sprintf("/time_entries/%d.json", id)
	return c.doJSON(ctx, http.MethodPatch, path, struct {
		TimeEntry patchPayload `json:"time_entry"`
	}{TimeEntry: body}, nil)
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/time_entries/%d.json", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Tracker returns the currently tracked entry, or nil when idle.
func (c *HTTPClient) Tracker(ctx context.Context) (*Tracking, error) {
	var out trackerEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/tracker.json", nil, &out); err != nil {
		return nil, err
	}
	return out.Tracker.TrackingTimeEntry, nil
}

func (c *HTTPClient) StartTracker(ctx context.Context, id int64) (*Tracking, error) {
	var out trackerEnvelope
	path := fmt.Sprintf("/tracker/%d.json", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Tracker.TrackingTimeEntry, nil
}

func (c *HTTPClient) StopTracker(ctx context.Context, id int64) (*Tracking, error) {
	var out trackerEnvelope
	path := fmt.Sprintf("/tracker/%d.json", id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Tracker.TrackingTimeEntry, nil
}

func toEntry(payload timeEntryPayload) (worklog.Entry, error) {
	date, err := ParseDay(payload.DateAt)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("entry %d: %w", payload.ID, err)
	}
	return worklog.Entry{
		ID:       payload.ID,
		Date:     date,
		Minutes:  payload.Minutes,
		Note:     payload.Note,
		Customer: payload.CustomerName,
		Project:  payload.ProjectName,
		Service:  payload.ServiceName,
		Locked:   payload.Locked,
	}, nil
}

func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

func ParseDay(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return parsed, nil
}

func validAtOption(at string) bool {
	for _, option := range AtOptions {
		if at == option {
			return true
		}
	}
	return false
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	url := c.baseURL + endpointPath
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpointPath, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-MiteAccount", c.account)
	req.Header.Set("X-MiteApiKey", c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"request %s %s failed with status %d: %s",
			method,
			endpointPath,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response %s %s: %w", method, endpointPath, err)
	}
	return nil
}
