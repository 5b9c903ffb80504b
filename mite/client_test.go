package mite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type fakeDoer struct {
	fn func(req *http.Request) (*http.Response, error)
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func jsonResponse(body any) *http.Response {
	payload, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(payload)),
	}
}

func newTestClient(t *testing.T, doer httpDoer) *HTTPClient {
	t.Helper()
	client, err := NewClient(ClientConfig{
		Account:    "demo",
		APIKey:     "secret",
		UserAgent:  "gomite-test/1.0",
		HTTPClient: doer,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestHTTPClient_ListEntries(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Host != "demo.mite.yo.lk" {
			t.Fatalf("unexpected host: %s", r.URL.Host)
		}
		if r.URL.Path != "/time_entries.json" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-MiteAccount"); got != "demo" {
			t.Fatalf("unexpected account header: %q", got)
		}
		if got := r.Header.Get("X-MiteApiKey"); got != "secret" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		query := r.URL.Query()
		if query.Get("user_id") != "current" || query.Get("from") != "2024-01-01" || query.Get("to") != "2024-01-31" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		return jsonResponse([]timeEntryEnvelope{
			{TimeEntry: timeEntryPayload{
				ID:           101,
				Minutes:      90,
				DateAt:       "2024-01-15",
				Note:         "API review",
				CustomerName: "ACME",
				ProjectName:  "Website",
				ServiceName:  "Development",
			}},
		}), nil
	}}

	client := newTestClient(t, doer)
	entries, err := client.ListEntries(context.Background(), day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.ID != 101 || entry.Minutes != 90 || entry.Note != "API review" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !entry.Date.Equal(day(2024, 1, 15)) {
		t.Fatalf("unexpected entry date: %v", entry.Date)
	}
	if entry.Customer != "ACME" || entry.Project != "Website" || entry.Service != "Development" {
		t.Fatalf("unexpected entry names: %+v", entry)
	}
}

func TestHTTPClient_ListEntries_RejectsReversedRange(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request: %s", r.URL)
		return nil, nil
	}})

	if _, err := client.ListEntries(context.Background(), day(2024, 2, 1), day(2024, 1, 1)); err == nil {
		t.Fatalf("expected error for reversed range")
	}
}

func TestHTTPClient_ListEntriesAt(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("at"); got != "this_month" {
			t.Fatalf("unexpected at query: %q", got)
		}
		return jsonResponse([]timeEntryEnvelope{}), nil
	}}

	client := newTestClient(t, doer)
	if _, err := client.ListEntriesAt(context.Background(), "this_month"); err != nil {
		t.Fatalf("list entries at: %v", err)
	}

	if _, err := client.ListEntriesAt(context.Background(), "next_decade"); err == nil {
		t.Fatalf("expected error for unsupported at option")
	}
}

func TestHTTPClient_CreateEntry(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || r.URL.Path != "/time_entries.json" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %q", got)
		}

		var payload timeEntryEnvelope
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode create payload: %v", err)
		}
		if payload.TimeEntry.Minutes != 90 || payload.TimeEntry.DateAt != "2024-01-15" {
			t.Fatalf("unexpected create payload: %+v", payload.TimeEntry)
		}
		if payload.TimeEntry.ProjectID != 11 || payload.TimeEntry.ServiceID != 22 {
			t.Fatalf("unexpected ids in payload: %+v", payload.TimeEntry)
		}

		created := payload
		created.TimeEntry.ID = 555
		return jsonResponse(created), nil
	}}

	client := newTestClient(t, doer)
	entry, err := client.CreateEntry(context.Background(), NewEntry{
		Date:      day(2024, 1, 15),
		Minutes:   90,
		Note:      "pairing",
		ProjectID: 11,
		ServiceID: 22,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if entry.ID != 555 || entry.Minutes != 90 {
		t.Fatalf("unexpected created entry: %+v", entry)
	}
}

func TestHTTPClient_CreateEntry_RejectsNonPositiveMinutes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request")
		return nil, nil
	}})

	if _, err := client.CreateEntry(context.Background(), NewEntry{Date: day(2024, 1, 15)}); err == nil {
		t.Fatalf("expected error for zero minutes")
	}
}

func TestHTTPClient_UpdateEntry(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPatch || r.URL.Path != "/time_entries/101.json" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		text := string(body)
		if !strings.Contains(text, `"minutes":120`) || !strings.Contains(text, `"note":"longer"`) {
			t.Fatalf("unexpected patch body: %s", text)
		}
		if strings.Contains(text, "date_at") {
			t.Fatalf("unset fields must be omitted: %s", text)
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	}}

	client := newTestClient(t, doer)
	minutes := 120
	note := "longer"
	if err := client.UpdateEntry(context.Background(), 101, EntryPatch{Minutes: &minutes, Note: &note}); err != nil {
		t.Fatalf("update entry: %v", err)
	}

	if err := client.UpdateEntry(context.Background(), 101, EntryPatch{}); err == nil {
		t.Fatalf("expected error for empty patch")
	}
}

func TestHTTPClient_DeleteEntry(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodDelete || r.URL.Path != "/time_entries/101.json" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	}}

	client := newTestClient(t, doer)
	if err := client.DeleteEntry(context.Background(), 101); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
}

func TestHTTPClient_TrackerLifecycle(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		key := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		switch key {
		case "GET /tracker.json":
			return jsonResponse(map[string]any{"tracker": map[string]any{}}), nil
		case "PATCH /tracker/101.json":
			return jsonResponse(map[string]any{"tracker": map[string]any{
				"tracking_time_entry": map[string]any{"id": 101, "minutes": 5, "since": "2024-01-15T09:00:00+01:00"},
			}}), nil
		case "DELETE /tracker/101.json":
			return jsonResponse(map[string]any{"tracker": map[string]any{}}), nil
		default:
			t.Fatalf("unexpected request: %s", key)
			return nil, nil
		}
	}}

	client := newTestClient(t, doer)

	idle, err := client.Tracker(context.Background())
	if err != nil {
		t.Fatalf("tracker: %v", err)
	}
	if idle != nil {
		t.Fatalf("expected idle tracker, got %+v", idle)
	}

	started, err := client.StartTracker(context.Background(), 101)
	if err != nil {
		t.Fatalf("start tracker: %v", err)
	}
	if started == nil || started.ID != 101 {
		t.Fatalf("unexpected started tracker: %+v", started)
	}

	stopped, err := client.StopTracker(context.Background(), 101)
	if err != nil {
		t.Fatalf("stop tracker: %v", err)
	}
	if stopped != nil {
		t.Fatalf("expected nil tracker after stop, got %+v", stopped)
	}
}

func TestHTTPClient_ErrorIncludesStatusAndBody(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader("invalid api key")),
		}, nil
	}}

	client := newTestClient(t, doer)
	_, err := client.ListEntriesAt(context.Background(), "today")
	if err == nil || !strings.Contains(err.Error(), "status 401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.Local)
}
