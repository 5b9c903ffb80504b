// Package holidays fetches public holiday lists from a feiertage-API
// compatible endpoint, keyed by calendar year and region code.
package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gomite/worktime"
)

const defaultBaseURL = "https://get.api-feiertage.de"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	Region     string
	UserAgent  string
	HTTPClient httpDoer
}

// Client implements worktime.HolidaySource for one configured region.
type Client struct {
	baseURL    string
	region     string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*Client, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		return nil, errors.New("holiday region is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid holiday API URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		region:     region,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

type holidayItem struct {
	Date      string `json:"date"`
	Name      string `json:"fname"`
	AllStates string `json:"all_states"`
	Comment   string `json:"comment"`
}

type holidaysResponse struct {
	Status   string        `json:"status"`
	Holidays []holidayItem `json:"feiertage"`
}

// HolidaysForYear returns the holidays of one year for the configured
// region, in the order the API delivered them.
func (c *Client) HolidaysForYear(ctx context.Context, year int) ([]worktime.Holiday, error) {
	endpoint := fmt.Sprintf("%s/?years=%d&states=%s", c.baseURL, year, url.QueryEscape(c.region))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create holiday request for %d: %w", year, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"fetch holidays for %d failed with status %d: %s",
			year,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	var payload holidaysResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode holiday response for %d: %w", year, err)
	}
	if payload.Status != "" && payload.Status != "success" {
		return nil, fmt.Errorf("holiday API returned status %q for year %d", payload.Status, year)
	}

	out := make([]worktime.Holiday, 0, len(payload.Holidays))
	for _, item := range payload.Holidays {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(item.Date), time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse holiday date %q: %w", item.Date, err)
		}
		out = append(out, worktime.Holiday{
			Date:      date,
			Name:      item.Name,
			Statewide: item.AllStates == "1",
		})
	}
	return out, nil
}
