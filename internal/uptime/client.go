// Package uptime talks to the UptimeRobot v2 API. An empty API key disables
// the client; every method then returns ErrDisabled without network access.
package uptime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noble-it/hub/internal/metrics"
)

const (
	opRegister = "register"
	opList     = "list"

	// Monitor type 1 is a plain HTTP(s) check.
	monitorTypeHTTP = "1"

	maxResponseBytes = 1 << 20
)

var ErrDisabled = errors.New("uptime monitoring is not configured")

type Monitor struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Status        int      `json:"status"`
	UptimeRatio   *float64 `json:"uptime30"` // nil when the vendor reported no ratio
	ResponseTimes []int    `json:"responseTimes"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func NewClient(apiKey, baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type newMonitorResponse struct {
	Stat    string    `json:"stat"`
	Error   *apiError `json:"error"`
	Monitor struct {
		ID int64 `json:"id"`
	} `json:"monitor"`
}

type getMonitorsResponse struct {
	Stat     string    `json:"stat"`
	Error    *apiError `json:"error"`
	Monitors []struct {
		ID                int64  `json:"id"`
		FriendlyName      string `json:"friendly_name"`
		URL               string `json:"url"`
		Status            int    `json:"status"`
		CustomUptimeRatio string `json:"custom_uptime_ratio"`
		ResponseTimes     []struct {
			Value int `json:"value"`
		} `json:"response_times"`
	} `json:"monitors"`
}

// RegisterMonitor creates an HTTP monitor for targetURL and returns the
// vendor's monitor id. Only a response with stat "ok" and a non-zero id
// counts as success.
func (c *Client) RegisterMonitor(ctx context.Context, targetURL, friendlyName string) (string, error) {
	if !c.Enabled() {
		c.record(opRegister, ErrDisabled)
		return "", ErrDisabled
	}

	form := url.Values{
		"type":          {monitorTypeHTTP},
		"url":           {targetURL},
		"friendly_name": {friendlyName},
	}

	var body newMonitorResponse
	err := c.post(ctx, "newMonitor", form, &body)
	if err == nil {
		err = checkStat(body.Stat, body.Error)
	}
	if err == nil && body.Monitor.ID == 0 {
		err = errors.New("uptime: response carried no monitor id")
	}

	c.record(opRegister, err)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(body.Monitor.ID, 10), nil
}

// ListMonitors returns every monitor on the account with its 30-day uptime
// ratio and up to 20 recent response times.
func (c *Client) ListMonitors(ctx context.Context) ([]Monitor, error) {
	if !c.Enabled() {
		c.record(opList, ErrDisabled)
		return nil, ErrDisabled
	}

	form := url.Values{
		"format":               {"json"},
		"logs":                 {"1"},
		"response_times":       {"1"},
		"response_times_limit": {"20"},
		"custom_uptime_ratios": {"30"},
	}

	var body getMonitorsResponse
	err := c.post(ctx, "getMonitors", form, &body)
	if err == nil {
		err = checkStat(body.Stat, body.Error)
	}

	c.record(opList, err)
	if err != nil {
		return nil, err
	}

	monitors := make([]Monitor, 0, len(body.Monitors))
	for _, m := range body.Monitors {
		var ratio *float64
		if parsed, parseErr := strconv.ParseFloat(m.CustomUptimeRatio, 64); parseErr == nil {
			ratio = &parsed
		}

		times := make([]int, 0, len(m.ResponseTimes))
		for _, rt := range m.ResponseTimes {
			times = append(times, rt.Value)
		}

		monitors = append(monitors, Monitor{
			ID:            m.ID,
			Name:          m.FriendlyName,
			URL:           m.URL,
			Status:        m.Status,
			UptimeRatio:   ratio,
			ResponseTimes: times,
		})
	}

	return monitors, nil
}

func (c *Client) post(ctx context.Context, method string, form url.Values, out interface{}) error {
	form.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("uptime: building %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("uptime: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("uptime: %s returned status %d", method, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("uptime: decoding %s response: %w", method, err)
	}

	return nil
}

func checkStat(stat string, apiErr *apiError) error {
	if stat == "ok" {
		return nil
	}

	if apiErr != nil && apiErr.Message != "" {
		return fmt.Errorf("uptime: api error %s: %s", apiErr.Type, apiErr.Message)
	}

	return fmt.Errorf("uptime: unexpected stat %q", stat)
}

func (c *Client) record(op string, err error) {
	if c == nil {
		return
	}

	switch {
	case err == nil:
		c.metrics.UptimeRequest(op, metrics.ResultOK)
	case errors.Is(err, ErrDisabled):
		c.metrics.UptimeRequest(op, metrics.ResultDisabled)
	default:
		c.metrics.UptimeRequest(op, metrics.ResultError)
	}
}
