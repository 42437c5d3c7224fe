package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/store"
	"github.com/noble-it/hub/internal/uptime"
)

const (
	UptimeWindowDays  = 30
	TrafficWindowDays = 15

	uptimeDown = 0.99
	uptimeUp   = 1.0

	dateLayout = "2006-01-02"
)

type DashboardStats struct {
	Clients     int64 `json:"clients"`
	Projects    int64 `json:"projects"`
	TicketsOpen int64 `json:"ticketsOpen"`
	Uptime30    int   `json:"uptime30"`
}

type UptimePoint struct {
	Date   string  `json:"date"`
	Uptime float64 `json:"uptime"`
}

type FrequencyPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TrafficPoint struct {
	Date   string `json:"date"`
	Visits int64  `json:"visits"`
}

// DashboardService computes the admin dashboard read models. Nothing here
// fails a request: store and vendor errors degrade to zeros, empty series
// or a 100% uptime figure.
type DashboardService struct {
	store   *store.Store
	monitor MonitorClient
	logger  *slog.Logger
	now     func() time.Time
}

func NewDashboardService(s *store.Store, monitor MonitorClient, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:   s,
		monitor: monitor,
		logger:  loggerOrDefault(logger),
		now:     time.Now,
	}
}

func (d *DashboardService) Stats(ctx context.Context) DashboardStats {
	stats := DashboardStats{Uptime30: 100}

	counts, err := d.store.Counts(ctx)
	if err != nil {
		d.logger.Error("failed to count dashboard totals", "error", err)
	} else {
		stats.Clients = counts.Clients
		stats.Projects = counts.Projects
		stats.TicketsOpen = counts.Tickets
	}

	monitors := d.monitors(ctx)
	if len(monitors) > 0 {
		stats.Uptime30 = AverageUptime(monitors)
	}

	return stats
}

// AverageUptime rounds the mean 30-day ratio across monitors. A monitor
// without a reported ratio counts as fully up.
func AverageUptime(monitors []uptime.Monitor) int {
	if len(monitors) == 0 {
		return 100
	}

	var sum float64
	for _, m := range monitors {
		if m.UptimeRatio == nil {
			sum += 100
			continue
		}
		sum += *m.UptimeRatio
	}

	return int(math.Round(sum / float64(len(monitors))))
}

func (d *DashboardService) UptimeSeries(ctx context.Context) []UptimePoint {
	now := d.now().UTC()
	from := startOfDay(now).AddDate(0, 0, -(UptimeWindowDays - 1))

	incidents, err := d.store.IncidentsOverlapping(ctx, from, now)
	if err != nil {
		d.logger.Error("failed to load incidents for uptime series", "error", err)
		incidents = nil
	}

	return BuildUptimeSeries(incidents, now, UptimeWindowDays)
}

// BuildUptimeSeries returns one point per UTC day for the days ending with
// now's day, oldest first. A day is down when any incident interval
// [startedAt, resolvedAt or now] touches it.
func BuildUptimeSeries(incidents []models.Incident, now time.Time, days int) []UptimePoint {
	now = now.UTC()
	first := startOfDay(now).AddDate(0, 0, -(days - 1))

	points := make([]UptimePoint, 0, days)
	for i := 0; i < days; i++ {
		dayStart := first.AddDate(0, 0, i)
		dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

		value := uptimeUp
		for _, incident := range incidents {
			start := incident.StartedAt.UTC()
			end := now
			if incident.ResolvedAt != nil {
				end = incident.ResolvedAt.UTC()
			}
			if !start.After(dayEnd) && !end.Before(dayStart) {
				value = uptimeDown
				break
			}
		}

		points = append(points, UptimePoint{Date: dayStart.Format(dateLayout), Uptime: value})
	}

	return points
}

func (d *DashboardService) IncidentFrequency(ctx context.Context) []FrequencyPoint {
	starts, err := d.store.IncidentStartTimes(ctx)
	if err != nil {
		d.logger.Error("failed to load incident start times", "error", err)
		return []FrequencyPoint{}
	}

	return BuildIncidentFrequency(starts)
}

// BuildIncidentFrequency groups start times by UTC date, oldest first.
func BuildIncidentFrequency(starts []time.Time) []FrequencyPoint {
	points := []FrequencyPoint{}
	index := map[string]int{}

	for _, start := range starts {
		day := start.UTC().Format(dateLayout)
		if i, ok := index[day]; ok {
			points[i].Count++
			continue
		}
		index[day] = len(points)
		points = append(points, FrequencyPoint{Date: day, Count: 1})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

func (d *DashboardService) ClientTraffic(ctx context.Context) []TrafficPoint {
	now := d.now().UTC()
	from := startOfDay(now).AddDate(0, 0, -(TrafficWindowDays - 1))

	logs, err := d.store.TrafficSince(ctx, from)
	if err != nil {
		d.logger.Error("failed to load traffic", "error", err)
		logs = nil
	}

	return BuildTrafficSeries(logs, now, TrafficWindowDays)
}

// BuildTrafficSeries sums hits per UTC day for the days ending with now's
// day. Days with no traffic are reported as zero.
func BuildTrafficSeries(logs []models.TrafficLog, now time.Time, days int) []TrafficPoint {
	first := startOfDay(now.UTC()).AddDate(0, 0, -(days - 1))

	points := make([]TrafficPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		day := first.AddDate(0, 0, i).Format(dateLayout)
		points[i] = TrafficPoint{Date: day}
		index[day] = i
	}

	for _, entry := range logs {
		if i, ok := index[entry.CreatedAt.UTC().Format(dateLayout)]; ok {
			points[i].Visits += int64(entry.Hits)
		}
	}

	return points
}

func (d *DashboardService) MonitorStatuses(ctx context.Context) []uptime.Monitor {
	return d.monitors(ctx)
}

// monitors never returns nil so handlers always encode a JSON array.
func (d *DashboardService) monitors(ctx context.Context) []uptime.Monitor {
	if d.monitor == nil || !d.monitor.Enabled() {
		return []uptime.Monitor{}
	}

	monitors, err := d.monitor.ListMonitors(ctx)
	if err != nil {
		if !errors.Is(err, uptime.ErrDisabled) {
			d.logger.Warn("failed to list uptime monitors", "error", err)
		}
		return []uptime.Monitor{}
	}
	if monitors == nil {
		return []uptime.Monitor{}
	}

	return monitors
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
