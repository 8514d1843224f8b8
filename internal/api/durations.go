package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// ScrapingTask is one completed scrape as reported by GET /scraping_durations
type ScrapingTask struct {
	Website         string  `json:"website"`
	DurationSeconds float64 `json:"duration_seconds"`
	CompletedAt     string  `json:"completed_at,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// Duration returns the task duration
func (t ScrapingTask) Duration() time.Duration {
	return time.Duration(t.DurationSeconds * float64(time.Second))
}

// Durations is the informational scrape timing report
type Durations struct {
	Tasks []ScrapingTask `json:"tasks"`
}

// Average returns the mean duration per website, sorted by website
func (d *Durations) Average() []ScrapingTask {
	if d == nil {
		return nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range d.Tasks {
		sums[t.Website] += t.DurationSeconds
		counts[t.Website]++
	}

	averages := make([]ScrapingTask, 0, len(sums))
	for site, sum := range sums {
		averages = append(averages, ScrapingTask{
			Website:         site,
			DurationSeconds: sum / float64(counts[site]),
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Website < averages[j].Website
	})
	return averages
}

// ScrapingDurations fetches GET /scraping_durations. The payload shape is not fixed, so a
// top-level list of tasks, an object with a "durations" or "data" list, and an object
// mapping website to seconds are all accepted.
func (c *Client) ScrapingDurations(ctx context.Context) (*Durations, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/scraping_durations")
	if err != nil {
		return nil, err
	}
	return decodeDurations(body)
}

func decodeDurations(body []byte) (*Durations, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	var tasks []ScrapingTask
	if err := json.Unmarshal(body, &tasks); err == nil {
		return &Durations{Tasks: tasks}, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	for _, key := range []string{"durations", "data"} {
		if raw, ok := wrapped[key]; ok {
			var listed []ScrapingTask
			if err := json.Unmarshal(raw, &listed); err == nil {
				return &Durations{Tasks: listed}, nil
			}
		}
	}

	// {"swingers_nyc": 12.5, ...}
	tasks = nil
	for site, raw := range wrapped {
		var seconds float64
		if err := json.Unmarshal(raw, &seconds); err == nil {
			tasks = append(tasks, ScrapingTask{Website: site, DurationSeconds: seconds})
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Website < tasks[j].Website
	})
	return &Durations{Tasks: tasks}, nil
}
