package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/VOST-dev/committee-scheduler/internal/config"
	"github.com/VOST-dev/committee-scheduler/internal/fetch"
	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// feedItem is one entry of the city's open-data event feed. Fields are
// optional in the feed; a missing or malformed field disqualifies the
// item, it never fails the whole feed parse.
type feedItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	EventDate string `json:"event_date"` // YYYY-MM-DD
}

type feedDocument struct {
	Items []feedItem `json:"items"`
}

// CityFeed scrapes the city's JSON event feed, keeping committee
// entries dated inside the rolling three-month window and enriching
// each surviving entry from its detail page.
type CityFeed struct {
	cfg    config.Source
	client *fetch.Client
	base   *url.URL
	now    func() time.Time
}

// NewCityFeed creates the JSON-feed adapter for cfg.
func NewCityFeed(cfg config.Source, client *fetch.Client) (*CityFeed, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL for source %s: %w", cfg.ID, err)
	}
	return &CityFeed{cfg: cfg, client: client, base: base, now: time.Now}, nil
}

// Name implements Adapter.
func (c *CityFeed) Name() string { return c.cfg.ID }

// Scrape implements Adapter.
func (c *CityFeed) Scrape(ctx context.Context) ([]meeting.Record, error) {
	feedURL, err := resolveURL(c.base, c.cfg.FeedPath)
	if err != nil {
		return nil, fmt.Errorf("resolving feed path: %w", err)
	}

	body, err := c.client.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	var doc feedDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	window := NewWindow(c.now())
	candidates := c.filterItems(doc.Items, window)
	logger.Info("feed filtered", logger.Fields{
		"source":     c.Name(),
		"items":      len(doc.Items),
		"candidates": len(candidates),
	})

	records := make([]meeting.Record, 0, len(candidates))
	for _, cand := range candidates {
		rec, ok := fetchDetail(ctx, c.client, c.Name(), cand.name, cand.detailURL)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// filterItems applies the category filter and the month window, in feed
// order. Items without a usable URL or date are logged and skipped.
func (c *CityFeed) filterItems(items []feedItem, window Window) []candidate {
	var candidates []candidate
	seen := make(map[string]bool)

	for _, item := range items {
		if c.cfg.Category != "" && item.Category != c.cfg.Category {
			continue
		}
		if item.URL == "" {
			logger.Warn("skipping feed item without URL", logger.Fields{
				"source": c.Name(),
				"title":  item.Title,
			})
			continue
		}

		eventDate, err := time.Parse("2006-01-02", item.EventDate)
		if err != nil {
			logger.Warn("skipping feed item with unparsable date", logger.Fields{
				"source": c.Name(),
				"title":  item.Title,
				"date":   item.EventDate,
			})
			continue
		}
		if !window.Contains(eventDate) {
			continue
		}

		abs, err := resolveURL(c.base, item.URL)
		if err != nil {
			logger.Warn("skipping unresolvable feed URL", logger.Fields{
				"source": c.Name(),
				"url":    item.URL,
				"error":  err.Error(),
			})
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		candidates = append(candidates, candidate{name: item.Title, detailURL: abs})
	}

	return candidates
}
