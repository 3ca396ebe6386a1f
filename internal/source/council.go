package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/VOST-dev/committee-scheduler/internal/config"
	"github.com/VOST-dev/committee-scheduler/internal/fetch"
	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// Council scrapes a prefectural-assembly committee listing: an HTML
// table of announced committee meetings whose rows link to detail
// pages carrying the authoritative date, time and agenda.
type Council struct {
	cfg    config.Source
	client *fetch.Client
	base   *url.URL
}

// NewCouncil creates the HTML-table adapter for cfg.
func NewCouncil(cfg config.Source, client *fetch.Client) (*Council, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL for source %s: %w", cfg.ID, err)
	}
	return &Council{cfg: cfg, client: client, base: base}, nil
}

// Name implements Adapter.
func (c *Council) Name() string { return c.cfg.ID }

// Scrape implements Adapter.
func (c *Council) Scrape(ctx context.Context) ([]meeting.Record, error) {
	listingURL, err := resolveURL(c.base, c.cfg.ListingPath)
	if err != nil {
		return nil, fmt.Errorf("resolving listing path: %w", err)
	}

	body, err := c.client.Get(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}

	candidates, err := c.parseListing(body)
	if err != nil {
		return nil, err
	}
	logger.Info("listing parsed", logger.Fields{
		"source":     c.Name(),
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

type candidate struct {
	name      string
	detailURL string
}

// parseListing extracts candidate meetings from the listing table. Each
// usable row carries a named link to the detail page; rows without one
// (header rows, decoration) are skipped.
func (c *Council) parseListing(body string) ([]candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var candidates []candidate
	seen := make(map[string]bool)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		abs, err := resolveURL(c.base, href)
		if err != nil {
			logger.Warn("skipping unresolvable link", logger.Fields{
				"source": c.Name(),
				"href":   href,
				"error":  err.Error(),
			})
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		candidates = append(candidates, candidate{name: name, detailURL: abs})
	})

	return candidates, nil
}
