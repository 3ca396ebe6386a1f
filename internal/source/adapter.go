// Package source contains the per-source scraping adapters. Each
// adapter turns one external listing (an HTML page or a JSON feed) into
// a sequence of normalized meeting records.
package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/VOST-dev/committee-scheduler/internal/config"
	"github.com/VOST-dev/committee-scheduler/internal/fetch"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// Adapter fetches and parses one external source.
type Adapter interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Scrape returns records in the order the source lists them. A
	// record whose date could not be resolved is dropped before being
	// returned, so the output never contains an empty date. A listing
	// fetch failure is fatal to the run and returned as an error;
	// detail-page failures are absorbed per record.
	Scrape(ctx context.Context) ([]meeting.Record, error)
}

// New builds the adapter for one configured source. All adapters share
// the same rate-limited fetch client, so requests stay sequential
// across the whole process.
func New(cfg config.Source, client *fetch.Client) (Adapter, error) {
	switch cfg.Type {
	case config.SourceHTML:
		adapter, err := NewCouncil(cfg, client)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case config.SourceJSON:
		adapter, err := NewCityFeed(cfg, client)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}

// resolveURL turns relative or root-relative hrefs into absolute URLs
// against the source origin.
func resolveURL(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parsing href %q: %w", href, err)
	}
	abs := base.ResolveReference(ref)
	if !abs.IsAbs() {
		return "", fmt.Errorf("cannot resolve %q against %s", href, base)
	}
	return abs.String(), nil
}
