// Package feeds reads RSS and Atom feeds into raw items.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/signalworks/sigscan/internal/fetch"
	"github.com/signalworks/sigscan/internal/htmltext"
	"github.com/signalworks/sigscan/pkg/sigscan"
	"github.com/signalworks/sigscan/pkg/sigscan/config"
)

// maxEntries caps how many of a feed's newest entries are considered per
// run.
const maxEntries = 20

// Source reads one configured feed.
type Source struct {
	name   string
	url    string
	client *http.Client
	parser *gofeed.Parser
	retry  fetch.RetryConfig
}

// New creates a feed source. A nil client falls back to the shared fetch
// client.
func New(desc config.Feed, client *http.Client, retry fetch.RetryConfig) *Source {
	if client == nil {
		client = fetch.NewClient()
	}
	return &Source{
		name:   desc.Name,
		url:    desc.URL,
		client: client,
		parser: gofeed.NewParser(),
		retry:  retry,
	}
}

// Name implements sigscan.Source.
func (s *Source) Name() string { return s.name }

// Fetch downloads and parses the feed with retries, returning up to
// maxEntries normalized items.
func (s *Source) Fetch(ctx context.Context) ([]sigscan.RawItem, error) {
	var feed *gofeed.Feed
	err := fetch.Do(s.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		feed, err = s.parser.Parse(resp.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", s.name, err)
	}

	entries := feed.Items
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	items := make([]sigscan.RawItem, 0, len(entries))
	for _, entry := range entries {
		body := entry.Description
		if body == "" {
			body = entry.Content
		}

		var published time.Time
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		items = append(items, sigscan.RawItem{
			Title:     entry.Title,
			Body:      htmltext.Strip(body),
			Link:      entry.Link,
			Source:    s.name,
			Published: published,
		})
	}
	return items, nil
}

var _ sigscan.Source = (*Source)(nil)
