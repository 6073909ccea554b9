// Package reddit reads new posts from subreddits through the public JSON
// listing endpoint. Read-only listings need no OAuth, but Reddit rejects
// requests without a descriptive User-Agent.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/signalworks/sigscan/internal/fetch"
	"github.com/signalworks/sigscan/internal/htmltext"
	"github.com/signalworks/sigscan/pkg/sigscan"
)

const (
	defaultBaseURL = "https://www.reddit.com"
	listingLimit   = 50
	recentWindow   = 24 * time.Hour
)

// Source reads one subreddit's newest posts.
type Source struct {
	Subreddit string
	UserAgent string
	Client    *http.Client
	Retry     fetch.RetryConfig

	// BaseURL overrides the listing host, for tests.
	BaseURL string
	// Now overrides the clock used for the recency window, for tests.
	Now func() time.Time
}

// New creates a subreddit source with the shared client and default retry
// policy.
func New(subreddit, userAgent string) *Source {
	return &Source{
		Subreddit: subreddit,
		UserAgent: userAgent,
		Client:    fetch.NewClient(),
		Retry:     fetch.DefaultRetryConfig(),
		BaseURL:   defaultBaseURL,
		Now:       time.Now,
	}
}

// Name implements sigscan.Source.
func (s *Source) Name() string { return "r/" + s.Subreddit }

type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Permalink    string  `json:"permalink"`
	Subreddit    string  `json:"subreddit"`
	Score        int     `json:"score"`
	CreatedUTC   float64 `json:"created_utc"`
}

// Fetch downloads the newest listing with retries and returns posts
// created within the last 24 hours, normalized into raw items.
func (s *Source) Fetch(ctx context.Context) ([]sigscan.RawItem, error) {
	url := fmt.Sprintf("%s/r/%s/new.json?limit=%d", s.BaseURL, s.Subreddit, listingLimit)

	var l listing
	err := fetch.Do(s.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", s.UserAgent)

		resp, err := s.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		l = listing{}
		return json.NewDecoder(resp.Body).Decode(&l)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", s.Subreddit, err)
	}

	cutoff := s.Now().Add(-recentWindow)
	var items []sigscan.RawItem
	for _, child := range l.Data.Children {
		p := child.Data
		created := time.Unix(int64(p.CreatedUTC), 0)
		if created.Before(cutoff) {
			continue
		}

		// selftext_html arrives entity-escaped, so unescape before
		// stripping the markup.
		body := p.Selftext
		if body == "" && p.SelftextHTML != "" {
			body = htmltext.Strip(html.UnescapeString(p.SelftextHTML))
		}

		items = append(items, sigscan.RawItem{
			Title:     p.Title,
			Body:      body,
			Link:      "https://reddit.com" + p.Permalink,
			Source:    "Reddit r/" + p.Subreddit,
			Published: created,
			Score:     p.Score,
		})
	}
	return items, nil
}

var _ sigscan.Source = (*Source)(nil)
