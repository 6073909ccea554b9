package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/signalworks/sigscan/internal/fetch"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func listingJSON(now time.Time) string {
	recent := now.Add(-2 * time.Hour).Unix()
	stale := now.Add(-30 * time.Hour).Unix()
	return fmt.Sprintf(`{
		"data": {
			"children": [
				{"data": {
					"title": "Hiring engineers in Austin",
					"selftext": "We are growing fast",
					"permalink": "/r/austin/comments/abc/hiring/",
					"subreddit": "austin",
					"score": 42,
					"created_utc": %d
				}},
				{"data": {
					"title": "Old post from last week",
					"selftext": "",
					"permalink": "/r/austin/comments/old/post/",
					"subreddit": "austin",
					"score": 5,
					"created_utc": %d
				}}
			]
		}
	}`, recent, stale)
}

func testSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	src := New("austin", "sigscan-test/1.0")
	src.Client = srv.Client()
	src.BaseURL = srv.URL
	src.Retry = fetch.RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffMultiplier: 1.0}
	src.Now = fixedNow
	return src
}

func TestFetchNormalizesPosts(t *testing.T) {
	var gotUA, gotPath string
	src := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		fmt.Fprint(w, listingJSON(fixedNow()))
	})

	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotUA != "sigscan-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotPath != "/r/austin/new.json" {
		t.Errorf("path = %q", gotPath)
	}

	// The stale post falls outside the 24-hour window.
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.Title != "Hiring engineers in Austin" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Link != "https://reddit.com/r/austin/comments/abc/hiring/" {
		t.Errorf("link = %q", item.Link)
	}
	if item.Source != "Reddit r/austin" {
		t.Errorf("source = %q", item.Source)
	}
	if item.Score != 42 {
		t.Errorf("score = %d", item.Score)
	}
	if item.Body != "We are growing fast" {
		t.Errorf("body = %q", item.Body)
	}
}

func TestFetchStripsEscapedHTMLBody(t *testing.T) {
	src := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"children":[{"data":{
			"title": "Post",
			"selftext": "",
			"selftext_html": "&lt;p&gt;hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;",
			"permalink": "/r/austin/comments/x/",
			"subreddit": "austin",
			"score": 1,
			"created_utc": %d
		}}]}}`, fixedNow().Add(-time.Hour).Unix())
	})

	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Body != "hello world" {
		t.Errorf("body = %q, want stripped text", items[0].Body)
	}
}

func TestFetchRetriesOnServerError(t *testing.T) {
	attempts := 0
	src := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, listingJSON(fixedNow()))
	})

	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestFetchFailsAfterRetries(t *testing.T) {
	src := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("expected error after retries exhausted")
	}
}

func TestName(t *testing.T) {
	if got := New("austin", "ua").Name(); got != "r/austin" {
		t.Errorf("Name() = %q", got)
	}
}
