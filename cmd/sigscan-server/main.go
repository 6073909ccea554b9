// Command sigscan-server exposes both pipelines behind HTTP trigger
// endpoints so a scheduler can invoke them on demand.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/signalworks/sigscan/internal/feeds"
	"github.com/signalworks/sigscan/internal/fetch"
	"github.com/signalworks/sigscan/internal/reddit"
	"github.com/signalworks/sigscan/internal/server"
	"github.com/signalworks/sigscan/pkg/sigscan"
	"github.com/signalworks/sigscan/pkg/sigscan/config"
	"github.com/signalworks/sigscan/pkg/sigscan/sink"
	"github.com/signalworks/sigscan/pkg/sigscan/store"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sheets"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sqlite"
)

func main() {
	var (
		addr                 = flag.String("addr", ":8080", "Listen address")
		debtSourcesPath      = flag.String("debt-sources", "config/debt_sources.json", "Feed sources document")
		debtKeywordsPath     = flag.String("debt-keywords", "config/debt_keywords.json", "Debt keyword taxonomy")
		regionalSourcesPath  = flag.String("regional-sources", "config/regional_sources.json", "Subreddit sources document")
		regionalKeywordsPath = flag.String("regional-keywords", "config/regional_keywords.json", "Regional keyword taxonomy")
	)
	flag.Parse()

	opts := config.OptionsFromEnv()
	logger := log.New(os.Stderr, "sigscan: ", log.LstdFlags)
	ctx := context.Background()

	if !strings.EqualFold(opts.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStore(ctx, opts)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	defer st.Close()

	var runners []server.Runner

	if opts.DebtScannerEnabled {
		agent, err := buildDebtScanner(st, opts, *debtSourcesPath, *debtKeywordsPath, logger)
		if err != nil {
			log.Fatal("Failed to build debt scanner:", err)
		}
		runners = append(runners, agent)
	}
	if opts.RegionalMonitorEnabled {
		agent, err := buildRegionalMonitor(st, opts, *regionalSourcesPath, *regionalKeywordsPath, logger)
		if err != nil {
			log.Fatal("Failed to build regional monitor:", err)
		}
		runners = append(runners, agent)
	}
	if len(runners) == 0 {
		log.Fatal("all pipelines disabled, nothing to serve")
	}

	srv := server.New(logger, runners...)
	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func buildDebtScanner(st store.Store, opts config.Options, sourcesPath, keywordsPath string, logger *log.Logger) (*sigscan.Agent, error) {
	srcDoc, err := config.LoadDebtSources(sourcesPath)
	if err != nil {
		return nil, err
	}
	taxonomy, err := config.LoadKeywords(keywordsPath)
	if err != nil {
		return nil, err
	}
	snk, err := sink.New(st, opts.SheetName, sigscan.DebtKeyColumn, logger)
	if err != nil {
		return nil, err
	}

	retry := fetch.DefaultRetryConfig()
	client := fetch.NewClient()
	sources := make([]sigscan.Source, 0, len(srcDoc.RSSFeeds))
	for _, feed := range srcDoc.RSSFeeds {
		sources = append(sources, feeds.New(feed, client, retry))
	}
	return sigscan.NewDebtScanner(sources, taxonomy.Flatten(), snk, logger), nil
}

func buildRegionalMonitor(st store.Store, opts config.Options, sourcesPath, keywordsPath string, logger *log.Logger) (*sigscan.Agent, error) {
	srcDoc, err := config.LoadRegionalSources(sourcesPath)
	if err != nil {
		return nil, err
	}
	taxonomy, err := config.LoadKeywords(keywordsPath)
	if err != nil {
		return nil, err
	}
	snk, err := sink.New(st, opts.SheetName, sigscan.RegionalKeyColumn, logger)
	if err != nil {
		return nil, err
	}

	sources := make([]sigscan.Source, 0, len(srcDoc.Subreddits))
	for _, sub := range srcDoc.Subreddits {
		sources = append(sources, reddit.New(sub, opts.RedditUserAgent))
	}
	return sigscan.NewRegionalMonitor(sources, taxonomy.Flatten(), srcDoc.RegionalFocus, snk, logger), nil
}

func openStore(ctx context.Context, opts config.Options) (store.Store, error) {
	if opts.SpreadsheetID != "" {
		return sheets.Open(ctx, opts.CredentialsFile, opts.SpreadsheetID)
	}
	return sqlite.Open(ctx, opts.StorePath)
}
