package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/signalworks/sigscan/internal/reddit"
	"github.com/signalworks/sigscan/pkg/sigscan"
	"github.com/signalworks/sigscan/pkg/sigscan/config"
	"github.com/signalworks/sigscan/pkg/sigscan/sink"
	"github.com/signalworks/sigscan/pkg/sigscan/store"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sheets"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sqlite"
)

func main() {
	var (
		sourcesPath  = flag.String("sources", "config/regional_sources.json", "Subreddit sources document")
		keywordsPath = flag.String("keywords", "config/regional_keywords.json", "Keyword taxonomy document")
	)
	flag.Parse()

	opts := config.OptionsFromEnv()
	if !opts.RegionalMonitorEnabled {
		log.Println("regional monitor disabled, nothing to do")
		return
	}

	logger := log.New(os.Stderr, "regional-monitor: ", log.LstdFlags)
	ctx := context.Background()

	srcDoc, err := config.LoadRegionalSources(*sourcesPath)
	if err != nil {
		log.Fatal("Failed to load sources:", err)
	}
	taxonomy, err := config.LoadKeywords(*keywordsPath)
	if err != nil {
		log.Fatal("Failed to load keywords:", err)
	}

	st, err := openStore(ctx, opts)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	defer st.Close()

	snk, err := sink.New(st, opts.SheetName, sigscan.RegionalKeyColumn, logger)
	if err != nil {
		log.Fatal("Failed to build sink:", err)
	}

	sources := make([]sigscan.Source, 0, len(srcDoc.Subreddits))
	for _, sub := range srcDoc.Subreddits {
		sources = append(sources, reddit.New(sub, opts.RedditUserAgent))
	}

	agent := sigscan.NewRegionalMonitor(sources, taxonomy.Flatten(), srcDoc.RegionalFocus, snk, logger)
	report, err := agent.Run(ctx)
	if err != nil {
		log.Fatal("Run failed:", err)
	}
	logger.Printf("done: %s", report)
}

func openStore(ctx context.Context, opts config.Options) (store.Store, error) {
	if opts.SpreadsheetID != "" {
		return sheets.Open(ctx, opts.CredentialsFile, opts.SpreadsheetID)
	}
	return sqlite.Open(ctx, opts.StorePath)
}
