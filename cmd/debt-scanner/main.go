package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/signalworks/sigscan/internal/feeds"
	"github.com/signalworks/sigscan/internal/fetch"
	"github.com/signalworks/sigscan/pkg/sigscan"
	"github.com/signalworks/sigscan/pkg/sigscan/config"
	"github.com/signalworks/sigscan/pkg/sigscan/sink"
	"github.com/signalworks/sigscan/pkg/sigscan/store"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sheets"
	"github.com/signalworks/sigscan/pkg/sigscan/store/sqlite"
)

func main() {
	var (
		sourcesPath  = flag.String("sources", "config/debt_sources.json", "Feed sources document")
		keywordsPath = flag.String("keywords", "config/debt_keywords.json", "Keyword taxonomy document")
	)
	flag.Parse()

	opts := config.OptionsFromEnv()
	if !opts.DebtScannerEnabled {
		log.Println("debt scanner disabled, nothing to do")
		return
	}

	logger := log.New(os.Stderr, "debt-scanner: ", log.LstdFlags)
	ctx := context.Background()

	srcDoc, err := config.LoadDebtSources(*sourcesPath)
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

	snk, err := sink.New(st, opts.SheetName, sigscan.DebtKeyColumn, logger)
	if err != nil {
		log.Fatal("Failed to build sink:", err)
	}

	retry := fetch.DefaultRetryConfig()
	client := fetch.NewClient()
	sources := make([]sigscan.Source, 0, len(srcDoc.RSSFeeds))
	for _, feed := range srcDoc.RSSFeeds {
		sources = append(sources, feeds.New(feed, client, retry))
	}

	agent := sigscan.NewDebtScanner(sources, taxonomy.Flatten(), snk, logger)
	report, err := agent.Run(ctx)
	if err != nil {
		log.Fatal("Run failed:", err)
	}
	logger.Printf("done: %s", report)
}

// openStore selects the tabular backend: the remote spreadsheet when one
// is configured, the local database otherwise.
func openStore(ctx context.Context, opts config.Options) (store.Store, error) {
	if opts.SpreadsheetID != "" {
		return sheets.Open(ctx, opts.CredentialsFile, opts.SpreadsheetID)
	}
	return sqlite.Open(ctx, opts.StorePath)
}
