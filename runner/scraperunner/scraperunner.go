// Package scraperunner wires the configured pipeline together: Places client,
// contact crawler, optional verification and dedup, and the result writers.
package scraperunner

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"golang.org/x/sync/errgroup"

	"github.com/sadewadee/business-contact-scraper/deduper"
	"github.com/sadewadee/business-contact-scraper/gmaps"
	"github.com/sadewadee/business-contact-scraper/postgres"
	"github.com/sadewadee/business-contact-scraper/runner"
	"github.com/sadewadee/business-contact-scraper/writers"
	"github.com/sadewadee/business-contact-scraper/writers/csvrows"
)

type scrapeRunner struct {
	cfg     *runner.Config
	runID   string
	scraper *gmaps.Scraper
	dedup   deduper.Deduper
	db      *sql.DB
}

func New(cfg *runner.Config) (runner.Runner, error) {
	client := gmaps.NewClient(cfg.APIKey)
	crawler := gmaps.NewContactCrawler(gmaps.WithMaxPages(cfg.MaxPages))

	var opts []gmaps.ScraperOption

	var dedup deduper.Deduper

	if cfg.Dedup || cfg.DedupDB != "" {
		if cfg.DedupDB != "" {
			d, err := deduper.NewPersistentSQLite(cfg.DedupDB)
			if err != nil {
				log.Printf("persistent deduper init failed (%v), falling back to in-memory", err)
				d = deduper.New()
			}
			dedup = d
		} else {
			dedup = deduper.New()
		}

		opts = append(opts, gmaps.WithDeduper(dedup))
	}

	if cfg.VerifyEmails {
		opts = append(opts, gmaps.WithVerifier(gmaps.NewEmailVerifier()))
	}

	ans := scrapeRunner{
		cfg:     cfg,
		runID:   uuid.New().String(),
		scraper: gmaps.NewScraper(client, crawler, cfg.Location, cfg.Radius, opts...),
		dedup:   dedup,
	}

	if cfg.Dsn != "" {
		db, err := sql.Open("pgx", cfg.Dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		ans.db = db
	}

	return &ans, nil
}

func (r *scrapeRunner) Run(ctx context.Context) error {
	log.Printf("run %s: starting business contact scraping...", r.runID)

	entries := r.scraper.Run(ctx, r.cfg.BusinessTypes, r.cfg.MaxResults)

	if err := r.write(ctx, entries); err != nil {
		return err
	}

	log.Printf("Saved %d businesses to %s", len(entries), r.cfg.Output)

	gmaps.Summarize(entries).Log()

	return nil
}

// write streams the accumulated entries, in order, to every configured sink.
func (r *scrapeRunner) write(ctx context.Context, entries []*gmaps.Entry) error {
	outfile, err := os.Create(r.cfg.Output)
	if err != nil {
		return err
	}

	defer func() {
		_ = outfile.Close()
	}()

	ws := []writers.ResultWriter{csvrows.New(csv.NewWriter(outfile))}

	if r.db != nil {
		ws = append(ws, postgres.NewResultWriter(r.db))
	}

	egroup, ctx := errgroup.WithContext(ctx)

	chans := make([]chan *gmaps.Entry, len(ws))

	for i, w := range ws {
		w := w
		ch := make(chan *gmaps.Entry)
		chans[i] = ch

		egroup.Go(func() error {
			return w.Run(ctx, ch)
		})
	}

	egroup.Go(func() error {
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()

		for _, entry := range entries {
			for _, ch := range chans {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ch <- entry:
				}
			}
		}

		return nil
	})

	return egroup.Wait()
}

func (r *scrapeRunner) Close(context.Context) error {
	if r.dedup != nil {
		_ = r.dedup.Close()
	}

	if r.db != nil {
		return r.db.Close()
	}

	return nil
}
