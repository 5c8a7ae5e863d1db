package csvrows

import (
	"context"
	"encoding/csv"

	"github.com/sadewadee/business-contact-scraper/gmaps"
	"github.com/sadewadee/business-contact-scraper/writers"
)

// Writer writes entries to CSV, emitting the header row once per stream.
type Writer struct {
	cw          *csv.Writer
	wroteHeader bool
}

func New(cw *csv.Writer) writers.ResultWriter {
	return &Writer{cw: cw}
}

func (w *Writer) Run(ctx context.Context, in <-chan *gmaps.Entry) error {
	defer w.cw.Flush()

	// The header is written even when the run yields no records, matching
	// the output file contract.
	if !w.wroteHeader {
		if err := w.cw.Write((&gmaps.Entry{}).CsvHeaders()); err != nil {
			return err
		}

		w.wroteHeader = true
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-in:
			if !ok {
				return nil
			}

			if entry == nil {
				continue
			}

			if err := w.cw.Write(entry.CsvRow()); err != nil {
				return err
			}
		}
	}
}
