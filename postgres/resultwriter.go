package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sadewadee/business-contact-scraper/gmaps"
	"github.com/sadewadee/business-contact-scraper/writers"
)

// NewResultWriter returns a writer that batches entries into the results
// table as JSON documents.
func NewResultWriter(db *sql.DB) writers.ResultWriter {
	return &resultWriter{db: db}
}

type resultWriter struct {
	db *sql.DB
}

func (r *resultWriter) Run(ctx context.Context, in <-chan *gmaps.Entry) error {
	const maxBatchSize = 50

	buff := make([]*gmaps.Entry, 0, maxBatchSize)
	lastSave := time.Now().UTC()

	for entry := range in {
		if entry != nil {
			buff = append(buff, entry)
		}

		if len(buff) >= maxBatchSize || time.Since(lastSave) >= time.Minute {
			if err := r.batchSave(ctx, buff); err != nil {
				return err
			}

			buff = buff[:0]
			lastSave = time.Now().UTC()
		}
	}

	if len(buff) > 0 {
		if err := r.batchSave(ctx, buff); err != nil {
			return err
		}
	}

	return nil
}

func (r *resultWriter) batchSave(ctx context.Context, entries []*gmaps.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	q := `INSERT INTO results
		(data)
		VALUES
		`
	elements := make([]string, 0, len(entries))
	args := make([]interface{}, 0, len(entries))

	for i, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		elements = append(elements, fmt.Sprintf("($%d)", i+1))
		args = append(args, data)
	}

	q += strings.Join(elements, ", ")
	q += " ON CONFLICT DO NOTHING"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}

	return tx.Commit()
}
