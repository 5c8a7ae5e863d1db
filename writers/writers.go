// Package writers defines the sink interface fed by the scrape runner.
package writers

import (
	"context"

	"github.com/sadewadee/business-contact-scraper/gmaps"
)

// ResultWriter consumes finished entries from the runner until the channel
// closes. Entries arrive in production order.
type ResultWriter interface {
	Run(ctx context.Context, in <-chan *gmaps.Entry) error
}
