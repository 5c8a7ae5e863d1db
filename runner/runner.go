package runner

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Runner executes a full scrape and owns the resources it opens.
type Runner interface {
	Run(ctx context.Context) error
	Close(ctx context.Context) error
}

type Config struct {
	APIKey        string
	Location      string
	BusinessTypes []string
	MaxResults    int
	Radius        int
	MaxPages      int
	Output        string
	Dsn           string
	VerifyEmails  bool
	Dedup         bool
	DedupDB       string
}

const defaultBusinessTypes = "marketing agency,law firm,accounting firm,consulting firm,real estate agency"

// ParseConfig reads flags and the environment. The Places API credential
// comes from GOOGLE_PLACES_API (a .env file is honored when present).
func ParseConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var types string

	flag.StringVar(&cfg.Location, "location", "Caringbah, NSW", "target location for the search")
	flag.StringVar(&types, "types", defaultBusinessTypes, "comma separated business-type queries")
	flag.IntVar(&cfg.MaxResults, "results", 20, "maximum business records across all types")
	flag.IntVar(&cfg.Radius, "radius", 5000, "search radius in meters")
	flag.IntVar(&cfg.MaxPages, "max-pages", 3, "maximum pages crawled per website")
	flag.StringVar(&cfg.Output, "output", "business_contacts.csv", "output CSV path (overwritten)")
	flag.StringVar(&cfg.Dsn, "dsn", "", "optional postgres DSN to also store results")
	flag.BoolVar(&cfg.VerifyEmails, "verify-emails", false, "verify the first extracted email per business (MX check)")
	flag.BoolVar(&cfg.Dedup, "dedup", false, "drop businesses already seen by an earlier query")
	flag.StringVar(&cfg.DedupDB, "dedup-db", "", "sqlite path for persistent dedup (implies -dedup)")
	flag.Parse()

	cfg.APIKey = strings.TrimSpace(os.Getenv("GOOGLE_PLACES_API"))

	for _, t := range strings.Split(types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			cfg.BusinessTypes = append(cfg.BusinessTypes, t)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.BusinessTypes) == 0 {
		return fmt.Errorf("at least one business type is required")
	}

	if c.Location == "" {
		return fmt.Errorf("location is required")
	}

	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}

	return nil
}
