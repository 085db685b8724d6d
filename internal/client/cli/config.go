package cli

import (
	"flag"
	"io"
	"os"
	"time"
)

// Config holds runtime settings for the skillmarket CLI.
type Config struct {
	APIBaseURL  string
	Mock        bool
	MockLatency time.Duration
	Timeout     time.Duration
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.Timeout = 10 * time.Second
	if v := os.Getenv("SKILLMARKET_API_URL"); v != "" {
		c.APIBaseURL = v
	}
}

// ParseFlags loads defaults and overlays command-line flags.
//
//	-api string       base url of the skillmarket API
//	-mock             use the offline mock backend
//	-mock-latency d   simulated latency for the mock backend
//	-timeout d        per-request timeout against the API
func ParseFlags(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("skillmarket", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base url of the skillmarket API")
	fs.BoolVar(&cfg.Mock, "mock", false, "use the offline mock backend")
	fs.DurationVar(&cfg.MockLatency, "mock-latency", 0, "simulated latency for the mock backend")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
