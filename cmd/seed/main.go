package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/eventscore/rankd/internal/seed"
	"github.com/eventscore/rankd/pkg/logger"
)

// Default configuration constants.
const (
	defaultGroups     = 4
	defaultGroupSize  = 8
	defaultActivities = 4
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		eventName  = flag.String("name", "Demo Sports Day", "Name of the generated event")
		groups     = flag.Int("groups", defaultGroups, "Number of groups to create")
		groupSize  = flag.Int("group-size", defaultGroupSize, "Participants per group")
		activities = flag.Int("activities", defaultActivities, "Number of activities to create")
		categories = flag.Bool("age-categories", true, "Configure age category bands")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:       *baseURL,
		EventName:     *eventName,
		Groups:        *groups,
		GroupSize:     *groupSize,
		Activities:    *activities,
		AgeCategories: *categories,
		Timeout:       *timeout,
		Verbose:       *verbose,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
