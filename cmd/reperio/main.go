package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/app"
	"github.com/ternarybob/reperio/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	eventURL     = flag.String("url", "", "Event page URL to process")
	extractOnly  = flag.Bool("extract-only", false, "Extract event information without restaurant search")
	searchRadius = flag.Int("radius", 0, "Restaurant search radius in meters (overrides config)")
	partySize    = flag.Int("party", 0, "Party size for reservation emails (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Reperio version %s\n", common.GetVersion())
		os.Exit(0)
	}

	if *eventURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: reperio -url <event page URL> [-config reperio.toml] [-radius meters] [-party size]")
		os.Exit(2)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("reperio.toml"); err == nil {
			configFiles = append(configFiles, "reperio.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *searchRadius > 0 {
		config.PlacesAPI.SearchRadius = *searchRadius
	}
	if *partySize > 0 {
		config.Mailer.PartySize = *partySize
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.LoadVersionFromFile())

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Interrupts cancel the in-flight pipeline cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var output interface{}
	if *extractOnly {
		output = application.Agent.ExtractEvent(ctx, *eventURL)
	} else {
		output = application.Agent.ProcessEventURL(ctx, *eventURL, config.Mailer.PartySize)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(encoded))
}
