// Command fclconv converts EPCIS 2.0 JSON event documents into FCL
// traceability graphs.
//
// Usage:
//
//	fclconv [-config conv.yaml] [-tracking example:prevID] [-out dir] file.json ...
//
// Each input file is converted independently; a failing document is
// reported and skipped without aborting the batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/221bt/fclgraph/pkg/fclgraph"
	"github.com/221bt/fclgraph/pkg/fclgraph/config"
	"github.com/221bt/fclgraph/pkg/fclgraph/fcl"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fclconv:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("fclconv", flag.ContinueOnError)
	configPath := flags.String("config", "", "converter config file (.yaml or .json)")
	trackingKey := flags.String("tracking", "", "tracking extension name carrying predecessor event ids")
	outDir := flags.String("out", ".", "directory for the generated FCL files")
	verbose := flags.Bool("v", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("no input files; usage: fclconv [flags] file.json ...")
	}

	// Environment variables from a local .env complement the config file.
	_ = godotenv.Load()

	logger := newLogger(*verbose)

	cfg := config.New(nil)
	if *configPath != "" {
		loaded, err := config.FromFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	tracking := resolveTracking(*trackingKey, cfg)
	timeout := cfg.Duration("timeout", 30*time.Second)
	opts := buildOptions(cfg, logger)

	logger.Info("starting batch conversion",
		slog.Int("files", flags.NArg()),
		slog.String("tracking_key", tracking),
	)

	failures := 0
	for _, path := range flags.Args() {
		if err := convertFile(path, *outDir, tracking, timeout, opts); err != nil {
			logger.Error("conversion failed",
				slog.String("file", path),
				slog.String("error", err.Error()),
			)
			failures++
			continue
		}
		logger.Info("converted", slog.String("file", path))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, flags.NArg())
	}
	return nil
}

// newLogger builds an slog logger backed by a console handler.
func newLogger(verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler)
}

// resolveTracking picks the tracking key: flag, then config, then
// environment, then the stock default.
func resolveTracking(flagValue string, cfg config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if key := cfg.String("tracking_key", ""); key != "" {
		return key
	}
	if key := os.Getenv("FCLCONV_TRACKING_KEY"); key != "" {
		return key
	}
	return fclgraph.DefaultTrackingKey
}

// buildOptions maps config entries onto conversion options. Extra output
// columns are declared as lists of {id, type, attribute|extension}
// objects under station_columns and delivery_columns.
func buildOptions(cfg config.Config, logger *slog.Logger) []fclgraph.Option {
	opts := []fclgraph.Option{fclgraph.WithLogger(logger)}

	for _, entry := range cfg.MapSlice("station_columns") {
		column, source := columnEntry(entry, "attribute")
		if column.ID == "" || source == "" {
			continue
		}
		opts = append(opts, fclgraph.WithStationColumn(column, source))
	}
	for _, entry := range cfg.MapSlice("delivery_columns") {
		column, source := columnEntry(entry, "extension")
		if column.ID == "" || source == "" {
			continue
		}
		opts = append(opts, fclgraph.WithDeliveryColumn(column, source))
	}
	return opts
}

// columnEntry reads one extra-column config object.
func columnEntry(entry map[string]any, sourceKey string) (fcl.Column, string) {
	column := fcl.Column{Type: "string"}
	if id, ok := entry["id"].(string); ok {
		column.ID = id
	}
	if typ, ok := entry["type"].(string); ok {
		column.Type = typ
	}
	source, _ := entry[sourceKey].(string)
	return column, source
}

// convertFile converts one EPCIS document and writes the FCL output next
// to it, swapping the extension for .fcl.json.
func convertFile(path, outDir, tracking string, timeout time.Duration, opts []fclgraph.Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := fclgraph.ConvertJSON(ctx, data, tracking, opts...)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".fcl.json"
	return os.WriteFile(filepath.Join(outDir, name), out, 0o644)
}
