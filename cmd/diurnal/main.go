package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chrissnell/diurnal/internal/app"
	"github.com/chrissnell/diurnal/internal/log"
	"github.com/chrissnell/diurnal/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "diurnal.yaml", "Path to YAML configuration file")
	at := flag.String("at", "", "One-shot query: print the temperature at this RFC3339 instant and exit")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("diurnal %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load configuration
	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)
	cfgData, err := provider.LoadConfig()
	if err != nil {
		log.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %v", err)
		os.Exit(1)
	}

	application := app.New(cfgData, log.GetSugaredLogger())

	if *at != "" {
		if err := queryOnce(application, *at); err != nil {
			log.Errorf("query failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

// queryOnce builds the series and prints a single point estimate.
func queryOnce(application *app.App, at string) error {
	instant, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return fmt.Errorf("-at must be RFC3339, e.g. 2023-07-01T14:00:00Z: %w", err)
	}

	series, err := application.BuildSeries()
	if err != nil {
		return err
	}

	value, err := series.TempAt(instant)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %.2f\n", instant.Format(time.RFC3339), value)
	return nil
}
