package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ysadouski/rwsched/config"
	"github.com/ysadouski/rwsched/models"
	"github.com/ysadouski/rwsched/pipeline"
	"github.com/ysadouski/rwsched/scraper"
)

const noTrainsMessage = "Нет поездов с указанным фильтром."

func checkCmd() *cobra.Command {
	var (
		fromCity     string
		toCity       string
		travelDate   string
		trainTypes   []string
		selling      string
		bracket      string
		presetName   string
		outputFile   string
		outputFormat string
		metricsAddr  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch a route and print the filtered schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, metricsAddr)
			if err != nil {
				return err
			}

			criteria, err := resolveCriteria(config.Criteria{
				Origin:      stringIfChanged(cmd, "from", fromCity),
				Destination: stringIfChanged(cmd, "to", toCity),
				Date:        stringIfChanged(cmd, "date", travelDate),
				TrainTypes:  sliceIfChanged(cmd, "type", trainTypes),
				Selling:     stringIfChanged(cmd, "selling", selling),
				Bracket:     stringIfChanged(cmd, "bracket", bracket),
			}, presetName)
			if err != nil {
				return err
			}

			filters, err := criteria.FilterCriteria()
			if err != nil {
				return err
			}

			routeURL, err := buildRouteURL(cfg, criteria)
			if err != nil {
				return err
			}

			fetcher, err := scraper.New(cfg)
			if err != nil {
				return fmt.Errorf("initialising fetcher: %w", err)
			}

			if cfg.MetricsAddr != "" {
				metricsServer := &http.Server{
					Addr:    cfg.MetricsAddr,
					Handler: promhttp.HandlerFor(fetcher.Metrics.Registry, promhttp.HandlerOpts{}),
				}
				go func() {
					if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						slog.Error("metrics server failed", slog.Any("error", err))
					}
				}()
				defer func() {
					if err := metricsServer.Close(); err != nil {
						slog.Error("metrics server shutdown failed", slog.Any("error", err))
					}
				}()
				slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
			}

			start := time.Now()
			body, fetchResult, err := fetcher.Fetch(cmd.Context(), routeURL)
			if err != nil {
				return err
			}

			var writer pipeline.OutputWriter
			if outputFile != "" {
				writer, err = createWriter(strings.ToLower(outputFormat), outputFile)
				if err != nil {
					return fmt.Errorf("creating writer: %w", err)
				}
			}

			result, err := pipeline.New(filters, writer).Run(body)
			if err != nil {
				if writer != nil {
					_ = writer.Close()
				}
				return err
			}
			fetcher.Metrics.AddRows(result.Extracted)

			if len(result.Records) == 0 {
				cmd.Println(noTrainsMessage)
			} else {
				for _, line := range result.Lines {
					cmd.Println(line)
				}
			}

			if writer != nil {
				if err := writer.Close(); err != nil {
					return fmt.Errorf("close writer: %w", err)
				}
				if len(result.Records) > 0 {
					if err := writer.Validate(); err != nil {
						return fmt.Errorf("output validation failed: %w", err)
					}
					slog.Info("report exported", slog.String("file", outputFile), slog.Int("trains", len(result.Records)))
				}
			}

			if cfg.Verbose {
				printSummary(cmd, fetchResult, result, time.Since(start))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromCity, "from", "", "origin city alias (see cities file)")
	cmd.Flags().StringVar(&toCity, "to", "", "destination city alias (see cities file)")
	cmd.Flags().StringVar(&travelDate, "date", "", "travel date in YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&trainTypes, "type", nil, "keep only these train types (repeatable)")
	cmd.Flags().StringVar(&selling, "selling", "", "filter by ticket selling allowed (true or false)")
	cmd.Flags().StringVar(&bracket, "bracket", "", "price bracket: cheap, normal, or expensive")
	cmd.Flags().StringVar(&presetName, "preset", "", "named criteria preset from the config file")
	cmd.Flags().StringVar(&outputFile, "output", "", "export the filtered report to this file")
	cmd.Flags().StringVar(&outputFormat, "format", "csv", "export format: csv, json, or dual")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")

	return cmd
}

func loadConfig(cmd *cobra.Command, metricsAddr string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("base_url"); v != "" {
		cfg.BaseURL = v
	}
	if v := viper.GetString("cities_file"); v != "" {
		cfg.CitiesFile = v
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveCriteria merges a preset (if any) into flag-provided criteria
// and verifies the route fields are complete.
func resolveCriteria(flags config.Criteria, presetName string) (config.Criteria, error) {
	presets, err := config.LoadPresets(viper.GetViper())
	if err != nil {
		return config.Criteria{}, err
	}
	return config.Resolve(flags, presetName, presets)
}

func buildRouteURL(cfg *config.Config, criteria config.Criteria) (string, error) {
	date, err := time.Parse("2006-01-02", *criteria.Date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *criteria.Date)
	}

	cities, err := config.LoadCities(cfg.CitiesFile)
	if err != nil {
		return "", err
	}
	from, err := cities.Lookup(*criteria.Origin)
	if err != nil {
		return "", err
	}
	to, err := cities.Lookup(*criteria.Destination)
	if err != nil {
		return "", err
	}

	return config.RouteURL(cfg.BaseURL, from, to, date), nil
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return pipeline.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(cmd *cobra.Command, fetch *models.FetchResult, result *pipeline.Result, duration time.Duration) {
	separator := "--------------------------------------------------"
	cmd.Println("\n" + separator)
	cmd.Printf("  Rows extracted: %d\n", result.Extracted)
	cmd.Printf("  Rows kept:      %d\n", len(result.Records))
	cmd.Printf("  Requests:       %d\n", fetch.RequestCount)
	cmd.Printf("  Retries:        %d\n", fetch.RetryCount)
	cmd.Printf("  Errors:         %d\n", fetch.ErrorCount)
	if len(fetch.ErrorsByType) > 0 {
		cmd.Printf("  Error types:    %v\n", fetch.ErrorsByType)
	}
	if fetch.FromCache {
		cmd.Println("  Page served from cache")
	}
	cmd.Printf("  Duration:       %v\n", duration)
	cmd.Println(separator)
}

func stringIfChanged(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func sliceIfChanged(cmd *cobra.Command, flag string, value []string) *[]string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}
