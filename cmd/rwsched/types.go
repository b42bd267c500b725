package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/ysadouski/rwsched/config"
	"github.com/ysadouski/rwsched/extract"
	"github.com/ysadouski/rwsched/scraper"
)

func typesCmd() *cobra.Command {
	var (
		fromCity   string
		toCity     string
		travelDate string
		presetName string
	)

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the train types present on a route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}

			criteria, err := resolveCriteria(config.Criteria{
				Origin:      stringIfChanged(cmd, "from", fromCity),
				Destination: stringIfChanged(cmd, "to", toCity),
				Date:        stringIfChanged(cmd, "date", travelDate),
			}, presetName)
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

			body, _, err := fetcher.Fetch(cmd.Context(), routeURL)
			if err != nil {
				return err
			}

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
			if err != nil {
				return fmt.Errorf("parse document: %w", err)
			}

			cmd.Println("Train types found in response:")
			for _, t := range extract.TrainTypes(doc) {
				cmd.Println("  -", t)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromCity, "from", "", "origin city alias (see cities file)")
	cmd.Flags().StringVar(&toCity, "to", "", "destination city alias (see cities file)")
	cmd.Flags().StringVar(&travelDate, "date", "", "travel date in YYYY-MM-DD")
	cmd.Flags().StringVar(&presetName, "preset", "", "named criteria preset from the config file")

	return cmd
}
