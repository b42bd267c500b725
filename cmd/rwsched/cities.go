package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ysadouski/rwsched/config"
)

func citiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List known city aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}

			cities, err := config.LoadCities(cfg.CitiesFile)
			if err != nil {
				return err
			}

			aliases := make([]string, 0, len(cities))
			for alias := range cities {
				aliases = append(aliases, alias)
			}
			sort.Strings(aliases)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 5, 3, 3, ' ', 0)
			fmt.Fprintln(w, "alias\tcity\texp\tesr")
			for _, alias := range aliases {
				city := cities[alias]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", city.Alias, city.Name, city.ExpCode, city.EsrCode)
			}
			return w.Flush()
		},
	}
	return cmd
}
