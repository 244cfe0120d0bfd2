package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate film diary statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			snap, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}

			if flagFmt != "table" {
				output(snap, strconv.Itoa(snap.TotalMovies))
				return
			}

			formatTable(
				[]string{"MOVIES", "AVG RATING", "AVG SITE RATING", "TOTAL RUNTIME"},
				[][]string{{
					strconv.Itoa(snap.TotalMovies),
					fmt.Sprintf("%.2f", snap.AverageRating),
					fmt.Sprintf("%.2f", snap.AverageExternalRating),
					snap.TotalRuntimeFormatted,
				}},
			)

			if len(snap.TopDirectors) > 0 {
				fmt.Println()
				rows := make([][]string, 0, len(snap.TopDirectors))
				for _, p := range snap.TopDirectors {
					rows = append(rows, []string{p.Name, strconv.Itoa(p.Movies)})
				}
				formatTable([]string{"TOP DIRECTORS", "MOVIES"}, rows)
			}
		},
	}
}
