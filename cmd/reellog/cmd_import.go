package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "import <username>",
		Short: "Import a user's film diary from the source site",
		Long:  "Walk the user's paginated film list and store every entry. Runs synchronously.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			summary, err := apiClient.Import.Run(context.Background(), args[0], refresh)
			if err != nil {
				fatal("import", err)
			}

			if flagFmt == "table" {
				formatTable(
					[]string{"PAGES", "INSERTED", "UPDATED", "SKIPPED", "ERRORED", "DURATION"},
					[][]string{{
						fmt.Sprintf("%d", summary.Pages),
						fmt.Sprintf("%d", summary.Inserted),
						fmt.Sprintf("%d", summary.Updated),
						fmt.Sprintf("%d", summary.Skipped),
						fmt.Sprintf("%d", summary.Errored),
						summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond).String(),
					}},
				)
				return
			}
			output(summary, summary.RunID)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-fetch and overwrite records already stored")
	return cmd
}
