package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Import the demo tasks if the store is empty",
		Long: `Run the same load as the interactive UI: when the store holds no
tasks, fetch the demo list from the seed URL and store it. A store
that already has tasks is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			tasks, err := svc.Load(cmd.Context())
			if err != nil {
				a.logger.Error("seed failed", slog.Any("error", err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) in store\n", len(tasks))
			return nil
		},
	}
}
