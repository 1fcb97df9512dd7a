package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/views"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task with its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, closeStore, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			task, err := svc.Get(cmd.Context(), id)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("task %d not found", id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTaskLine(out, task)
			if strings.TrimSpace(task.Description) != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, views.RenderMarkdown(task.Description))
			}
			return nil
		},
	}
}
