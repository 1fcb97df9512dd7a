package cli

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/spf13/cobra"
)

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Toggle a task's completion",
		Long: `Mark an open task as completed, or reopen a completed one.

Examples:
  todolist done 12`,
		Args: cobra.ExactArgs(1),
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

			task, err := svc.Toggle(cmd.Context(), id)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("task %d not found", id)
			}
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %q\n", task.DisplayTitle())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: %q\n", task.DisplayTitle())
			}
			return nil
		},
	}
}
