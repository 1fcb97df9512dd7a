package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/service"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to the list.

Examples:
  todolist add "Buy milk"
  todolist add Call the plumber -d "Kitchen sink, before Friday"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			task, err := svc.Add(cmd.Context(), strings.Join(args, " "), description)
			if errors.Is(err, service.ErrEmptyTask) {
				return errors.New("a task needs a title or a description")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", task.ID, task.DisplayTitle())
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description (markdown)")
	return cmd
}
