package cli

import (
	"fmt"
	"io"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		query    string
		onlyDone bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks, newest first.

Examples:
  todolist list
  todolist list --search milk
  todolist list --done`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			tasks, err := svc.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}
			if onlyDone {
				tasks = completedOnly(tasks)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, `No tasks found. Add one with: todolist add "Your task"`)
				return nil
			}
			for _, t := range tasks {
				printTaskLine(out, t)
			}
			fmt.Fprintf(out, "\n%d task(s)\n", len(tasks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "Only tasks whose title or description contains this text")
	cmd.Flags().BoolVar(&onlyDone, "done", false, "Only completed tasks")
	return cmd
}

func completedOnly(tasks []model.Task) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func printTaskLine(w io.Writer, t model.Task) {
	mark := "○"
	if t.Completed {
		mark = "✓"
	}
	fmt.Fprintf(w, "%s %5d  %s  %s\n", mark, t.ID, t.FormatDate(), t.DisplayTitle())
}
