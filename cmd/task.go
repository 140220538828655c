package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvessman/tracklog/internal/clierr"
	"github.com/mvessman/tracklog/internal/output"
	"github.com/mvessman/tracklog/internal/taskstore"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task list",
}

var flagTaskParent int

var taskAddCmd = &cobra.Command{
	Use:     "add NAME...",
	Aliases: []string{"create"},
	Short:   "Add a task, optionally under a parent",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if strings.TrimSpace(name) == "" {
			return clierr.New(clierr.InvalidInput, "task name must not be empty")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		unlock, err := a.lock()
		if err != nil {
			return err
		}
		defer unlock()

		parent := flagTaskParent
		if parent != taskstore.NoParent && (parent < 0 || parent >= a.tasks.Len()) {
			return clierr.Newf(clierr.InvalidParent, "parent index %d does not exist", parent).
				WithDetails(map[string]any{"parent": parent, "tasks": a.tasks.Len()})
		}

		idx, err := a.tasks.Add(name, parent)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, output.TasksJSON(a.tasks.Tasks())[idx])
		}
		output.Messagef(os.Stdout, "Added task #%d: %s", idx, name)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:     "done INDEX",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's done flag",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return clierr.Newf(clierr.InvalidTaskIndex, "invalid task index %q", args[0])
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		unlock, err := a.lock()
		if err != nil {
			return err
		}
		defer unlock()

		if idx < 0 || idx >= a.tasks.Len() {
			return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", idx).
				WithDetails(map[string]any{"index": idx})
		}
		if err := a.tasks.Toggle(idx); err != nil {
			return err
		}

		t := a.tasks.Tasks()[idx]
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, output.TasksJSON(a.tasks.Tasks())[idx])
		}
		mark := "not done"
		if t.Done {
			mark = "done"
		}
		output.Messagef(os.Stdout, "Task #%d is now %s: %s", idx, mark, t.Name)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the task forest",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, output.TasksJSON(a.tasks.Tasks()))
		case output.FormatCompact:
			output.TaskCompact(os.Stdout, a.tasks.Tasks())
		default:
			output.TaskTree(os.Stdout, a.tasks)
		}
		return nil
	},
}

func init() {
	taskAddCmd.Flags().IntVar(&flagTaskParent, "parent", taskstore.NoParent, "parent task index")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskListCmd)
	rootCmd.AddCommand(taskCmd)
}
