// Package main provides the entry point for the Due Helper application.
//
// Running with no arguments opens the interactive terminal interface.
// Subcommands expose the same operations for scripting: managing
// categories, adding and checking tasks, and inspecting storage paths.
package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/duehelper/due-helper/internal/app"
	"github.com/duehelper/due-helper/internal/cli"
)

var (
	catColor      string
	taskCategory  string
	taskDue       string
	taskAvailable string
	taskSubtasks  []string
	listView      string
	debugLog      bool
)

var rootCmd = &cobra.Command{
	Use:   "due-helper",
	Short: "due-helper - track tasks with available and due dates",
	RunE:  runTUI,
}

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Manage categories",
}

var catAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.AddCategoryCommand(deps, args[0], catColor)
		})
	},
}

var catRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category, cascading to its tasks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.RenameCategoryCommand(deps, args[0], args[1], catColor)
		})
	},
}

var catDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category and every task in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.DeleteCategoryCommand(deps, args[0])
		})
	},
}

var catMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a category to a new position (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.MoveCategoryCommand(deps, from, to)
		})
	},
}

var catListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.ListCategoriesCommand(deps, os.Stdout)
		})
	},
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.AddTaskCommand(deps, args[0], cli.TaskOptions{
				Category:  taskCategory,
				Due:       taskDue,
				Available: taskAvailable,
				Subtasks:  taskSubtasks,
			})
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for a view (all, urgent, current, future, or a category)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.ListTasksCommand(deps, os.Stdout, listView)
		})
	},
}

var taskCheckCmd = &cobra.Command{
	Use:   "check <task> [subtask]",
	Short: "Toggle a task or one of its subtasks",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			if len(args) == 2 {
				return cli.CheckSubtaskCommand(deps, args[0], args[1])
			}
			return cli.CheckTaskCommand(deps, args[0])
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			return cli.DeleteTaskCommand(deps, args[0])
		})
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show data, settings and log locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(deps *cli.Dependencies) error {
			cli.PathCommand(deps, os.Stdout)
			return nil
		})
	},
}

// withDeps runs a command body with initialized dependencies and tears
// them down afterwards.
func withDeps(fn func(*cli.Dependencies) error) error {
	deps, err := cli.NewDependencies(true, debugLog)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(deps)
}

func runTUI(cmd *cobra.Command, args []string) error {
	deps, err := cli.NewDependencies(false, debugLog)
	if err != nil {
		return err
	}
	defer deps.Close()

	model := app.New(deps.Store, deps.Config, deps.Logger)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func main() {
	catAddCmd.Flags().StringVar(&catColor, "color", "", "display color, e.g. #85a5ff")
	catRenameCmd.Flags().StringVar(&catColor, "color", "", "new display color")
	catCmd.AddCommand(catAddCmd, catRenameCmd, catDeleteCmd, catMoveCmd, catListCmd)

	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "c", "", "category name (required)")
	taskAddCmd.Flags().StringVarP(&taskDue, "due", "d", "", "due date, YYYY-MM-DD [HH:MM]")
	taskAddCmd.Flags().StringVarP(&taskAvailable, "available", "a", "", "available date, YYYY-MM-DD [HH:MM]")
	taskAddCmd.Flags().StringArrayVarP(&taskSubtasks, "subtask", "s", nil, "subtask description (repeatable)")
	taskListCmd.Flags().StringVarP(&listView, "view", "v", "all", "view or category name")
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskCheckCmd, taskDeleteCmd)

	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.AddCommand(catCmd, taskCmd, pathCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
