package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/model"
	"github.com/GokulM8/taskflow/internal/view"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetInt64("project")
		desc, _ := cmd.Flags().GetString("desc")
		priority, _ := cmd.Flags().GetString("priority")
		due, _ := cmd.Flags().GetString("due")

		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			t, err := a.svc.CreateTask(ctx, model.NewTask{
				ProjectID:   projectID,
				Title:       args[0],
				Description: desc,
				Priority:    model.Priority(priority),
				DueDate:     due,
			})
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", t.ID, t.Title)
			return nil
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks across your projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f model.TaskFilter
		flags := cmd.Flags()
		f.ProjectID, _ = flags.GetInt64("project")
		f.Search, _ = flags.GetString("search")
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			s := model.Status(v)
			f.Status = &s
		}
		if flags.Changed("priority") {
			v, _ := flags.GetString("priority")
			p := model.Priority(v)
			f.Priority = &p
		}

		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			tasks, err := a.svc.Tasks(ctx, f)
			if err != nil {
				return err
			}
			return output(cmd, tasks, func() string { return view.Tasks(tasks) })
		})
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			t, err := a.svc.Task(ctx, id)
			if err != nil {
				return err
			}
			return output(cmd, t, func() string { return view.Task(t) })
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task's fields",
	Long:  `Change a task's fields. Only the flags given are applied; --due "" clears the due date.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var upd model.TaskUpdate
		flags := cmd.Flags()
		if flags.Changed("title") {
			v, _ := flags.GetString("title")
			upd.Title = &v
		}
		if flags.Changed("desc") {
			v, _ := flags.GetString("desc")
			upd.Description = &v
		}
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			s := model.Status(v)
			upd.Status = &s
		}
		if flags.Changed("priority") {
			v, _ := flags.GetString("priority")
			p := model.Priority(v)
			upd.Priority = &p
		}
		if flags.Changed("due") {
			v, _ := flags.GetString("due")
			upd.DueDate = &v
		}

		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			t, err := a.svc.UpdateTask(ctx, id, upd)
			if err != nil {
				return err
			}
			return output(cmd, t, func() string { return view.Task(t) })
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.svc.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		})
	},
}

func init() {
	taskAddCmd.Flags().Int64("project", 0, "project id (required)")
	taskAddCmd.Flags().String("desc", "", "task description")
	taskAddCmd.Flags().String("priority", "", "priority (low, medium, high; default medium)")
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	_ = taskAddCmd.MarkFlagRequired("project")

	taskListCmd.Flags().Int64("project", 0, "only tasks in this project")
	taskListCmd.Flags().String("status", "", "only tasks with this status")
	taskListCmd.Flags().String("priority", "", "only tasks with this priority")
	taskListCmd.Flags().String("search", "", "only tasks whose title contains this text")

	taskEditCmd.Flags().String("title", "", "new title")
	taskEditCmd.Flags().String("desc", "", "new description")
	taskEditCmd.Flags().String("status", "", "new status (todo, in_progress, completed)")
	taskEditCmd.Flags().String("priority", "", "new priority (low, medium, high)")
	taskEditCmd.Flags().String("due", "", "new due date (YYYY-MM-DD, empty to clear)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
}
