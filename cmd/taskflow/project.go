package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/model"
	"github.com/GokulM8/taskflow/internal/view"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("desc")
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			p, err := a.svc.CreateProject(ctx, args[0], desc)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project #%d: %s\n", p.ID, p.Title)
			return nil
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects with task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			projects, err := a.svc.Projects(ctx)
			if err != nil {
				return err
			}
			return output(cmd, projects, func() string { return view.Projects(projects) })
		})
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project",
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
			p, err := a.svc.Project(ctx, id)
			if err != nil {
				return err
			}
			return output(cmd, p, func() string { return view.Project(p) })
		})
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a project's title, description or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var upd model.ProjectUpdate
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

		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			p, err := a.svc.UpdateProject(ctx, id, upd)
			if err != nil {
				return err
			}
			return output(cmd, p, func() string { return view.Project(p) })
		})
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a project and all of its tasks",
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
			if err := a.svc.DeleteProject(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project #%d\n", id)
			return nil
		})
	},
}

func init() {
	projectAddCmd.Flags().String("desc", "", "project description")

	projectEditCmd.Flags().String("title", "", "new title")
	projectEditCmd.Flags().String("desc", "", "new description")
	projectEditCmd.Flags().String("status", "", "new status (todo, in_progress, completed)")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectRmCmd)
}
