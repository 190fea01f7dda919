package main

import (
	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/view"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show task counts, recent tasks and completions by weekday",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			d, err := a.svc.Dashboard(ctx)
			if err != nil {
				return err
			}
			return output(cmd, d, func() string { return view.Dashboard(d) })
		})
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show your most recent task activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.svc.Activity(ctx, limit)
			if err != nil {
				return err
			}
			return output(cmd, entries, func() string { return view.Activity(entries) })
		})
	},
}

func init() {
	activityCmd.Flags().Int("limit", 10, "number of entries (max 100)")
}
