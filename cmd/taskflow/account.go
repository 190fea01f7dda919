package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/model"
	"github.com/GokulM8/taskflow/internal/tracker"
	"github.com/GokulM8/taskflow/internal/view"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		confirm, _ := cmd.Flags().GetString("confirm")

		return withApp(func(a *app) error {
			u, err := a.svc.Register(cmd.Context(), tracker.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Confirm:  confirm,
			})
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s>\n", u.Name, u.Email)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and print a session token",
	Long:  `Authenticate and print a session token. Pass it to later commands with --token or TASKFLOW_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		return withApp(func(a *app) error {
			token, u, err := a.svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					Token string      `json:"token"`
					User  *model.User `json:"user"`
				}{token, u})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		})
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			u, err := a.svc.Me(ctx)
			if err != nil {
				return err
			}
			return output(cmd, u, func() string { return view.User(u) })
		})
	},
}

func init() {
	registerCmd.Flags().String("name", "", "display name (required)")
	registerCmd.Flags().String("email", "", "email address (required)")
	registerCmd.Flags().String("password", "", "password (required)")
	registerCmd.Flags().String("confirm", "", "password confirmation")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password")
}
