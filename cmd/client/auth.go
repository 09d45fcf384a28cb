package main

import (
	"context"
	"fmt"

	"github.com/atinyakov/WorkoutTracker/internal/client"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/spf13/cobra"
)

type credentialsCall func(c *client.Client, ctx context.Context, email, password string) (*models.AuthResponse, error)

func newSignupCmd(a *app) *cobra.Command {
	return newCredentialsCmd(a, "signup", "Create an account and save its token", (*client.Client).Signup)
}

func newLoginCmd(a *app) *cobra.Command {
	return newCredentialsCmd(a, "login", "Log in and save the issued token", (*client.Client).Login)
}

func newCredentialsCmd(a *app, use, short string, call credentialsCall) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = a.prompter.Line("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompter.Password("Password: "); err != nil {
					return err
				}
			}

			c, err := a.newClient(cmd, false)
			if err != nil {
				return err
			}
			resp, err := call(c, cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if err := a.store().Save(&client.Session{URL: c.BaseURL, Email: resp.Email, Token: resp.Token}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted without echo when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
