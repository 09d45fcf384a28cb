// Package main is the command-line client for the workout tracker API.
package main

import (
	"fmt"
	"os"

	"github.com/atinyakov/WorkoutTracker/internal/client"
	"github.com/spf13/cobra"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// app holds the state shared by all commands.
type app struct {
	baseURL   string
	tokenFile string
	caFile    string

	prompter *client.Prompter
}

func (a *app) store() *client.TokenStore {
	return &client.TokenStore{Path: a.tokenFile}
}

// newClient builds an API client. When authenticated is set the saved
// session supplies the token, and its URL unless --url was given.
func (a *app) newClient(cmd *cobra.Command, authenticated bool) (*client.Client, error) {
	baseURL := a.baseURL
	token := ""
	if authenticated {
		sess, err := a.store().Load()
		if err != nil {
			return nil, err
		}
		token = sess.Token
		if !cmd.Flags().Changed("url") && sess.URL != "" {
			baseURL = sess.URL
		}
	}

	httpClient, err := client.NewHTTPClient(a.caFile)
	if err != nil {
		return nil, err
	}
	c := client.New(baseURL, token)
	c.HTTP = httpClient
	return c, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "workouts-client",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "Workout tracker CLI",
		Long:              `Sign up, log in and manage your workouts on a workout tracker server`,
		Version:           fmt.Sprintf("%s (built %s)", orNA(version), orNA(buildDate)),
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&a.baseURL, "url", "http://localhost:8080", "server base URL")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", client.DefaultTokenPath(), "where the session token is stored")
	root.PersistentFlags().StringVar(&a.caFile, "ca", "", "CA certificate to trust for https servers")

	root.AddCommand(newSignupCmd(a), newLoginCmd(a), newLogoutCmd(a), newWorkoutsCmd(a))
	return root
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func main() {
	a := &app{prompter: client.NewPrompter()}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
