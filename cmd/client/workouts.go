package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/spf13/cobra"
)

func newWorkoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Aliases: []string{"w"},
		Short:   "Manage your workouts",
	}
	cmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd, true)
			if err != nil {
				return err
			}
			workouts, err := c.ListWorkouts(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), workouts)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd, true)
			if err != nil {
				return err
			}
			w, err := c.GetWorkout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), w)
		},
	}
}

// workoutFlags holds the --title, --reps and --load values.
type workoutFlags struct {
	title string
	reps  int
	load  float64
}

func (f *workoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "exercise name")
	cmd.Flags().IntVar(&f.reps, "reps", 0, "number of repetitions")
	cmd.Flags().Float64Var(&f.load, "load", 0, "load in kg")
}

// patch returns the fields whose flags were set on the command line.
func (f *workoutFlags) patch(cmd *cobra.Command) models.WorkoutPatch {
	var p models.WorkoutPatch
	if cmd.Flags().Changed("title") {
		p.Title = &f.title
	}
	if cmd.Flags().Changed("reps") {
		p.Reps = &f.reps
	}
	if cmd.Flags().Changed("load") {
		p.Load = &f.load
	}
	return p
}

func newAddCmd(a *app) *cobra.Command {
	var f workoutFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd, true)
			if err != nil {
				return err
			}
			p := f.patch(cmd)
			w, err := c.CreateWorkout(cmd.Context(), models.WorkoutInput{Title: p.Title, Reps: p.Reps, Load: p.Load})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), w)
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f workoutFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change some fields of a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := f.patch(cmd)
			if p.Empty() {
				return errors.New("nothing to update, set at least one of --title, --reps, --load")
			}
			c, err := a.newClient(cmd, true)
			if err != nil {
				return err
			}
			w, err := c.UpdateWorkout(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), w)
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a workout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd, true)
			if err != nil {
				return err
			}
			w, err := c.DeleteWorkout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", w.ID, w.Title)
			return nil
		},
	}
}

func printJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func printTable(out io.Writer, workouts []models.Workout) error {
	if len(workouts) == 0 {
		_, err := fmt.Fprintln(out, "No workouts yet")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tREPS\tLOAD\tCREATED")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%g\t%s\n", w.ID, w.Title, w.Reps, w.Load, w.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
