package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goalcal/internal/goals"
	appLog "goalcal/internal/log"
	"goalcal/internal/model"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage the goal collection",
	}
	cmd.AddCommand(
		newGoalsListCmd(app),
		newGoalsAddCmd(app),
		newGoalsEditCmd(app),
		newGoalsRemoveCmd(app),
		newGoalsImportCmd(app),
	)
	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals in processing order, including imported feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.loader().Reload(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTART\tEND\tDAYS\tCOLOR")
			for _, g := range snap.Goals {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", g.Name, g.Start, g.End, g.Days(), g.Color)
			}
			return tw.Flush()
		},
	}
}

func parseGoalArgs(args []string, color string) (*model.Goal, error) {
	start, err := model.ParseDate(args[1])
	if err != nil {
		return nil, err
	}
	end := start
	if len(args) > 2 {
		if end, err = model.ParseDate(args[2]); err != nil {
			return nil, err
		}
	}
	if color == "" {
		color = goals.DefaultColor
	}
	g := &model.Goal{Name: args[0], Start: start, End: end, Color: color}
	if err := goals.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

func newGoalsAddCmd(app *App) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add NAME START [END]",
		Short: "Add a goal (dates as YYYY-MM-DD, END defaults to START)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parseGoalArgs(args, color)
			if err != nil {
				return err
			}
			if err := app.store().Add(g); err != nil {
				return err
			}
			appLog.Info("goal added", "name", g.Name, "start", g.Start, "end", g.End)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Bar color as #rrggbb")
	return cmd
}

func newGoalsEditCmd(app *App) *cobra.Command {
	var (
		color   string
		newName string
	)
	cmd := &cobra.Command{
		Use:   "edit NAME START [END]",
		Short: "Replace the dates (and optionally name/color) of a goal",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if newName != "" {
				args = append([]string{newName}, args[1:]...)
			}
			g, err := parseGoalArgs(args, color)
			if err != nil {
				return err
			}
			if err := app.store().Update(name, g); err != nil {
				return err
			}
			appLog.Info("goal updated", "name", g.Name, "start", g.Start, "end", g.End)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Bar color as #rrggbb")
	cmd.Flags().StringVar(&newName, "rename", "", "New goal name")
	return cmd
}

func newGoalsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store().Remove(args[0]); err != nil {
				return err
			}
			appLog.Info("goal removed", "name", args[0])
			return nil
		},
	}
}

func newGoalsImportCmd(app *App) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "import FILE|URL",
		Short: "Copy the events of an iCalendar file or URL into the goal store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if color == "" {
				color = goals.DefaultColor
			}
			body, _, err := goals.NewFetcher().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			imported, err := goals.ParseICS(args[0], body, color)
			if err != nil {
				return err
			}

			store := app.store()
			added := 0
			for _, g := range imported {
				if err := store.Add(g); err != nil {
					appLog.Error("goal import skipped", err, "name", g.Name)
					continue
				}
				added++
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d goals\n", added, len(imported))
			return err
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Bar color for imported goals as #rrggbb")
	return cmd
}
