package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appLog "goalcal/internal/log"
	"goalcal/internal/model"
	"goalcal/internal/render"
)

func newLayoutCmd(app *App) *cobra.Command {
	var offset int
	cmd := &cobra.Command{
		Use:   "layout [YYYY-MM]",
		Short: "Print the computed layout of a month as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthArg(args, offset)
			if err != nil {
				return err
			}
			l, err := app.layout(cmd.Context(), m)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), render.NewLayoutJSON(l))
		},
	}
	addMonthFlags(cmd, &offset)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var offset int
	cmd := &cobra.Command{
		Use:   "show [YYYY-MM]",
		Short: "Draw a month with its goal bars in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthArg(args, offset)
			if err != nil {
				return err
			}
			l, err := app.layout(cmd.Context(), m)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Text(l))
			return err
		},
	}
	addMonthFlags(cmd, &offset)
	return cmd
}

func newPreviewCmd(app *App) *cobra.Command {
	var (
		offset int
		output string
	)
	cmd := &cobra.Command{
		Use:   "preview [YYYY-MM]",
		Short: "Render a month to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			m, err := monthArg(args, offset)
			if err != nil {
				return err
			}
			l, err := app.layout(cmd.Context(), m)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := render.WritePNG(f, l); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			appLog.Info("preview written", "path", output, "month", m, "bars", len(l.Bars))
			return nil
		},
	}
	addMonthFlags(cmd, &offset)
	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "PNG file to write")
	return cmd
}

func newHitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hit YYYY-MM X Y",
		Short: "Print the goal drawn at pixel (X, Y) of a month's preview",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseMonth(args[0])
			if err != nil {
				return err
			}
			x, err := parseInt("X", args[1])
			if err != nil {
				return err
			}
			y, err := parseInt("Y", args[2])
			if err != nil {
				return err
			}
			l, err := app.layout(cmd.Context(), m)
			if err != nil {
				return err
			}

			g, ok := l.HitTest(x, y)
			if !ok {
				return fmt.Errorf("no goal at (%d, %d)", x, y)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", g.Name, g.Start, g.End)
			return err
		},
	}
}
