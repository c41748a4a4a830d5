package cli

import (
	"fmt"
	"strconv"

	"framefit/geom"

	"github.com/spf13/cobra"
)

func newFitCmd() *cobra.Command {
	var (
		x, y float64
		mode string
	)
	cmd := &cobra.Command{
		Use:   "fit CONTENT_W CONTENT_H FRAME_W FRAME_H",
		Short: "Print where content lands inside a frame",
		Example: `  framefit fit 800 450 1024 1024
  framefit fit 4 3 1920 1080 --mode "fit|left"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dims [4]float64
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				dims[i] = v
			}
			if err := geom.CheckSize(dims[0], dims[1]); err != nil {
				return fmt.Errorf("content: %w", err)
			}
			if err := geom.CheckSize(dims[2], dims[3]); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
			m, err := geom.ParseMode(mode)
			if err != nil {
				return err
			}

			r := geom.Fit(dims[0], dims[1], dims[2], dims[3], x, y, m)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, r.String())
			fmt.Fprintf(out, "mode %s, scale %.4f, rect %v\n", m, r.ScaledW()/dims[0], r.Rect())
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "frame origin x")
	cmd.Flags().Float64Var(&y, "y", 0, "frame origin y")
	cmd.Flags().StringVar(&mode, "mode", "fit", "fit/alignment flags")
	return cmd
}
