package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
	"github.com/inamate/transformlab/internal/lab"
	"github.com/inamate/transformlab/internal/present"
)

// cli holds the flags shared by every subcommand.
type cli struct {
	verbose  bool
	points   string
	decimals int
	asJSON   bool
}

func (c *cli) service() *lab.Service {
	opts := lab.DefaultOptions()
	opts.TableDecimals = c.decimals
	return lab.NewService(opts)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "labctl",
		Short: "Apply translations, rotations, reflections and dilations to a point list",
		Long: `Apply one 2D transformation to a polygon and print the original and
transformed vertices side by side, or render both as a PNG.

Examples:
  labctl translate --points "1,1; 3,1; 3,3; 1,3" --dx 2 --dy -1
  labctl rotate --angle 45 --cx 1 --cy 1
  labctl reflect --axis y=x --json
  labctl plot dilate --scale 0.5 -o dilate.png`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&c.points, "points", "p", document.DefaultPointsText, `vertices as "x1,y1; x2,y2; ..."`)
	root.PersistentFlags().IntVar(&c.decimals, "decimals", present.DefaultTableDecimals, "decimal places in the table")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print the full result as JSON")

	for _, kind := range []engine.Kind{engine.KindTranslate, engine.KindRotate, engine.KindReflect, engine.KindDilate} {
		root.AddCommand(newTransformCmd(c, kind))
	}
	root.AddCommand(newPlotCmd(c))

	return root
}

// paramFlags binds the transformation parameters. Only flags the user set
// end up in the Spec, so the rest take the lab defaults.
type paramFlags struct {
	dx, dy, angle, scale, cx, cy float64
	axis                         string
}

func (p *paramFlags) register(fs *pflag.FlagSet, kind engine.Kind) {
	translate := kind == engine.KindTranslate || kind == 0
	rotate := kind == engine.KindRotate || kind == 0
	reflect := kind == engine.KindReflect || kind == 0
	dilate := kind == engine.KindDilate || kind == 0

	if translate {
		fs.Float64Var(&p.dx, "dx", document.DefaultDX, "horizontal shift")
		fs.Float64Var(&p.dy, "dy", document.DefaultDY, "vertical shift")
	}
	if rotate {
		fs.Float64Var(&p.angle, "angle", document.DefaultAngle, "rotation angle in degrees, counter-clockwise")
	}
	if dilate {
		fs.Float64Var(&p.scale, "scale", document.DefaultScaleFactor, "scale factor")
	}
	if rotate || dilate {
		fs.Float64Var(&p.cx, "cx", 0, "center x")
		fs.Float64Var(&p.cy, "cy", 0, "center y")
	}
	if reflect {
		fs.StringVar(&p.axis, "axis", document.DefaultAxis, "mirror line: x, y or y=x")
	}
}

func (p *paramFlags) spec(fs *pflag.FlagSet, kind engine.Kind) document.Spec {
	s := document.Spec{Kind: kind.String()}
	set := func(name string, v float64, dst **float64) {
		if fs.Changed(name) {
			*dst = &v
		}
	}
	set("dx", p.dx, &s.DX)
	set("dy", p.dy, &s.DY)
	set("angle", p.angle, &s.AngleDegrees)
	set("scale", p.scale, &s.ScaleFactor)
	set("cx", p.cx, &s.CenterX)
	set("cy", p.cy, &s.CenterY)
	if fs.Changed("axis") {
		s.Axis = p.axis
	}
	return s
}

func newTransformCmd(c *cli, kind engine.Kind) *cobra.Command {
	p := &paramFlags{}
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("%s the point list", strings.TrimPrefix(present.Title(kind), "Transformation: ")),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := document.TransformRequest{Points: c.points, Transformation: p.spec(cmd.Flags(), kind)}
			slog.Debug("transform", "kind", kind, "points", c.points)

			res, err := c.service().TransformLenient(req)
			if err != nil {
				return err
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s; using fallback shape\n", res.Warning)
			}
			if c.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	p.register(cmd.Flags(), kind)
	return cmd
}

func newPlotCmd(c *cli) *cobra.Command {
	p := &paramFlags{}
	var (
		output string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "plot <translate|rotate|reflect|dilate>",
		Short: "Render the original and transformed shapes as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParseKind(args[0])
			if err != nil {
				return err
			}
			req := document.TransformRequest{Points: c.points, Transformation: p.spec(cmd.Flags(), kind)}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			res, err := c.service().Plot(f, req, size)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(output)
				return err
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s; using fallback shape\n", res.Warning)
			}
			slog.Debug("plot written", "path", output, "kind", kind)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\nwrote %s\n", res.Title, res.Description, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "transformation.png", "PNG file to write")
	cmd.Flags().IntVar(&size, "size", 0, "image edge in pixels (default from the lab)")
	p.register(cmd.Flags(), 0)
	return cmd
}

func printResult(w io.Writer, res *document.TransformResult) error {
	fmt.Fprintln(w, res.Title)
	fmt.Fprintln(w, res.Description)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Original\tTransformed")
	for _, row := range res.Table {
		fmt.Fprintf(tw, "%s\t%s\n", row.Original, row.Transformed)
	}
	return tw.Flush()
}
