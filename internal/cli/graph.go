package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/render"
)

// Output formats for the graph command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newGraphCmd creates the graph command, which renders the addressed
// topology as a diagram.
func newGraphCmd(opts *rootOpts) *cobra.Command {
	var (
		format    string
		output    string
		addresses bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the topology as a Graphviz diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd.Context(), *opts)
			if err != nil {
				return err
			}

			dot := render.ToDOT(result.Topology, result.Plan, render.Options{Addresses: addresses})

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				data, err = render.RenderSVG(dot)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
				}
			default:
				return errors.New(errors.ErrCodeInternal, "unsupported format %q (want dot or svg)", format)
			}

			if output == "" {
				fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&addresses, "addresses", true, "annotate nodes and links with assigned addresses")

	return cmd
}
