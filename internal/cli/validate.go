package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// newValidateCmd creates the validate command. It runs the full pipeline
// without emitting the JSON document, so every invariant the allocator and
// assembler enforce is checked, and prints a human-readable summary.
func newValidateCmd(opts *rootOpts) *cobra.Command {
	var showPlan bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the topology and preview the derived addressing",
		Long: `Validate loads the topology description, runs the complete address
allocation, and reports what the inventory would contain. Nothing is
printed on stdout in inventory format; use the root command for that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd.Context(), *opts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			printSuccess("topology %s is valid", styleTitle.Render(result.Topology.Name()))
			printKeyValue("nodes", fmt.Sprintf("%d", result.Stats.NodeCount))
			printKeyValue("links", fmt.Sprintf("%d", result.Stats.LinkCount))

			groups := result.Inventory.Groups()
			printKeyValue("groups", strings.Join(groups, ", "))
			for _, name := range groups {
				g, _ := result.Inventory.Group(name)
				printDetail("%s: %s", name, strings.Join(g.Hosts, ", "))
			}

			if showPlan {
				printInfo("address plan")
				for _, host := range result.Inventory.Hosts() {
					hv, _ := result.Inventory.Host(host)
					printDetail("%s  lo4=%s  lo6=%s  net=%s",
						host, hv.Vars.LoopbackIPv4, hv.Vars.LoopbackIPv6, hv.Vars.ClnsNet)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showPlan, "plan", false, "also print each node's loopbacks and CLNS NET")

	return cmd
}
