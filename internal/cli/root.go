package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/netlabtools/clabinv/pkg/buildinfo"
	"github.com/netlabtools/clabinv/pkg/pipeline"
)

// rootOpts holds the flags shared by the root command and its subcommands.
type rootOpts struct {
	dir      string // directory searched for a *.clab.yml file
	topoFile string // explicit topology file, overrides dir
	kinds    string // TOML kind-table overrides
}

// pipelineOptions converts the flags into pipeline options.
func (o *rootOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Dir:          o.dir,
		TopologyFile: o.topoFile,
		KindsFile:    o.kinds,
	}
}

// Execute runs the clabinv CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The root command implements the Ansible dynamic-inventory contract:
//
//	clabinv --list         # full inventory JSON on stdout
//	clabinv --host leaf-1  # one host's variable set
//
// Running without either flag behaves like --list, matching how the
// original inventory script was wired into ansible.cfg.
func Execute(ctx context.Context) error {
	var (
		verbose  bool
		list     bool
		hostName string
		opts     rootOpts
	)

	root := &cobra.Command{
		Use:          "clabinv",
		Short:        "clabinv generates Ansible inventories from containerlab topologies",
		Long: `clabinv reads a containerlab topology description and derives a fully
addressed Ansible inventory: IPv4/IPv6 loopbacks per node, a dedicated
point-to-point subnet per link, a CLNS NET per node, and per-interface
local/neighbor addressing, grouped by node type.

Addressing is deterministic: the same topology always produces the same
inventory, with no state kept between runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if hostName != "" {
				return runHost(cmd.Context(), opts, cmd.OutOrStdout(), hostName)
			}
			_ = list // --list is the default behavior either way
			return runList(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "directory to search for a *.clab.yml file (default \".\")")
	root.PersistentFlags().StringVarP(&opts.topoFile, "topology", "t", "", "explicit topology file (overrides --dir)")
	root.PersistentFlags().StringVar(&opts.kinds, "kinds", "", "TOML file overlaying the kind → connection-variable table")

	root.Flags().BoolVar(&list, "list", false, "print the full inventory document (default)")
	root.Flags().StringVar(&hostName, "host", "", "print a single host's variables")

	root.AddCommand(newValidateCmd(&opts))
	root.AddCommand(newGraphCmd(&opts))
	root.AddCommand(newServeCmd(&opts))

	return root.ExecuteContext(ctx)
}
