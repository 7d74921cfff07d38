package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/pipeline"
)

// runList executes the pipeline and prints the full inventory document.
func runList(ctx context.Context, opts rootOpts, w io.Writer) error {
	result, err := runPipeline(ctx, opts)
	if err != nil {
		return err
	}

	data, err := result.Inventory.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode inventory")
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// runHost executes the pipeline and prints one host's variable set, per the
// dynamic-inventory --host contract.
func runHost(ctx context.Context, opts rootOpts, w io.Writer, name string) error {
	result, err := runPipeline(ctx, opts)
	if err != nil {
		return err
	}

	hv, ok := result.Inventory.Host(name)
	if !ok {
		return errors.New(errors.ErrCodeHostNotFound, "host %q is not in the topology", name)
	}

	data, err := json.MarshalIndent(hv, "", "    ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode host %s", name)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// runPipeline builds a runner on the context logger and executes it.
func runPipeline(ctx context.Context, opts rootOpts) (*pipeline.Result, error) {
	runner := pipeline.NewRunner(loggerFromContext(ctx))
	return runner.Execute(ctx, opts.pipelineOptions())
}
