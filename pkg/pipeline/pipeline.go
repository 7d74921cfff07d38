// Package pipeline provides the core inventory-generation pipeline.
//
// This package implements the complete load → allocate → derive → assemble
// pipeline that can be used by the CLI and the HTTP surface. Centralizing it
// keeps both entry points byte-identical in behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: discover and parse the containerlab topology description
//  2. Allocate: assign loopbacks and point-to-point subnets from fresh pools
//  3. Derive: compute each node's CLNS NET from its IPv4 loopback
//  4. Assemble: build interface variables and the grouped inventory document
//
// Every Execute call constructs fresh address pools, so repeated or
// concurrent invocations over different topologies cannot interfere.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Dir: "."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := result.Inventory.Encode()
package pipeline

import (
	"github.com/netlabtools/clabinv/pkg/errors"
)

// DefaultDir is the directory searched for a topology description when no
// explicit file is given.
const DefaultDir = "."

// Options selects the topology description and kind-table overrides for one
// pipeline run.
type Options struct {
	// Dir is searched for a single *.clab.yml file. Ignored when
	// TopologyFile is set.
	Dir string

	// TopologyFile is an explicit topology description path.
	TopologyFile string

	// KindsFile optionally points at a TOML file overlaying the built-in
	// kind → connection-variable table.
	KindsFile string
}

// ValidateAndSetDefaults fills in defaults and rejects inconsistent options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.TopologyFile != "" && o.Dir != DefaultDir {
		return errors.New(errors.ErrCodeInvalidTopologyFile,
			"cannot combine an explicit topology file with a search directory")
	}
	return nil
}
