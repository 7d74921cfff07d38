// Package pkg provides the core libraries for clabinv inventory generation.
//
// # Overview
//
// clabinv turns a containerlab topology description into a fully addressed
// Ansible dynamic inventory. The pkg directory is organized into six areas:
//
//  1. [topology] - Topology model and *.clab.yml discovery/parsing
//  2. [ipam] - Deterministic loopback and point-to-point address allocation
//  3. [clns] - CLNS NET derivation from IPv4 loopbacks
//  4. [inventory] - Interface variables, kind table, and document assembly
//  5. [pipeline] - Orchestration (load → allocate → derive → assemble)
//  6. [render] - Graphviz DOT/SVG diagrams of the addressed topology
//
// # Architecture
//
// The typical data flow through clabinv:
//
//	*.clab.yml file
//	         ↓
//	    [topology] package (parse + validate nodes and links)
//	         ↓
//	    [ipam] package (loopbacks, /31 and /127 link subnets)
//	         ↓
//	    [clns] + [inventory] packages (NETs, interface vars, groups)
//	         ↓
//	    Ansible inventory JSON / DOT / SVG output
//
// # Quick Start
//
// Load a topology and produce the inventory document:
//
//	import (
//	    "context"
//	    "github.com/charmbracelet/log"
//	    "github.com/netlabtools/clabinv/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(log.Default())
//	result, err := runner.Execute(context.Background(), pipeline.Options{Dir: "."})
//	if err != nil {
//	    return err
//	}
//	data, err := result.Inventory.Encode()
//
// Every run allocates from fresh pools, so the same topology always yields
// byte-identical output.
package pkg
