package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/netlabtools/clabinv/pkg/clns"
	"github.com/netlabtools/clabinv/pkg/inventory"
	"github.com/netlabtools/clabinv/pkg/ipam"
	"github.com/netlabtools/clabinv/pkg/topology"
)

// Runner executes the inventory pipeline.
//
// The Runner is stateless apart from its logger and kind table - it stores
// no pipeline results and builds fresh address pools on every Execute, so a
// single Runner can serve many topologies without one run influencing the
// next.
type Runner struct {
	Logger *log.Logger
	Kinds  *inventory.KindTable
}

// NewRunner creates a runner with the given logger.
// If logger is nil, log.Default() is used. The kind table starts from the
// compiled-in defaults; Execute overlays Options.KindsFile on top.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Logger: logger,
		Kinds:  inventory.DefaultKindTable(),
	}
}

// Stats captures per-run counters and stage timings.
type Stats struct {
	NodeCount    int
	LinkCount    int
	GroupCount   int
	LoadTime     time.Duration
	AllocateTime time.Duration
	AssembleTime time.Duration
}

// Result is the output of one pipeline run.
type Result struct {
	Topology  *topology.Topology
	Plan      *ipam.Plan
	Inventory *inventory.Inventory
	Stats     Stats
}

// Execute runs the complete load → allocate → derive → assemble pipeline.
//
// All failures are fatal and eager: nothing is returned unless every stage
// succeeded, so a caller never sees a partially addressed inventory.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	topo, err := r.load(opts)
	if err != nil {
		return nil, err
	}
	result.Topology = topo
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = topo.NodeCount()
	result.Stats.LinkCount = topo.LinkCount()

	r.Logger.Info("loaded topology",
		"lab", topo.Name(),
		"nodes", topo.NodeCount(),
		"links", topo.LinkCount(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Allocate
	allocStart := time.Now()
	plan, err := ipam.Allocate(topo)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.Stats.AllocateTime = time.Since(allocStart)

	r.Logger.Info("allocated addresses",
		"loopbacks", topo.NodeCount(),
		"subnets", plan.LinkCount(),
		"duration", result.Stats.AllocateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stages 3+4: Derive and assemble
	asmStart := time.Now()
	clnsNets := make(map[string]string, topo.NodeCount())
	for _, n := range topo.Nodes() {
		lo, _ := plan.Loopback(n.Name)
		network, err := clns.DeriveNET(lo.IPv4)
		if err != nil {
			return nil, err
		}
		clnsNets[n.Name] = network
		r.Logger.Debug("derived CLNS NET", "node", n.Name, "net", network)
	}

	interfaces, err := inventory.BuildInterfaces(topo, plan)
	if err != nil {
		return nil, err
	}

	if opts.KindsFile != "" {
		if err := r.Kinds.MergeTOML(opts.KindsFile); err != nil {
			return nil, err
		}
		r.Logger.Debug("merged kind table", "file", opts.KindsFile)
	}

	inv, unknownKinds, err := inventory.Assemble(topo, plan, clnsNets, interfaces, r.Kinds)
	if err != nil {
		return nil, err
	}
	for _, kind := range unknownKinds {
		r.Logger.Warn("no connection variables for kind", "kind", kind)
	}
	result.Inventory = inv
	result.Stats.AssembleTime = time.Since(asmStart)
	result.Stats.GroupCount = len(inv.Groups())

	r.Logger.Info("assembled inventory",
		"groups", result.Stats.GroupCount,
		"hosts", topo.NodeCount(),
		"duration", result.Stats.AssembleTime)

	return result, nil
}

func (r *Runner) load(opts Options) (*topology.Topology, error) {
	if opts.TopologyFile != "" {
		return topology.Load(opts.TopologyFile)
	}
	return topology.LoadDir(opts.Dir)
}
