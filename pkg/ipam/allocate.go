package ipam

import (
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/topology"
)

// Loopback is a node's pair of loopback host addresses.
type Loopback struct {
	IPv4 net.IP
	IPv6 net.IP
}

// LinkSubnets is the addressing assigned to one link: a /31 and a /127, plus
// each endpoint's host address within them.
type LinkSubnets struct {
	Subnet4 *net.IPNet
	Subnet6 *net.IPNet

	addr4 map[string]net.IP
	addr6 map[string]net.IP
}

// Addr4 returns the given node's IPv4 address within the link's /31.
func (l LinkSubnets) Addr4(node string) net.IP { return l.addr4[node] }

// Addr6 returns the given node's IPv6 address within the link's /127.
func (l LinkSubnets) Addr6(node string) net.IP { return l.addr6[node] }

// Plan is the complete, immutable address assignment for one topology.
// Loopbacks are keyed by node name; link subnets are indexed in link
// declaration order, parallel to Topology.Links.
type Plan struct {
	loopbacks map[string]Loopback
	links     []LinkSubnets
}

// Loopback returns the loopback pair assigned to the named node.
func (p *Plan) Loopback(node string) (Loopback, bool) {
	lo, ok := p.loopbacks[node]
	return lo, ok
}

// Link returns the subnets assigned to the i-th declared link.
func (p *Plan) Link(i int) LinkSubnets { return p.links[i] }

// LinkCount returns the number of links in the plan.
func (p *Plan) LinkCount() int { return len(p.links) }

// Allocate assigns loopbacks to every node and point-to-point subnets to
// every link of the topology, from fresh pools.
//
// Allocation is all-or-nothing: capacity is checked against the topology
// size before any address is assigned, so a POOL_EXHAUSTED error never
// leaves a partial plan behind.
//
// Determinism: loopbacks follow the topology's sorted node order; subnets
// follow link declaration order; within a subnet, host ordinal 0 goes to the
// endpoint whose node name sorts first. Declaring the same nodes and links
// in any other order therefore yields the same plan.
func Allocate(topo *topology.Topology) (*Plan, error) {
	lo4 := NewLoopback4Pool()
	lo6 := NewLoopback6Pool()
	p2p4 := NewP2P4Pool()
	p2p6 := NewP2P6Pool()

	if n := topo.NodeCount(); n > lo4.Capacity() || n > lo6.Capacity() {
		return nil, errors.New(errors.ErrCodePoolExhausted,
			"%d nodes exceed loopback pool capacity of %d", n, min(lo4.Capacity(), lo6.Capacity()))
	}
	if n := topo.LinkCount(); n > p2p4.Capacity() || n > p2p6.Capacity() {
		return nil, errors.New(errors.ErrCodePoolExhausted,
			"%d links exceed point-to-point pool capacity of %d", n, min(p2p4.Capacity(), p2p6.Capacity()))
	}

	plan := &Plan{
		loopbacks: make(map[string]Loopback, topo.NodeCount()),
		links:     make([]LinkSubnets, 0, topo.LinkCount()),
	}

	for _, node := range topo.Nodes() {
		v4, err := lo4.Next()
		if err != nil {
			return nil, err
		}
		v6, err := lo6.Next()
		if err != nil {
			return nil, err
		}
		plan.loopbacks[node.Name] = Loopback{IPv4: v4, IPv6: v6}
	}

	for i, link := range topo.Links() {
		sub4, err := p2p4.Next()
		if err != nil {
			return nil, err
		}
		sub6, err := p2p6.Next()
		if err != nil {
			return nil, err
		}

		// Host ordinal 0 goes to the lexicographically first node name, so
		// the link yields the same addressing regardless of declaration
		// direction.
		first, second := link.A.Node, link.B.Node
		if second < first {
			first, second = second, first
		}

		ls := LinkSubnets{
			Subnet4: sub4,
			Subnet6: sub6,
			addr4:   make(map[string]net.IP, 2),
			addr6:   make(map[string]net.IP, 2),
		}
		for ord, node := range []string{first, second} {
			a4, err := cidr.Host(sub4, ord)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "link %d host %d", i, ord)
			}
			a6, err := cidr.Host(sub6, ord)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "link %d host %d", i, ord)
			}
			ls.addr4[node] = a4
			ls.addr6[node] = a6
		}
		plan.links = append(plan.links, ls)
	}

	return plan, nil
}
