package inventory

import (
	"fmt"
	"net"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/ipam"
	"github.com/netlabtools/clabinv/pkg/topology"
)

// InterfaceVars is the per-interface variable set exported for one endpoint
// of a link: the local addresses inside the link's subnets plus the peer's
// name and addresses.
type InterfaceVars struct {
	IPv4         string `json:"ipv4"`          // local address with prefix length, e.g. "198.51.100.0/31"
	IPv6         string `json:"ipv6"`          // local address with prefix length, e.g. "2001:db8::/127"
	Neighbor     string `json:"neighbor"`      // peer node name
	IPv4Neighbor string `json:"ipv4_neighbor"` // peer address, no prefix length
	IPv6Neighbor string `json:"ipv6_neighbor"` // peer address, no prefix length
}

// BuildInterfaces computes the interface variable map for every node.
//
// For each link both endpoints receive a record keyed by the declared
// interface name; endpoints declared without one get a synthesized
// sequential "ethN" in link-declaration order. Every node ends up with
// exactly as many records as it has links; a duplicate interface name on a
// node is a MALFORMED_TOPOLOGY error.
func BuildInterfaces(topo *topology.Topology, plan *ipam.Plan) (map[string]map[string]InterfaceVars, error) {
	out := make(map[string]map[string]InterfaceVars, topo.NodeCount())
	for _, n := range topo.Nodes() {
		out[n.Name] = make(map[string]InterfaceVars)
	}

	attached := make(map[string]int, topo.NodeCount())

	for i, link := range topo.Links() {
		nets := plan.Link(i)
		for _, ep := range []topology.Endpoint{link.A, link.B} {
			peer := link.Peer(ep.Node)

			name := ep.Interface
			if name == "" {
				name = fmt.Sprintf("eth%d", attached[ep.Node]+1)
			}
			if _, dup := out[ep.Node][name]; dup {
				return nil, errors.New(errors.ErrCodeMalformedTopology,
					"node %q declares interface %q more than once", ep.Node, name)
			}

			out[ep.Node][name] = InterfaceVars{
				IPv4:         withPrefix(nets.Addr4(ep.Node), nets.Subnet4),
				IPv6:         withPrefix(nets.Addr6(ep.Node), nets.Subnet6),
				Neighbor:     peer.Node,
				IPv4Neighbor: nets.Addr4(peer.Node).String(),
				IPv6Neighbor: nets.Addr6(peer.Node).String(),
			}
			attached[ep.Node]++
		}
	}

	return out, nil
}

// withPrefix formats a host address with its subnet's prefix length.
func withPrefix(ip net.IP, subnet *net.IPNet) string {
	ones, _ := subnet.Mask.Size()
	return fmt.Sprintf("%s/%d", ip, ones)
}
