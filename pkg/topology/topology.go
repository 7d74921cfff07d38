// Package topology holds the in-memory model of a containerlab network lab:
// the set of nodes, the set of point-to-point links, and the stable iteration
// orders the rest of the pipeline depends on.
//
// Nodes are exposed sorted by name and links in declaration order. Every
// downstream stage (allocation, CLNS derivation, inventory assembly) iterates
// through these accessors, which is what makes repeated runs over the same
// description produce byte-identical addressing.
package topology

import (
	"sort"
	"strings"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// Node is a single lab device.
type Node struct {
	Name string // unique identifier, "<type>-<id>"
	Type string // grouping key, the substring before the first hyphen
	Kind string // optional containerlab platform kind (e.g. "ceos")
}

// Endpoint is one side of a link: a node plus the interface it terminates on.
// Interface may be empty, in which case the interface builder synthesizes a
// sequential name.
type Endpoint struct {
	Node      string
	Interface string
}

// Link is an unordered connection between two distinct nodes. The A/B order
// reflects the declaration in the topology file; address ordinals within the
// link's subnets are decided by node-name sort order, not by A/B.
type Link struct {
	A Endpoint
	B Endpoint
}

// Topology is the validated node and link set of one lab.
type Topology struct {
	name   string
	byName map[string]*Node
	sorted []*Node
	links  []Link
}

// New validates the given nodes and links and builds a Topology.
//
// Validation is eager and covers everything the allocator assumes later:
// node names are unique and yield a non-empty type, link endpoints resolve
// to declared nodes, and a link never connects a node to itself.
func New(name string, nodes []Node, links []Link) (*Topology, error) {
	t := &Topology{
		name:   name,
		byName: make(map[string]*Node, len(nodes)),
		sorted: make([]*Node, 0, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return nil, err
		}
		if _, ok := t.byName[n.Name]; ok {
			return nil, errors.New(errors.ErrCodeMalformedTopology, "duplicate node name %q", n.Name)
		}
		n.Type, _, _ = strings.Cut(n.Name, "-")
		t.byName[n.Name] = &n
		t.sorted = append(t.sorted, &n)
	}
	sort.Slice(t.sorted, func(i, j int) bool { return t.sorted[i].Name < t.sorted[j].Name })

	for i, l := range links {
		for _, ep := range []Endpoint{l.A, l.B} {
			if _, ok := t.byName[ep.Node]; !ok {
				return nil, errors.New(errors.ErrCodeUnknownNode,
					"link %d references unknown node %q", i, ep.Node)
			}
			if err := errors.ValidateInterfaceName(ep.Interface); err != nil {
				return nil, err
			}
		}
		if l.A.Node == l.B.Node {
			return nil, errors.New(errors.ErrCodeMalformedTopology,
				"link %d connects node %q to itself", i, l.A.Node)
		}
	}
	t.links = links

	return t, nil
}

// Name returns the lab name from the topology description.
func (t *Topology) Name() string { return t.name }

// Nodes returns all nodes sorted by name.
func (t *Topology) Nodes() []*Node { return t.sorted }

// Links returns all links in declaration order.
func (t *Topology) Links() []Link { return t.links }

// Node looks up a node by name.
func (t *Topology) Node(name string) (*Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int { return len(t.sorted) }

// LinkCount returns the number of links.
func (t *Topology) LinkCount() int { return len(t.links) }

// Peer returns the endpoint on the opposite side of the link from node.
func (l Link) Peer(node string) Endpoint {
	if l.A.Node == node {
		return l.B
	}
	return l.A
}
