// Package inventory builds the Ansible dynamic-inventory document from a
// topology, its address plan, and the derived per-node variables.
//
// The document follows the dynamic inventory contract: one group per node
// type with member hosts and per-kind connection variables, an "all" group
// listing the children, and a "_meta.hostvars" section carrying every
// node's loopbacks, CLNS NET, and interface addressing.
package inventory

import (
	"encoding/json"
	"sort"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/ipam"
	"github.com/netlabtools/clabinv/pkg/topology"
)

// ansibleHostPrefix is prepended (with the lab name) to node names to form
// the container hostname containerlab registers.
const ansibleHostPrefix = "clab"

// Reserved top-level keys that a node type may not collide with.
var reservedGroups = map[string]bool{"all": true, "_meta": true}

// NodeVars is the variable set exported for one host.
type NodeVars struct {
	LoopbackIPv4 string                   `json:"loopback_ipv4"`
	LoopbackIPv6 string                   `json:"loopback_ipv6"`
	ClnsNet      string                   `json:"clns_net"`
	Interfaces   map[string]InterfaceVars `json:"interfaces"`
}

// HostVars is the _meta.hostvars entry for one host.
type HostVars struct {
	AnsibleHost string   `json:"ansible_host"`
	Vars        NodeVars `json:"vars"`
}

// Group is one node-type group.
type Group struct {
	Hosts []string `json:"hosts"`
	Vars  KindVars `json:"vars"`
}

// Inventory is the assembled dynamic-inventory document.
type Inventory struct {
	groups   map[string]*Group
	hostvars map[string]HostVars
}

// Assemble groups nodes by type and attaches each node's variable set.
//
// clnsNets maps node name to derived CLNS NET; interfaces is the output of
// BuildInterfaces. Group connection variables come from the kind table via
// the first member (in sorted node order) of each type. unknownKinds
// collects kinds absent from the table so the caller can log them.
func Assemble(topo *topology.Topology, plan *ipam.Plan, clnsNets map[string]string,
	interfaces map[string]map[string]InterfaceVars, kinds *KindTable) (*Inventory, []string, error) {

	inv := &Inventory{
		groups:   make(map[string]*Group),
		hostvars: make(map[string]HostVars, topo.NodeCount()),
	}
	var unknown []string
	seenUnknown := make(map[string]bool)

	for _, n := range topo.Nodes() {
		if reservedGroups[n.Type] {
			return nil, nil, errors.New(errors.ErrCodeMalformedTopology,
				"node type %q collides with a reserved inventory group", n.Type)
		}

		g, ok := inv.groups[n.Type]
		if !ok {
			vars, known := kinds.Lookup(n.Kind)
			if !known && n.Kind != "" && !seenUnknown[n.Kind] {
				unknown = append(unknown, n.Kind)
				seenUnknown[n.Kind] = true
			}
			g = &Group{Vars: vars}
			inv.groups[n.Type] = g
		}
		g.Hosts = append(g.Hosts, n.Name)

		lo, ok := plan.Loopback(n.Name)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInternal, "no loopback allocated for %q", n.Name)
		}
		network, ok := clnsNets[n.Name]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInternal, "no CLNS NET derived for %q", n.Name)
		}

		inv.hostvars[n.Name] = HostVars{
			AnsibleHost: ansibleHostPrefix + "-" + topo.Name() + "-" + n.Name,
			Vars: NodeVars{
				LoopbackIPv4: lo.IPv4.String(),
				LoopbackIPv6: lo.IPv6.String(),
				ClnsNet:      network,
				Interfaces:   interfaces[n.Name],
			},
		}
	}

	return inv, unknown, nil
}

// Groups returns the group names sorted alphabetically.
func (inv *Inventory) Groups() []string {
	names := make([]string, 0, len(inv.groups))
	for name := range inv.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the named group.
func (inv *Inventory) Group(name string) (*Group, bool) {
	g, ok := inv.groups[name]
	return g, ok
}

// Host returns the hostvars entry for the named node.
func (inv *Inventory) Host(name string) (HostVars, bool) {
	hv, ok := inv.hostvars[name]
	return hv, ok
}

// Hosts returns all host names sorted alphabetically.
func (inv *Inventory) Hosts() []string {
	names := make([]string, 0, len(inv.hostvars))
	for name := range inv.hostvars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON renders the Ansible dynamic-inventory document. Group keys
// sit at the top level next to "all" and "_meta"; encoding/json sorts map
// keys, so output is deterministic.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(inv.groups)+2)
	doc["all"] = map[string]any{"children": inv.Groups()}
	doc["_meta"] = map[string]any{"hostvars": inv.hostvars}
	for name, g := range inv.groups {
		doc[name] = g
	}
	return json.Marshal(doc)
}

// Encode renders the indented JSON document handed to the orchestrator.
func (inv *Inventory) Encode() ([]byte, error) {
	return json.MarshalIndent(inv, "", "    ")
}
