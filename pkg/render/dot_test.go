package render

import (
	"strings"
	"testing"

	"github.com/netlabtools/clabinv/pkg/ipam"
	"github.com/netlabtools/clabinv/pkg/topology"
)

func fixture(t *testing.T) (*topology.Topology, *ipam.Plan) {
	t.Helper()
	topo, err := topology.New("lab",
		[]topology.Node{{Name: "leaf-1"}, {Name: "spine-1"}},
		[]topology.Link{
			{A: topology.Endpoint{Node: "leaf-1", Interface: "eth1"}, B: topology.Endpoint{Node: "spine-1", Interface: "eth1"}},
		})
	if err != nil {
		t.Fatalf("topology.New() error = %v", err)
	}
	plan, err := ipam.Allocate(topo)
	if err != nil {
		t.Fatalf("ipam.Allocate() error = %v", err)
	}
	return topo, plan
}

func TestToDOT(t *testing.T) {
	topo, plan := fixture(t)

	dot := ToDOT(topo, plan, Options{})

	if !strings.HasPrefix(dot, "graph lab {") {
		t.Errorf("DOT does not open an undirected graph:\n%s", dot)
	}
	for _, want := range []string{`"leaf-1"`, `"spine-1"`, `"leaf-1" -- "spine-1";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "192.0.2.1") {
		t.Error("DOT contains addresses without Addresses option")
	}
}

func TestToDOTWithAddresses(t *testing.T) {
	topo, plan := fixture(t)

	dot := ToDOT(topo, plan, Options{Addresses: true})

	for _, want := range []string{"lo4: 192.0.2.1", "lo6: 2001:db8:8000::1", "198.51.100.0/31"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}
