package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/netlabtools/clabinv/pkg/errors"
)

const sampleClab = `name: evpnlab
topology:
  nodes:
    leaf-1:
      kind: ceos
    leaf-2:
      kind: ceos
    spine-1:
      kind: ceos
  links:
    - endpoints: ["leaf-1:eth1", "spine-1:eth1"]
    - endpoints: ["leaf-2:eth1", "spine-1:eth2"]
`

func writeTopology(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lab.clab.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestExecute(t *testing.T) {
	dir := writeTopology(t, sampleClab)

	result, err := quietRunner().Execute(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.LinkCount != 2 {
		t.Errorf("stats = %d nodes / %d links, want 3/2", result.Stats.NodeCount, result.Stats.LinkCount)
	}
	if result.Stats.GroupCount != 2 {
		t.Errorf("GroupCount = %d, want 2", result.Stats.GroupCount)
	}

	hv, ok := result.Inventory.Host("leaf-1")
	if !ok {
		t.Fatal("Host(leaf-1) missing")
	}
	if hv.Vars.LoopbackIPv4 != "192.0.2.1" {
		t.Errorf("leaf-1 loopback = %q, want 192.0.2.1", hv.Vars.LoopbackIPv4)
	}
	if hv.Vars.ClnsNet != "49.0001.1920.0000.2001.00" {
		t.Errorf("leaf-1 clns_net = %q", hv.Vars.ClnsNet)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	dir := writeTopology(t, sampleClab)

	encode := func() []byte {
		result, err := quietRunner().Execute(context.Background(), Options{Dir: dir})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		data, err := result.Inventory.Encode()
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		return data
	}

	if a, b := encode(), encode(); !bytes.Equal(a, b) {
		t.Error("two runs over the same topology produced different documents")
	}
}

func TestExecuteExplicitFile(t *testing.T) {
	dir := writeTopology(t, sampleClab)

	result, err := quietRunner().Execute(context.Background(),
		Options{TopologyFile: filepath.Join(dir, "lab.clab.yml")})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Topology.Name() != "evpnlab" {
		t.Errorf("lab = %q, want evpnlab", result.Topology.Name())
	}
}

func TestExecuteKindsOverride(t *testing.T) {
	dir := writeTopology(t, sampleClab)
	kindsPath := filepath.Join(dir, "kinds.toml")
	if err := os.WriteFile(kindsPath, []byte("[ceos]\nansible_user = \"netops\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := quietRunner().Execute(context.Background(), Options{Dir: dir, KindsFile: kindsPath})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	leaf, ok := result.Inventory.Group("leaf")
	if !ok {
		t.Fatal("Group(leaf) missing")
	}
	if leaf.Vars["ansible_user"] != "netops" {
		t.Errorf("leaf ansible_user = %q, want netops", leaf.Vars["ansible_user"])
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code errors.Code
	}{
		{
			name: "unknown link endpoint",
			yaml: "name: lab\ntopology:\n  nodes:\n    leaf-1: {}\n  links:\n    - endpoints: [\"leaf-1:eth1\", \"ghost-1:eth1\"]\n",
			code: errors.ErrCodeUnknownNode,
		},
		{
			name: "untyped node name",
			yaml: "name: lab\ntopology:\n  nodes:\n    leaf1: {}\n",
			code: errors.ErrCodeMalformedTopology,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTopology(t, tt.yaml)
			_, err := quietRunner().Execute(context.Background(), Options{Dir: dir})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %v", err, tt.code)
			}
		})
	}

	t.Run("empty directory", func(t *testing.T) {
		_, err := quietRunner().Execute(context.Background(), Options{Dir: t.TempDir()})
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestExecuteCanceledContext(t *testing.T) {
	dir := writeTopology(t, sampleClab)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := quietRunner().Execute(ctx, Options{Dir: dir}); err == nil {
		t.Error("Execute() with canceled context succeeded, want error")
	}
}

func TestOptionsValidate(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if o.Dir != DefaultDir {
		t.Errorf("Dir = %q, want %q", o.Dir, DefaultDir)
	}

	bad := Options{Dir: "/tmp/lab", TopologyFile: "x.clab.yml"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidTopologyFile) {
		t.Errorf("ValidateAndSetDefaults() error = %v, want INVALID_TOPOLOGY_FILE", err)
	}
}
