package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// TopologyFileSuffix is the filename suffix containerlab topology
// descriptions are discovered by.
const TopologyFileSuffix = ".clab.yml"

// clabFile mirrors the subset of the containerlab YAML schema the inventory
// engine consumes.
type clabFile struct {
	Name     string `yaml:"name"`
	Topology struct {
		Nodes map[string]struct {
			Kind string `yaml:"kind"`
		} `yaml:"nodes"`
		Links []struct {
			Endpoints []string `yaml:"endpoints"`
		} `yaml:"links"`
	} `yaml:"topology"`
}

// Discover locates the single *.clab.yml file in dir.
// Zero matches yield FILE_NOT_FOUND; more than one is INVALID_TOPOLOGY_FILE,
// since the choice would be ambiguous.
func Discover(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+TopologyFileSuffix))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "scan %s", dir)
	}
	switch len(matches) {
	case 0:
		return "", errors.New(errors.ErrCodeFileNotFound,
			"no %s file found in %s", TopologyFileSuffix, dir)
	case 1:
		return matches[0], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidTopologyFile,
			"expected one %s file in %s but found %d", TopologyFileSuffix, dir, len(matches))
	}
}

// Load reads and validates a containerlab topology file.
func Load(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidTopologyFile, err, "read %s", path)
	}
	return Parse(data)
}

// LoadDir discovers and loads the topology file in dir.
func LoadDir(dir string) (*Topology, error) {
	path, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Parse decodes a containerlab topology document and builds the validated
// model. Node declaration order in the YAML is irrelevant; link order is
// preserved.
func Parse(data []byte) (*Topology, error) {
	var f clabFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTopologyFile, err, "decode topology YAML")
	}
	if f.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidTopologyFile, "topology has no lab name")
	}
	if len(f.Topology.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTopologyFile, "topology declares no nodes")
	}

	nodes := make([]Node, 0, len(f.Topology.Nodes))
	for name, spec := range f.Topology.Nodes {
		nodes = append(nodes, Node{Name: name, Kind: spec.Kind})
	}

	links := make([]Link, 0, len(f.Topology.Links))
	for i, l := range f.Topology.Links {
		if len(l.Endpoints) != 2 {
			return nil, errors.New(errors.ErrCodeMalformedTopology,
				"link %d has %d endpoints, want 2", i, len(l.Endpoints))
		}
		a, err := parseEndpoint(l.Endpoints[0])
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		b, err := parseEndpoint(l.Endpoints[1])
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		links = append(links, Link{A: a, B: b})
	}

	return New(f.Name, nodes, links)
}

// parseEndpoint splits a containerlab "node:interface" reference.
// The interface part is optional.
func parseEndpoint(s string) (Endpoint, error) {
	node, intf, _ := strings.Cut(s, ":")
	if node == "" {
		return Endpoint{}, errors.New(errors.ErrCodeMalformedTopology, "endpoint %q has no node name", s)
	}
	return Endpoint{Node: node, Interface: intf}, nil
}
