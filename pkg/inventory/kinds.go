package inventory

import (
	"github.com/BurntSushi/toml"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// KindVars is the set of Ansible connection variables attached to a group
// whose members run a given platform kind.
type KindVars map[string]string

// KindTable maps containerlab node kinds to connection variables.
// Lookups are explicit: unrecognized kinds fall back to an empty variable
// set rather than failing the run, since a lab may contain hosts Ansible
// never connects to.
type KindTable struct {
	kinds map[string]KindVars
}

// DefaultKindTable returns the compiled-in kind table.
func DefaultKindTable() *KindTable {
	return &KindTable{kinds: map[string]KindVars{
		"ceos": {
			"ansible_connection":    "ansible.netcommon.network_cli",
			"ansible_network_os":    "arista.eos.eos",
			"ansible_user":          "admin",
			"ansible_password":      "admin",
			"ansible_become":        "yes",
			"ansible_become_method": "enable",
		},
		"srl": {
			"ansible_connection": "ansible.netcommon.httpapi",
			"ansible_network_os": "nokia.srlinux.srlinux",
			"ansible_user":       "admin",
			"ansible_password":   "NokiaSrl1!",
		},
		"vr-vmx": {
			"ansible_connection": "ansible.netcommon.network_cli",
			"ansible_network_os": "junipernetworks.junos.junos",
			"ansible_user":       "admin",
			"ansible_password":   "admin@123",
		},
	}}
}

// Lookup returns the connection variables for kind. The second return value
// reports whether the kind is known; callers decide whether an unknown kind
// is worth a warning.
func (t *KindTable) Lookup(kind string) (KindVars, bool) {
	if vars, ok := t.kinds[kind]; ok {
		return vars, true
	}
	return KindVars{}, false
}

// MergeTOML overlays kind definitions from a TOML file onto the table.
// The file maps kind names to variable tables:
//
//	[ceos]
//	ansible_user = "netops"
//
//	[linux]
//	ansible_connection = "ssh"
//
// A kind present in both the file and the table is replaced wholesale, so a
// lab can both extend and override the defaults.
func (t *KindTable) MergeTOML(path string) error {
	var loaded map[string]KindVars
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return errors.Wrap(errors.ErrCodeUnknownKind, err, "load kind table %s", path)
	}
	for kind, vars := range loaded {
		t.kinds[kind] = vars
	}
	return nil
}
