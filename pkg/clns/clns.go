// Package clns derives CLNS network entity titles (NETs) for IS-IS from a
// node's IPv4 loopback address.
//
// The encoding follows the common lab convention: a fixed 49.0001 area
// (AFI 49 = private, area 0001), a 12-digit system ID built by zero-padding
// each loopback octet to three decimal digits, and the 00 NSAP selector.
// Because every octet occupies a fixed-width field, two distinct loopbacks
// always produce two distinct NETs.
//
//	192.0.2.1 → 49.0001.1920.0000.2001.00
package clns

import (
	"fmt"
	"net"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// Area is the fixed IS-IS area prefix used for all derived NETs.
const Area = "49.0001"

// Selector is the fixed NSAP selector byte, marking the NET as the network
// entity itself.
const Selector = "00"

// DeriveNET builds the CLNS NET for the given IPv4 loopback address.
// It is a pure function of the address: the same loopback always yields the
// same NET. Returns an ENCODING_ERROR when ip is not an IPv4 address.
func DeriveNET(ip net.IP) (string, error) {
	v4 := ip.To4()
	if v4 == nil {
		return "", errors.New(errors.ErrCodeEncoding, "cannot derive CLNS NET from non-IPv4 address %v", ip)
	}

	// Zero-pad each octet to three digits and regroup the 12-digit string
	// into the conventional 4.4.4 system ID fields.
	digits := fmt.Sprintf("%03d%03d%03d%03d", v4[0], v4[1], v4[2], v4[3])
	return fmt.Sprintf("%s.%s.%s.%s.%s", Area, digits[0:4], digits[4:8], digits[8:12], Selector), nil
}
