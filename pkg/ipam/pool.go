// Package ipam implements the deterministic address allocation engine.
//
// All addressing is carved from statically reserved documentation ranges
// (RFC 5737 / RFC 3849):
//
//   - node loopbacks: 192.0.2.0/24 as /32s and 2001:db8:8000::/33 as /128s
//   - point-to-point links: 198.51.100.0/24 then 203.0.113.0/24 as /31s,
//     and 2001:db8::/33 as /127s
//
// Pools are cursor-based: the cursor only advances within a run and a pool
// must never outlive a single allocation run. Constructing fresh pools per
// run is what keeps repeated invocations deterministic; Allocate does this
// internally.
package ipam

import (
	"math"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	"github.com/netlabtools/clabinv/pkg/errors"
)

// Reserved ranges. These are fixed constants, not configuration.
const (
	loopback4Range = "192.0.2.0/24"
	loopback6Range = "2001:db8:8000::/33"
	p2p4RangeA     = "198.51.100.0/24"
	p2p4RangeB     = "203.0.113.0/24"
	p2p6Range      = "2001:db8::/33"
)

// mustParseCIDR parses a compile-time constant range.
func mustParseCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic("ipam: bad reserved range " + s)
	}
	return n
}

// LoopbackPool hands out consecutive host addresses from a reserved base
// network, starting at host ordinal 1. Host ordinal 0 (the base address) is
// never assigned.
type LoopbackPool struct {
	name     string
	base     *net.IPNet
	capacity int
	cursor   int
}

// NewLoopback4Pool returns a fresh IPv4 loopback pool over 192.0.2.0/24.
// Capacity is 254 usable host addresses (.1 through .254).
func NewLoopback4Pool() *LoopbackPool {
	return &LoopbackPool{name: "loopback4", base: mustParseCIDR(loopback4Range), capacity: 254}
}

// NewLoopback6Pool returns a fresh IPv6 loopback pool over 2001:db8:8000::/33.
func NewLoopback6Pool() *LoopbackPool {
	return &LoopbackPool{name: "loopback6", base: mustParseCIDR(loopback6Range), capacity: clampCapacity(mustParseCIDR(loopback6Range), 128)}
}

// Capacity returns the number of addresses the pool can hand out in total.
func (p *LoopbackPool) Capacity() int { return p.capacity }

// Next returns the next unused host address. The cursor never rewinds.
func (p *LoopbackPool) Next() (net.IP, error) {
	if p.cursor >= p.capacity {
		return nil, errors.New(errors.ErrCodePoolExhausted,
			"%s pool %s exhausted after %d addresses", p.name, p.base, p.capacity)
	}
	p.cursor++
	ip, err := cidr.Host(p.base, p.cursor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s host %d", p.base, p.cursor)
	}
	return ip, nil
}

// SubnetPool hands out consecutive fixed-size subnets carved from one or
// more reserved base blocks, consuming each block fully before moving to
// the next.
type SubnetPool struct {
	name      string
	blocks    []*net.IPNet
	newPrefix int
	perBlock  []int
	capacity  int
	cursor    int
}

// NewP2P4Pool returns a fresh pool of /31 point-to-point subnets carved from
// 198.51.100.0/24 followed by 203.0.113.0/24 (128 subnets each).
func NewP2P4Pool() *SubnetPool {
	return newSubnetPool("p2p4", 31, mustParseCIDR(p2p4RangeA), mustParseCIDR(p2p4RangeB))
}

// NewP2P6Pool returns a fresh pool of /127 point-to-point subnets carved
// from 2001:db8::/33.
func NewP2P6Pool() *SubnetPool {
	return newSubnetPool("p2p6", 127, mustParseCIDR(p2p6Range))
}

func newSubnetPool(name string, newPrefix int, blocks ...*net.IPNet) *SubnetPool {
	p := &SubnetPool{name: name, blocks: blocks, newPrefix: newPrefix}
	for _, b := range blocks {
		n := clampCapacity(b, newPrefix)
		p.perBlock = append(p.perBlock, n)
		if p.capacity > math.MaxInt-n {
			p.capacity = math.MaxInt
		} else {
			p.capacity += n
		}
	}
	return p
}

// Capacity returns the total number of subnets the pool can hand out.
func (p *SubnetPool) Capacity() int { return p.capacity }

// Next returns the next unused subnet. The cursor never rewinds, so a subnet
// is never handed out twice within a run.
func (p *SubnetPool) Next() (*net.IPNet, error) {
	if p.cursor >= p.capacity {
		return nil, errors.New(errors.ErrCodePoolExhausted,
			"%s pool exhausted after %d subnets", p.name, p.capacity)
	}

	num := p.cursor
	p.cursor++
	for i, b := range p.blocks {
		if num < p.perBlock[i] {
			sub, err := cidr.Subnet(b, p.newPrefix-prefixLen(b), num)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s subnet %d", b, num)
			}
			return sub, nil
		}
		num -= p.perBlock[i]
	}
	// Unreachable while cursor < capacity.
	return nil, errors.New(errors.ErrCodeInternal, "%s pool cursor out of range", p.name)
}

func prefixLen(n *net.IPNet) int {
	ones, _ := n.Mask.Size()
	return ones
}

// clampCapacity returns how many newPrefix-sized subnets fit in base,
// clamped so the count stays representable as an int.
func clampCapacity(base *net.IPNet, newPrefix int) int {
	diff := newPrefix - prefixLen(base)
	if diff >= 31 {
		return math.MaxInt32
	}
	return 1 << diff
}
