package ipam

import (
	"net"
	"testing"

	"github.com/netlabtools/clabinv/pkg/errors"
)

func TestLoopback4Pool(t *testing.T) {
	p := NewLoopback4Pool()

	if p.Capacity() != 254 {
		t.Fatalf("Capacity() = %d, want 254", p.Capacity())
	}

	first, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !first.Equal(net.ParseIP("192.0.2.1")) {
		t.Errorf("first address = %v, want 192.0.2.1", first)
	}

	var last net.IP
	for i := 1; i < 254; i++ {
		last, err = p.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i+1, err)
		}
	}
	if !last.Equal(net.ParseIP("192.0.2.254")) {
		t.Errorf("address 254 = %v, want 192.0.2.254", last)
	}

	if _, err := p.Next(); !errors.Is(err, errors.ErrCodePoolExhausted) {
		t.Errorf("Next() after exhaustion error = %v, want POOL_EXHAUSTED", err)
	}
}

func TestLoopback6Pool(t *testing.T) {
	p := NewLoopback6Pool()

	first, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !first.Equal(net.ParseIP("2001:db8:8000::1")) {
		t.Errorf("first address = %v, want 2001:db8:8000::1", first)
	}

	second, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !second.Equal(net.ParseIP("2001:db8:8000::2")) {
		t.Errorf("second address = %v, want 2001:db8:8000::2", second)
	}
}

func TestP2P4Pool(t *testing.T) {
	p := NewP2P4Pool()

	if p.Capacity() != 256 {
		t.Fatalf("Capacity() = %d, want 256", p.Capacity())
	}

	first, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.String() != "198.51.100.0/31" {
		t.Errorf("first subnet = %v, want 198.51.100.0/31", first)
	}

	second, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if second.String() != "198.51.100.2/31" {
		t.Errorf("second subnet = %v, want 198.51.100.2/31", second)
	}

	// Drain the first /24 block; subnet 129 must come from the second block.
	var sub *net.IPNet
	for i := 2; i <= 128; i++ {
		sub, err = p.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i+1, err)
		}
	}
	if sub.String() != "203.0.113.0/31" {
		t.Errorf("subnet 129 = %v, want 203.0.113.0/31", sub)
	}

	for i := 129; i < 256; i++ {
		if _, err := p.Next(); err != nil {
			t.Fatalf("Next() #%d error = %v", i+1, err)
		}
	}
	if _, err := p.Next(); !errors.Is(err, errors.ErrCodePoolExhausted) {
		t.Errorf("Next() after exhaustion error = %v, want POOL_EXHAUSTED", err)
	}
}

func TestP2P6Pool(t *testing.T) {
	p := NewP2P6Pool()

	first, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.String() != "2001:db8::/127" {
		t.Errorf("first subnet = %v, want 2001:db8::/127", first)
	}

	second, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if second.String() != "2001:db8::2/127" {
		t.Errorf("second subnet = %v, want 2001:db8::2/127", second)
	}
}

func TestPoolsDoNotRepeat(t *testing.T) {
	p := NewP2P4Pool()
	seen := make(map[string]bool)
	for i := 0; i < p.Capacity(); i++ {
		sub, err := p.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i+1, err)
		}
		if seen[sub.String()] {
			t.Fatalf("subnet %v handed out twice", sub)
		}
		seen[sub.String()] = true
	}
}
