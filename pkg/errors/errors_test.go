package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNode, "link references %s", "leaf-9")

	if err.Code != ErrCodeUnknownNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownNode)
	}

	if err.Message != "link references leaf-9" {
		t.Errorf("Message = %v, want %v", err.Message, "link references leaf-9")
	}

	expected := "UNKNOWN_NODE: link references leaf-9"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidTopologyFile, cause, "parse lab.clab.yml")

	if err.Code != ErrCodeInvalidTopologyFile {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidTopologyFile)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodePoolExhausted, "test"),
			code:     ErrCodePoolExhausted,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodePoolExhausted, "test"),
			code:     ErrCodeEncoding,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodePoolExhausted,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeMalformedTopology, New(ErrCodeUnknownNode, "inner"), "outer"),
			code:     ErrCodeMalformedTopology,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeEncoding, "bad octet")); got != ErrCodeEncoding {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeEncoding)
	}

	if got := GetCode(errors.New("plain")); got != Code("") {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodePoolExhausted, "255 nodes exceed pool")); got != "255 nodes exceed pool" {
		t.Errorf("UserMessage() = %v", got)
	}

	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name    string
		node    string
		wantErr bool
	}{
		{"valid", "leaf-1", false},
		{"valid multi hyphen", "vr-vmx-2", false},
		{"empty", "", true},
		{"no hyphen", "spine1", true},
		{"empty type prefix", "-1", true},
		{"whitespace", "leaf 1", true},
		{"control character", "leaf\x001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeName(tt.node)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeName(%q) error = %v, wantErr %v", tt.node, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedTopology) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeMalformedTopology)
			}
		})
	}
}

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		intf    string
		wantErr bool
	}{
		{"valid", "eth1", false},
		{"empty allowed", "", false},
		{"colon", "eth:1", true},
		{"slash", "eth/1", true},
		{"whitespace", "eth 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterfaceName(tt.intf)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterfaceName(%q) error = %v, wantErr %v", tt.intf, err, tt.wantErr)
			}
		})
	}
}
