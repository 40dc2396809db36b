// SPDX-License-Identifier: MPL-2.0

package xmldoc

import (
	"errors"
	"strings"
	"testing"
)

type doc struct {
	Value string `xml:"value"`
}

func TestExpectEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		trailing bool
	}{
		{"single root", "<doc><value>a</value></doc>", false},
		{"trailing whitespace", "<doc/>\n\n  \t", false},
		{"trailing comment", "<doc/>\n<!-- done -->\n", false},
		{"trailing processing instruction", "<doc/>\n<?pi data?>", false},
		{"second root", "<doc><value>a</value></doc>\n<doc><value>b</value></doc>", true},
		{"trailing text", "<doc/>junk", true},
		{"trailing directive", "<doc/><!DOCTYPE doc>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := NewDecoder(strings.NewReader(tt.input))
			var d doc
			if err := dec.Decode(&d); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			err := ExpectEnd(dec)
			if tt.trailing && !errors.Is(err, ErrTrailingContent) {
				t.Errorf("ExpectEnd() = %v, want ErrTrailingContent", err)
			}
			if !tt.trailing && err != nil {
				t.Errorf("ExpectEnd() = %v, want nil", err)
			}
		})
	}
}

func TestExpectEnd_SyntaxErrorAfterRoot(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader("<doc/><broken"))
	var d doc
	if err := dec.Decode(&d); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := ExpectEnd(dec); err == nil {
		t.Error("ExpectEnd() = nil, want syntax error")
	}
}

func TestNewDecoder_LegacyCharset(t *testing.T) {
	t.Parallel()

	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><doc><value>caf\xe9</value></doc>"
	var d doc
	if err := NewDecoder(strings.NewReader(input)).Decode(&d); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if d.Value != "café" {
		t.Errorf("Value = %q, want %q", d.Value, "café")
	}
}
