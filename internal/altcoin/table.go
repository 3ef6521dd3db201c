// Package altcoin synthesizes protocols for Bitcoin-derived altcoins from a
// reference table of version numbers and checks that table for consistency.
package altcoin

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klingon-exchange/coinkit/internal/chain"
)

//go:embed coins.yaml
var defaultTable []byte

// VerNum is a version number as written in the table. It marshals as hex.
type VerNum uint64

// MarshalYAML writes the number as 0x-prefixed hex, two digits per byte.
func (v VerNum) MarshalYAML() (interface{}, error) {
	width := 2
	if v > 0xff {
		width = 4
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("0x%0*x", width, uint64(v))}, nil
}

// Lead holds the recorded leading character of an address, or the low and
// high bound when the leading character depends on the payload. It has the
// same form as address.LeadingSymbols.
type Lead string

// UnmarshalYAML accepts a scalar ("D") or a sequence of characters ([9, A]).
func (l *Lead) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = Lead(value.Value)
		return nil
	case yaml.SequenceNode:
		var chars []string
		if err := value.Decode(&chars); err != nil {
			return err
		}
		*l = Lead(strings.Join(chars, ""))
		return nil
	}
	return fmt.Errorf("line %d: leading symbols must be a string or a list", value.Line)
}

// MarshalYAML writes a single character as a scalar and a range as a
// flow sequence.
func (l Lead) MarshalYAML() (interface{}, error) {
	if len(l) <= 1 {
		return string(l), nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range string(l) {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: string(c)})
	}
	return n, nil
}

// Version is a version number together with its recorded leading symbols.
type Version struct {
	Ver  VerNum `yaml:"ver"`
	Lead Lead   `yaml:"lead"`
}

// Entry is one row of the reference table.
type Entry struct {
	Name   string   `yaml:"name"`
	Symbol string   `yaml:"symbol"`
	WIF    VerNum   `yaml:"wif"`
	P2PKH  Version  `yaml:"p2pkh"`
	P2SH   *Version `yaml:"p2sh,omitempty"`
	Segwit bool     `yaml:"segwit,omitempty"`
	Trust  int      `yaml:"trust"`
}

// Table holds the mainnet and testnet rows of the reference table.
type Table struct {
	Mainnet []Entry `yaml:"mainnet"`
	Testnet []Entry `yaml:"testnet"`
}

// DefaultTable parses the table compiled into the binary.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTable)
}

// LoadTable reads and parses a table file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read altcoin table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a table and checks its structure: unknown fields,
// missing symbols and duplicate symbols within a network are rejected.
func ParseTable(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse altcoin table: %w", err)
	}

	for _, network := range []chain.Network{chain.Mainnet, chain.Testnet} {
		seen := make(map[string]struct{})
		for i, e := range t.Entries(network) {
			if e.Symbol == "" || e.Name == "" {
				return nil, fmt.Errorf("%s entry %d: missing name or symbol", network, i)
			}
			sym := strings.ToUpper(e.Symbol)
			if _, dup := seen[sym]; dup {
				return nil, fmt.Errorf("%s: duplicate coin symbol %q", network, e.Symbol)
			}
			seen[sym] = struct{}{}
		}
	}
	return &t, nil
}

// Marshal encodes the table as YAML.
func (t *Table) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to encode altcoin table: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Entries returns the rows for network. Regtest has no rows.
func (t *Table) Entries(network chain.Network) []Entry {
	switch network {
	case chain.Mainnet:
		return t.Mainnet
	case chain.Testnet:
		return t.Testnet
	}
	return nil
}

// Lookup finds the row for symbol on network, case-insensitively.
func (t *Table) Lookup(symbol string, network chain.Network) (Entry, bool) {
	for _, e := range t.Entries(network) {
		if strings.EqualFold(e.Symbol, symbol) {
			return e, true
		}
	}
	return Entry{}, false
}

// Supported returns the rows for network that are not disabled.
func (t *Table) Supported(network chain.Network) []Entry {
	var out []Entry
	for _, e := range t.Entries(network) {
		if e.Trust != chain.TrustDisabled {
			out = append(out, e)
		}
	}
	return out
}
