package chain

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

// MaxPrefixLen bounds address and WIF version prefixes.
const MaxPrefixLen = 4

// DefaultPrivKeyLen is the secret length used when a Spec leaves it unset.
const DefaultPrivKeyLen = 32

// Trust level bounds. TrustDisabled marks a coin that must never be used for
// key or address generation.
const (
	TrustDisabled = -1
	TrustMax      = 5
)

// AddrVersion maps a version prefix to the address format it introduces.
// Families without version prefixes (ethereum, solana) use a nil Prefix.
type AddrVersion struct {
	Prefix []byte
	Format AddrFormat
}

// WIFVersion maps a pubkey type to the version prefix of its private keys.
// A nil Prefix selects plain hex encoding of the secret.
type WIFVersion struct {
	PubkeyType   PubkeyType
	Prefix       []byte
	Compressible bool
}

// Spec is the plain data record a Protocol is built from.
type Spec struct {
	// Identity
	Coin       string
	Name       string
	Network    Network
	Family     Family
	BaseCoin   string
	ForkOf     string
	ChainNames []string
	ChainID    uint64

	// Address encoding
	AddrVersions   []AddrVersion
	AddrLens       map[AddrFormat]int
	Bech32HRP      string
	WitnessVersion byte
	CashAddrPrefix string
	AddrTypes      []AddrType

	// Key encoding
	WIFVersions []WIFVersion
	Curve       Curve
	PrivKeyLen  int

	Caps       []Capability
	TrustLevel int

	// Chain constants used by collaborators outside the codecs
	Decimals         uint8
	MaxTxFee         string
	SighashType      string
	AvgBlockInterval time.Duration
	HalvingInterval  uint32
	Genesis          string
	Forks            []Fork

	// BIP44 derivation
	CoinType uint32
	Purpose  uint32
}

// clone returns a deep copy of s.
func (s Spec) clone() Spec {
	out := s
	out.ChainNames = append([]string(nil), s.ChainNames...)
	out.AddrVersions = make([]AddrVersion, len(s.AddrVersions))
	for i, v := range s.AddrVersions {
		out.AddrVersions[i] = AddrVersion{Prefix: bytes.Clone(v.Prefix), Format: v.Format}
	}
	if s.AddrLens != nil {
		out.AddrLens = make(map[AddrFormat]int, len(s.AddrLens))
		for k, v := range s.AddrLens {
			out.AddrLens[k] = v
		}
	}
	out.AddrTypes = append([]AddrType(nil), s.AddrTypes...)
	out.WIFVersions = make([]WIFVersion, len(s.WIFVersions))
	for i, v := range s.WIFVersions {
		v.Prefix = bytes.Clone(v.Prefix)
		out.WIFVersions[i] = v
	}
	out.Caps = append([]Capability(nil), s.Caps...)
	out.Forks = append([]Fork(nil), s.Forks...)
	return out
}

// Protocol is the immutable description of one coin/network pair.
type Protocol struct {
	spec Spec

	// address versions and WIF versions ordered longest prefix first
	addrByLen []AddrVersion
	wifByLen  []WIFVersion
	caps      map[Capability]struct{}
	maxTxFee  uint64
}

// New validates spec and builds a Protocol from a private copy of it.
func New(spec Spec) (*Protocol, error) {
	s := spec.clone()
	s.Coin = strings.ToUpper(s.Coin)
	if s.BaseCoin == "" {
		s.BaseCoin = s.Coin
	}
	if s.PrivKeyLen == 0 {
		s.PrivKeyLen = DefaultPrivKeyLen
	}
	if s.Curve == "" {
		s.Curve = CurveSecp256k1
		if s.Family == FamilyMonero || s.Family == FamilySolana {
			s.Curve = CurveEd25519
		}
	}
	if s.Purpose == 0 {
		s.Purpose = 44
	}

	p := &Protocol{spec: s, caps: make(map[Capability]struct{}, len(s.Caps))}
	if err := p.validate(); err != nil {
		return nil, err
	}

	for _, c := range s.Caps {
		p.caps[c] = struct{}{}
	}
	p.addrByLen = append([]AddrVersion(nil), s.AddrVersions...)
	sort.SliceStable(p.addrByLen, func(i, j int) bool {
		return len(p.addrByLen[i].Prefix) > len(p.addrByLen[j].Prefix)
	})
	p.wifByLen = append([]WIFVersion(nil), s.WIFVersions...)
	sort.SliceStable(p.wifByLen, func(i, j int) bool {
		return len(p.wifByLen[i].Prefix) > len(p.wifByLen[j].Prefix)
	})

	if s.MaxTxFee != "" {
		fee, err := helpers.ParseAmount(s.MaxTxFee, s.Decimals)
		if err != nil {
			return nil, p.invalid("max tx fee %q: %v", s.MaxTxFee, err)
		}
		p.maxTxFee = fee
	}
	return p, nil
}

// MustNew is like New but panics on an invalid spec. It is meant for the
// built-in literals in this package.
func MustNew(spec Spec) *Protocol {
	p, err := New(spec)
	if err != nil {
		panic(err)
	}
	return p
}

// Derive returns a new Protocol built from a copy of p's spec after fn has
// applied its overrides. p itself is left untouched.
func (p *Protocol) Derive(fn func(s *Spec)) (*Protocol, error) {
	s := p.spec.clone()
	fn(&s)
	return New(s)
}

func (p *Protocol) mustDerive(fn func(s *Spec)) *Protocol {
	d, err := p.Derive(fn)
	if err != nil {
		panic(err)
	}
	return d
}

func (p *Protocol) invalid(format string, args ...interface{}) error {
	desc := fmt.Sprintf("%s %s: ", p.spec.Coin, p.spec.Network) + fmt.Sprintf(format, args...)
	return NewError(ErrInvalidProtocol, desc)
}

func (p *Protocol) validate() error {
	s := &p.spec
	if s.Coin == "" {
		return NewError(ErrInvalidProtocol, "protocol has no coin symbol")
	}
	if s.Name == "" {
		return p.invalid("missing name")
	}
	if _, err := ParseNetwork(string(s.Network)); err != nil {
		return p.invalid("%v", err)
	}
	if !s.Family.valid() {
		return p.invalid("unknown family %q", s.Family)
	}
	if s.TrustLevel < TrustDisabled || s.TrustLevel > TrustMax {
		return p.invalid("trust level %d outside [%d, %d]", s.TrustLevel, TrustDisabled, TrustMax)
	}
	if s.WitnessVersion > 16 {
		return p.invalid("witness version %d exceeds 16", s.WitnessVersion)
	}
	switch s.Curve {
	case CurveSecp256k1, CurveEd25519:
		if s.PrivKeyLen != 32 {
			return p.invalid("%s secrets are 32 bytes, not %d", s.Curve, s.PrivKeyLen)
		}
	default:
		return p.invalid("unknown curve %q", s.Curve)
	}
	if s.CashAddrPrefix != "" && s.Family != FamilyBitcoin {
		return p.invalid("cashaddr prefix on %s family", s.Family)
	}
	for f, n := range s.AddrLens {
		if n <= 0 {
			return p.invalid("format %s has payload length %d", f, n)
		}
	}

	if err := p.validateAddrVersions(); err != nil {
		return err
	}
	if err := p.validateWIFVersions(); err != nil {
		return err
	}
	return p.validateAddrTypes()
}

func (p *Protocol) validateAddrVersions() error {
	s := &p.spec
	bare := s.Family == FamilyEthereum || s.Family == FamilySolana
	formats := make(map[AddrFormat]struct{}, len(s.AddrVersions))

	for i, v := range s.AddrVersions {
		if v.Format.Segwit() {
			return p.invalid("segwit format %s cannot carry a version prefix", v.Format)
		}
		if _, dup := formats[v.Format]; dup {
			return p.invalid("format %s registered twice", v.Format)
		}
		formats[v.Format] = struct{}{}
		if p.AddrLen(v.Format) <= 0 {
			return p.invalid("format %s has no payload length", v.Format)
		}

		switch {
		case bare && len(v.Prefix) != 0:
			return p.invalid("%s family addresses take no version prefix", s.Family)
		case !bare && (len(v.Prefix) == 0 || len(v.Prefix) > MaxPrefixLen):
			return p.invalid("format %s prefix %x must be 1-%d bytes", v.Format, v.Prefix, MaxPrefixLen)
		}

		for _, w := range s.AddrVersions[:i] {
			if bytes.Equal(v.Prefix, w.Prefix) {
				return p.invalid("prefix %x used by both %s and %s", v.Prefix, w.Format, v.Format)
			}
			if ambiguousAddr(v, w, p.AddrLen(v.Format), p.AddrLen(w.Format)) {
				return p.invalid("prefixes %x (%s) and %x (%s) are ambiguous", w.Prefix, w.Format, v.Prefix, v.Format)
			}
		}
	}
	if bare && len(s.AddrVersions) != 1 {
		return p.invalid("%s family needs exactly one address format", s.Family)
	}
	return nil
}

// ambiguousAddr reports whether one prefix starts the other and both decode
// to the same total length, in which case longest-first matching would route
// every short-prefix address to the long-prefix format.
func ambiguousAddr(a, b AddrVersion, lenA, lenB int) bool {
	if !bytes.HasPrefix(a.Prefix, b.Prefix) && !bytes.HasPrefix(b.Prefix, a.Prefix) {
		return false
	}
	return len(a.Prefix)+lenA == len(b.Prefix)+lenB
}

func (p *Protocol) validateWIFVersions() error {
	s := &p.spec
	if len(s.WIFVersions) == 0 {
		return p.invalid("no WIF versions")
	}
	seen := make(map[PubkeyType]struct{}, len(s.WIFVersions))
	hexKeys := 0
	for i, v := range s.WIFVersions {
		if _, dup := seen[v.PubkeyType]; dup {
			return p.invalid("pubkey type %s registered twice", v.PubkeyType)
		}
		seen[v.PubkeyType] = struct{}{}

		if len(v.Prefix) == 0 {
			hexKeys++
			if v.Compressible {
				return p.invalid("hex-encoded %s keys cannot be compressed", v.PubkeyType)
			}
			continue
		}
		if len(v.Prefix) > MaxPrefixLen {
			return p.invalid("WIF prefix %x longer than %d bytes", v.Prefix, MaxPrefixLen)
		}
		for _, w := range s.WIFVersions[:i] {
			if len(w.Prefix) == 0 {
				continue
			}
			if bytes.Equal(v.Prefix, w.Prefix) || p.ambiguousWIF(v, w) {
				return p.invalid("WIF prefixes %x (%s) and %x (%s) are ambiguous",
					w.Prefix, w.PubkeyType, v.Prefix, v.PubkeyType)
			}
		}
	}
	if hexKeys > 0 && hexKeys != len(s.WIFVersions) {
		return p.invalid("cannot mix hex and prefixed WIF versions")
	}
	return nil
}

// ambiguousWIF is ambiguousAddr for WIF prefixes, where each side may also
// carry a one-byte compression suffix.
func (p *Protocol) ambiguousWIF(a, b WIFVersion) bool {
	if !bytes.HasPrefix(a.Prefix, b.Prefix) && !bytes.HasPrefix(b.Prefix, a.Prefix) {
		return false
	}
	lensA := []int{len(a.Prefix) + p.spec.PrivKeyLen}
	if a.Compressible {
		lensA = append(lensA, lensA[0]+1)
	}
	lensB := []int{len(b.Prefix) + p.spec.PrivKeyLen}
	if b.Compressible {
		lensB = append(lensB, lensB[0]+1)
	}
	for _, x := range lensA {
		for _, y := range lensB {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (p *Protocol) validateAddrTypes() error {
	for _, t := range p.spec.AddrTypes {
		if _, ok := addrTypes[t]; !ok {
			return p.invalid("unknown address type %q", t)
		}
		if _, ok := p.WIFVersion(t.PubkeyType()); !ok {
			return p.invalid("address type %s needs pubkey type %s", t, t.PubkeyType())
		}
		if t == AddrBech32 {
			if p.spec.Bech32HRP == "" {
				return p.invalid("bech32 address type without a human-readable prefix")
			}
			continue
		}
		if _, ok := p.formatVersion(t.Format()); !ok {
			return p.invalid("address type %s needs format %s", t, t.Format())
		}
	}
	return nil
}

func (p *Protocol) formatVersion(f AddrFormat) (AddrVersion, bool) {
	for _, v := range p.spec.AddrVersions {
		if v.Format == f {
			return v, true
		}
	}
	return AddrVersion{}, false
}

// Spec returns a copy of the record p was built from.
func (p *Protocol) Spec() Spec { return p.spec.clone() }

// Coin returns the upper-case coin symbol.
func (p *Protocol) Coin() string { return p.spec.Coin }

// Name returns the display name.
func (p *Protocol) Name() string { return p.spec.Name }

// Network returns the network kind.
func (p *Protocol) Network() Network { return p.spec.Network }

// Family returns the codec family.
func (p *Protocol) Family() Family { return p.spec.Family }

// BaseCoin returns the native coin for forks, tokens and EVM chains.
func (p *Protocol) BaseCoin() string { return p.spec.BaseCoin }

// ForkOf returns the coin this protocol forked from, or "".
func (p *Protocol) ForkOf() string { return p.spec.ForkOf }

// ChainNames returns the chain identifiers reported by the coin's daemon.
func (p *Protocol) ChainNames() []string { return append([]string(nil), p.spec.ChainNames...) }

// ChainID returns the EVM chain ID, or zero.
func (p *Protocol) ChainID() uint64 { return p.spec.ChainID }

// AddrVersions returns the address versions in declaration order.
func (p *Protocol) AddrVersions() []AddrVersion { return p.Spec().AddrVersions }

// AddrVersionsLongestFirst returns the address versions ordered for
// decoding: longer prefixes before shorter ones, otherwise declaration order.
func (p *Protocol) AddrVersionsLongestFirst() []AddrVersion {
	out := make([]AddrVersion, len(p.addrByLen))
	for i, v := range p.addrByLen {
		out[i] = AddrVersion{Prefix: bytes.Clone(v.Prefix), Format: v.Format}
	}
	return out
}

// Prefix returns the version prefix of format f.
func (p *Protocol) Prefix(f AddrFormat) ([]byte, bool) {
	v, ok := p.formatVersion(f)
	return bytes.Clone(v.Prefix), ok
}

// SupportsFormat reports whether addresses of format f can be encoded.
func (p *Protocol) SupportsFormat(f AddrFormat) bool {
	if f.Segwit() {
		return p.SupportsSegwitAddrs()
	}
	_, ok := p.formatVersion(f)
	return ok
}

// SupportsSegwitAddrs reports whether bech32 addresses are accepted.
func (p *Protocol) SupportsSegwitAddrs() bool {
	return p.spec.Bech32HRP != "" && p.SupportsAddrType(AddrBech32)
}

// AddrLen returns the expected payload length of format f.
func (p *Protocol) AddrLen(f AddrFormat) int {
	if n, ok := p.spec.AddrLens[f]; ok {
		return n
	}
	return defaultAddrLen[f]
}

// WIFVersions returns the WIF versions in declaration order.
func (p *Protocol) WIFVersions() []WIFVersion { return p.Spec().WIFVersions }

// WIFVersionsLongestFirst returns the WIF versions ordered for decoding.
func (p *Protocol) WIFVersionsLongestFirst() []WIFVersion {
	out := make([]WIFVersion, len(p.wifByLen))
	for i, v := range p.wifByLen {
		v.Prefix = bytes.Clone(v.Prefix)
		out[i] = v
	}
	return out
}

// WIFVersion returns the WIF version of pubkey type t.
func (p *Protocol) WIFVersion(t PubkeyType) (WIFVersion, bool) {
	for _, v := range p.spec.WIFVersions {
		if v.PubkeyType == t {
			v.Prefix = bytes.Clone(v.Prefix)
			return v, true
		}
	}
	return WIFVersion{}, false
}

// HexKeys reports whether private keys are exchanged as plain hex instead of
// a version-prefixed Base58Check string.
func (p *Protocol) HexKeys() bool {
	return len(p.spec.WIFVersions) > 0 && len(p.spec.WIFVersions[0].Prefix) == 0
}

// Bech32HRP returns the bech32 human-readable prefix, or "".
func (p *Protocol) Bech32HRP() string { return p.spec.Bech32HRP }

// WitnessVersion returns the witness version of segwit addresses.
func (p *Protocol) WitnessVersion() byte { return p.spec.WitnessVersion }

// CashAddrPrefix returns the CashAddr prefix, or "".
func (p *Protocol) CashAddrPrefix() string { return p.spec.CashAddrPrefix }

// AddrTypes returns the address types usable for key generation.
func (p *Protocol) AddrTypes() []AddrType { return append([]AddrType(nil), p.spec.AddrTypes...) }

// SupportsAddrType reports whether t is one of p's address types.
func (p *Protocol) SupportsAddrType(t AddrType) bool {
	for _, v := range p.spec.AddrTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Capability reports whether the flag c is set.
func (p *Protocol) Capability(c Capability) bool {
	_, ok := p.caps[c]
	return ok
}

// Caps returns the capability flags in declaration order.
func (p *Protocol) Caps() []Capability { return append([]Capability(nil), p.spec.Caps...) }

// Curve returns the curve secrets belong to.
func (p *Protocol) Curve() Curve { return p.spec.Curve }

// PrivKeyLen returns the raw secret length in bytes.
func (p *Protocol) PrivKeyLen() int { return p.spec.PrivKeyLen }

// TrustLevel returns the trust level in [-1, 5].
func (p *Protocol) TrustLevel() int { return p.spec.TrustLevel }

// Disabled reports whether p must not be used for generation.
func (p *Protocol) Disabled() bool { return p.spec.TrustLevel == TrustDisabled }

// Decimals returns the number of decimal places of the coin.
func (p *Protocol) Decimals() uint8 { return p.spec.Decimals }

// MaxTxFee returns the fee ceiling in the coin's smallest unit.
func (p *Protocol) MaxTxFee() uint64 { return p.maxTxFee }

// SighashType returns the default signature hash type.
func (p *Protocol) SighashType() string { return p.spec.SighashType }

// AvgBlockInterval returns the target block interval.
func (p *Protocol) AvgBlockInterval() time.Duration { return p.spec.AvgBlockInterval }

// HalvingInterval returns the subsidy halving interval in blocks.
func (p *Protocol) HalvingInterval() uint32 { return p.spec.HalvingInterval }

// Genesis returns the genesis block hash.
func (p *Protocol) Genesis() string { return p.spec.Genesis }

// Forks returns the recorded chain splits.
func (p *Protocol) Forks() []Fork { return append([]Fork(nil), p.spec.Forks...) }

// CoinType returns the BIP44 coin type.
func (p *Protocol) CoinType() uint32 { return p.spec.CoinType }

// DerivationPath returns the BIP44/49/84 derivation path for this coin.
// Format: m/purpose'/coin'/account'/change/index
func (p *Protocol) DerivationPath(account, change, index uint32) []uint32 {
	const hardened = 0x80000000
	return []uint32{
		p.spec.Purpose + hardened,
		p.spec.CoinType + hardened,
		account + hardened,
		change,
		index,
	}
}

// DerivationPathString returns the derivation path as a string.
func (p *Protocol) DerivationPathString(account, change, index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", p.spec.Purpose, p.spec.CoinType, account, change, index)
}

// String returns e.g. "BTC mainnet".
func (p *Protocol) String() string {
	return p.spec.Coin + " " + string(p.spec.Network)
}
