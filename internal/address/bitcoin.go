package address

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
)

// cashAddrMinLen is shorter than any CashAddr and longer than any legacy
// Base58Check address.
const cashAddrMinLen = 42

func decodeBitcoin(p *chain.Protocol, addr string) (*Decoded, error) {
	if p.SupportsSegwitAddrs() && strings.HasPrefix(strings.ToLower(addr), p.Bech32HRP()+"1") {
		return decodeSegwit(p, addr)
	}
	if p.CashAddrPrefix() != "" && (strings.Contains(addr, ":") || len(addr) >= cashAddrMinLen) {
		return decodeCashAddr(p, addr)
	}

	raw, err := codec.CheckDecode(addr)
	if err != nil {
		return nil, invalid(p, addr, err)
	}
	return matchPrefix(p, addr, raw)
}

// matchPrefix tries the protocol's version prefixes longest first. A prefix
// match with the wrong payload length falls through to shorter prefixes.
func matchPrefix(p *chain.Protocol, addr string, raw []byte) (*Decoded, error) {
	for _, v := range p.AddrVersionsLongestFirst() {
		if !bytes.HasPrefix(raw, v.Prefix) {
			continue
		}
		payload := raw[len(v.Prefix):]
		if len(payload) != p.AddrLen(v.Format) {
			continue
		}
		return &Decoded{Payload: payload, Prefix: v.Prefix, Format: v.Format}, nil
	}
	return nil, invalid(p, addr, nil)
}

func decodeSegwit(p *chain.Protocol, addr string) (*Decoded, error) {
	version, program, err := codec.SegwitDecode(p.Bech32HRP(), addr)
	if err != nil {
		return nil, invalid(p, addr, err)
	}
	if version != p.WitnessVersion() {
		return nil, invalid(p, addr, fmt.Errorf("witness version %d, want %d", version, p.WitnessVersion()))
	}

	for _, f := range []chain.AddrFormat{chain.FormatBech32, chain.FormatP2WSH} {
		if len(program) == p.AddrLen(f) {
			return &Decoded{Payload: program, Format: f}, nil
		}
	}
	return nil, invalid(p, addr, nil)
}

func decodeCashAddr(p *chain.Protocol, addr string) (*Decoded, error) {
	typ, hash, err := codec.CashAddrDecode(p.CashAddrPrefix(), addr)
	if err != nil {
		return nil, invalid(p, addr, err)
	}

	var f chain.AddrFormat
	switch typ {
	case codec.CashP2PKH:
		f = chain.FormatP2PKH
	case codec.CashP2SH:
		f = chain.FormatP2SH
	default:
		return nil, invalid(p, addr, fmt.Errorf("unsupported cashaddr type %d", typ))
	}
	if len(hash) != p.AddrLen(f) {
		return nil, invalid(p, addr, nil)
	}
	prefix, _ := p.Prefix(f)
	return &Decoded{Payload: hash, Prefix: prefix, Format: f}, nil
}

func encodeBitcoin(p *chain.Protocol, payload []byte, f chain.AddrFormat) (string, error) {
	if f.Segwit() {
		s, err := codec.SegwitEncode(p.Bech32HRP(), p.WitnessVersion(), payload)
		if err != nil {
			return "", chain.WrapError(chain.ErrInvalidAddress, fmt.Sprintf("%s bech32 encode", p), err)
		}
		return s, nil
	}

	prefix, _ := p.Prefix(f)
	return codec.CheckEncode(append(prefix, payload...)), nil
}

// EncodeCashAddr returns the CashAddr form of a p2pkh or p2sh payload.
func EncodeCashAddr(p *chain.Protocol, payload []byte, f chain.AddrFormat) (string, error) {
	if p.CashAddrPrefix() == "" {
		return "", chain.NewError(chain.ErrUnsupportedFormat, fmt.Sprintf("%s has no cashaddr form", p))
	}

	var typ byte
	switch f {
	case chain.FormatP2PKH:
		typ = codec.CashP2PKH
	case chain.FormatP2SH:
		typ = codec.CashP2SH
	default:
		return "", chain.NewError(chain.ErrUnsupportedFormat, fmt.Sprintf("no cashaddr type for %s", f))
	}
	if len(payload) != p.AddrLen(f) {
		str := fmt.Sprintf("%s payload is %d bytes, want %d", f, len(payload), p.AddrLen(f))
		return "", chain.NewError(chain.ErrInvalidAddress, str)
	}

	s, err := codec.CashAddrEncode(p.CashAddrPrefix(), typ, payload)
	if err != nil {
		return "", chain.WrapError(chain.ErrInvalidAddress, "cashaddr encode", err)
	}
	return s, nil
}

// RedeemScript returns the P2SH-wrapped witness program for a pubkey hash:
// the witness version opcode followed by a 20-byte push of the hash.
func RedeemScript(p *chain.Protocol, pubkeyHash []byte) ([]byte, error) {
	if !p.SupportsAddrType(chain.AddrSegwit) {
		return nil, chain.NewError(chain.ErrUnsupportedFormat, fmt.Sprintf("%s has no segwit addresses", p))
	}
	if len(pubkeyHash) != p.AddrLen(chain.FormatBech32) {
		str := fmt.Sprintf("pubkey hash is %d bytes, want %d", len(pubkeyHash), p.AddrLen(chain.FormatBech32))
		return nil, chain.NewError(chain.ErrInvalidAddress, str)
	}

	op := byte(txscript.OP_0)
	if v := p.WitnessVersion(); v > 0 {
		op = txscript.OP_1 - 1 + v
	}
	return txscript.NewScriptBuilder().AddOp(op).AddData(pubkeyHash).Script()
}

// SegwitP2SH returns the P2SH-wrapped segwit address of a pubkey hash.
func SegwitP2SH(p *chain.Protocol, pubkeyHash []byte) (string, error) {
	script, err := RedeemScript(p, pubkeyHash)
	if err != nil {
		return "", err
	}
	return Encode(p, btcutil.Hash160(script), chain.FormatP2SH)
}

// Bech32 returns the native segwit address of a pubkey hash. The hash is
// the witness program itself, not the redeem script.
func Bech32(p *chain.Protocol, pubkeyHash []byte) (string, error) {
	return Encode(p, pubkeyHash, chain.FormatBech32)
}
