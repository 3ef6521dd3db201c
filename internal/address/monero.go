package address

import (
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
)

const moneroPaymentIDLen = 8

func decodeMonero(p *chain.Protocol, addr string) (*Decoded, error) {
	raw, err := codec.MoneroCheckDecode(addr)
	if err != nil {
		return nil, invalid(p, addr, err)
	}

	d, err := matchPrefix(p, addr, raw)
	if err != nil {
		return nil, err
	}
	if d.Format == chain.FormatMoneroIntegrated {
		d.PaymentID = d.Payload[len(d.Payload)-moneroPaymentIDLen:]
	}
	return d, nil
}

func encodeMonero(p *chain.Protocol, payload []byte, f chain.AddrFormat) (string, error) {
	prefix, _ := p.Prefix(f)
	return codec.MoneroCheckEncode(append(prefix, payload...)), nil
}

// MoneroKeys splits a standard or subaddress payload into its public spend
// and view keys.
func MoneroKeys(d *Decoded) (spend, view []byte) {
	return d.Payload[:32], d.Payload[32:64]
}
