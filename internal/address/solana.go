package address

import (
	"fmt"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
)

func decodeSolana(p *chain.Protocol, addr string) (*Decoded, error) {
	raw, err := codec.DecodeBase58(addr)
	if err != nil {
		return nil, invalid(p, addr, err)
	}
	if want := p.AddrLen(chain.FormatSolana); len(raw) != want {
		return nil, invalid(p, addr, fmt.Errorf("decoded %d bytes, want %d", len(raw), want))
	}
	return &Decoded{Payload: raw, Format: chain.FormatSolana}, nil
}

func encodeSolana(payload []byte) string {
	return codec.EncodeBase58(payload)
}
