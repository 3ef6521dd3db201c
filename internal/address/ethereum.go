package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
)

// decodeEthereum accepts 40 hex digits with or without 0x. Mixed-case input
// must carry a valid EIP-55 checksum; all-lower and all-upper input is
// accepted as is.
func decodeEthereum(p *chain.Protocol, addr string) (*Decoded, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(body) != 2*common.AddressLength || !common.IsHexAddress(body) {
		return nil, invalid(p, addr, nil)
	}

	a := common.HexToAddress(body)
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if a.Hex()[2:] != body {
			return nil, invalid(p, addr, codec.Error{
				Err:         codec.ErrChecksum,
				Description: "EIP-55 checksum mismatch",
			})
		}
	}
	return &Decoded{Payload: a.Bytes(), Format: chain.FormatP2PKH}, nil
}

// encodeEthereum returns the 0x-prefixed EIP-55 form.
func encodeEthereum(payload []byte) string {
	return common.BytesToAddress(payload).Hex()
}

// Checksummed returns the EIP-55 form of a hex address without 0x prefix.
func Checksummed(addr string) (string, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(body) != 2*common.AddressLength || !common.IsHexAddress(body) {
		return "", chain.NewError(chain.ErrInvalidAddress, "not a 20-byte hex address")
	}
	return common.HexToAddress(body).Hex()[2:], nil
}
