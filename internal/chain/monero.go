package chain

import "time"

func moneroProtocols() []*Protocol {
	mainnet := MustNew(Spec{
		Coin:    "XMR",
		Name:    "Monero",
		Network: Mainnet,
		Family:  FamilyMonero,

		// Network bytes; the payload is spend key || view key, plus an
		// 8-byte payment ID for integrated addresses.
		AddrVersions: []AddrVersion{
			{Prefix: []byte{0x12}, Format: FormatMonero}, // 4...
			{Prefix: []byte{0x2a}, Format: FormatMoneroSub},
			{Prefix: []byte{0x13}, Format: FormatMoneroIntegrated},
		},
		AddrTypes: []AddrType{AddrMonero},

		// Spend keys are exchanged as hex.
		WIFVersions: []WIFVersion{{PubkeyType: PubkeyMonero}},
		Curve:       CurveEd25519,

		TrustLevel: 4,

		Decimals:         12,
		MaxTxFee:         "1",
		AvgBlockInterval: 2 * time.Minute,

		CoinType: 128,
		Purpose:  44,
	})

	// Stagenet stands in for testnet.
	testnet := mainnet.mustDerive(func(s *Spec) {
		s.Name = "Monero Stagenet"
		s.Network = Testnet
		s.AddrVersions = []AddrVersion{
			{Prefix: []byte{0x18}, Format: FormatMonero}, // 5...
			{Prefix: []byte{0x24}, Format: FormatMoneroSub},
			{Prefix: []byte{0x19}, Format: FormatMoneroIntegrated},
		}
	})

	return []*Protocol{mainnet, testnet}
}
