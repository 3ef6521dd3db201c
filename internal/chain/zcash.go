package chain

import "time"

// Zcash mixes 2-byte transparent prefixes with a 2-byte shielded prefix and a
// 3-byte viewing key prefix, and has a second WIF version for shielded
// spending keys.
func zcashProtocols() []*Protocol {
	mainnet := MustNew(Spec{
		Coin:       "ZEC",
		Name:       "Zcash",
		Network:    Mainnet,
		Family:     FamilyBitcoin,
		ChainNames: []string{"main"},

		AddrVersions: []AddrVersion{
			{Prefix: []byte{0x1c, 0xb8}, Format: FormatP2PKH},    // t1...
			{Prefix: []byte{0x1c, 0xbd}, Format: FormatP2SH},     // t3...
			{Prefix: []byte{0x16, 0x9a}, Format: FormatShielded}, // zc...
			{Prefix: []byte{0xa8, 0xab, 0xd3}, Format: FormatViewKey},
		},
		AddrTypes: []AddrType{AddrLegacy, AddrCompressed, AddrZcashZ},

		WIFVersions: []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0x80}, Compressible: true},
			{PubkeyType: PubkeyShielded, Prefix: []byte{0xab, 0x36}},
		},

		TrustLevel: 2,

		Decimals:         8,
		MaxTxFee:         "0.1",
		SighashType:      "ALL",
		AvgBlockInterval: 75 * time.Second,
		Genesis:          "00040fe8ec8471911baa1db1266ea15dd06b4a8a5c453883c000b031973dce08",

		CoinType: 133,
		Purpose:  44,
	})

	testnet := mainnet.mustDerive(func(s *Spec) {
		s.Name = "Zcash Testnet"
		s.Network = Testnet
		s.ChainNames = []string{"test"}
		s.AddrVersions = []AddrVersion{
			{Prefix: []byte{0x1d, 0x25}, Format: FormatP2PKH},
			{Prefix: []byte{0x1c, 0xba}, Format: FormatP2SH},
			{Prefix: []byte{0x16, 0xb6}, Format: FormatShielded},
			{Prefix: []byte{0xa8, 0xac, 0x0c}, Format: FormatViewKey},
		}
		s.WIFVersions = []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0xef}, Compressible: true},
			{PubkeyType: PubkeyShielded, Prefix: []byte{0xac, 0x08}},
		}
		s.Genesis = "05a60a92d99d85997cce3b87616c089f6124d7342af37106edc76126334a2c38"
		s.CoinType = 1
	})

	return []*Protocol{mainnet, testnet}
}
