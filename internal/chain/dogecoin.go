package chain

import "time"

func dogecoinProtocols() []*Protocol {
	mainnet := MustNew(Spec{
		Coin:       "DOGE",
		Name:       "Dogecoin",
		Network:    Mainnet,
		Family:     FamilyBitcoin,
		ChainNames: []string{"main"},

		AddrVersions: []AddrVersion{
			{Prefix: []byte{0x1e}, Format: FormatP2PKH}, // D...
			{Prefix: []byte{0x16}, Format: FormatP2SH},  // 9 or A
		},
		// No segwit
		AddrTypes: []AddrType{AddrLegacy, AddrCompressed},

		WIFVersions: []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0x9e}, Compressible: true},
		},

		TrustLevel: 2,

		Decimals:         8,
		MaxTxFee:         "100",
		SighashType:      "ALL",
		AvgBlockInterval: time.Minute,
		Genesis:          "1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691",

		// BIP44 coin type 3, legacy only
		CoinType: 3,
		Purpose:  44,
	})

	testnet := mainnet.mustDerive(func(s *Spec) {
		s.Name = "Dogecoin Testnet"
		s.Network = Testnet
		s.ChainNames = []string{"test"}
		s.AddrVersions = []AddrVersion{
			{Prefix: []byte{0x71}, Format: FormatP2PKH}, // n...
			{Prefix: []byte{0xc4}, Format: FormatP2SH},  // 2...
		}
		s.WIFVersions = []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0xf1}, Compressible: true},
		}
		s.Genesis = "bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e"
		s.CoinType = 1
	})

	return []*Protocol{mainnet, testnet}
}
