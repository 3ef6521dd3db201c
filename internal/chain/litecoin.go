package chain

import "time"

func litecoinProtocols() []*Protocol {
	mainnet := MustNew(Spec{
		Coin:       "LTC",
		Name:       "Litecoin",
		Network:    Mainnet,
		Family:     FamilyBitcoin,
		ChainNames: []string{"main"},

		AddrVersions: []AddrVersion{
			{Prefix: []byte{0x30}, Format: FormatP2PKH}, // L...
			{Prefix: []byte{0x32}, Format: FormatP2SH},  // M...
		},
		Bech32HRP: "ltc",
		AddrTypes: []AddrType{AddrLegacy, AddrCompressed, AddrSegwit, AddrBech32},

		WIFVersions: []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0xb0}, Compressible: true},
		},

		Caps:       []Capability{CapRBF, CapSegwit},
		TrustLevel: 5,

		Decimals:         8,
		MaxTxFee:         "0.3",
		SighashType:      "ALL",
		AvgBlockInterval: 150 * time.Second,
		HalvingInterval:  840000,
		Genesis:          "12a765e31ffd4059bada1e25190f6e98c99d9714d334efa41a195a7e7e04bfe2",

		CoinType: 2,
		Purpose:  84,
	})

	testnet := mainnet.mustDerive(func(s *Spec) {
		s.Name = "Litecoin Testnet"
		s.Network = Testnet
		s.ChainNames = []string{"test"}
		bitcoinTestnetVersions(s)
		s.AddrVersions[1].Prefix = []byte{0x3a} // Q...
		s.Bech32HRP = "tltc"
		s.Genesis = "4966625a4b2851d9fdee139e56211a0d88575f59ed816ff5e6a63deb4e3e29a0"
		s.CoinType = 1
	})

	regtest := testnet.mustDerive(func(s *Spec) {
		s.Name = "Litecoin Regtest"
		s.Network = Regtest
		s.ChainNames = []string{"regtest"}
		s.Bech32HRP = "rltc"
		s.HalvingInterval = 150
		s.Genesis = "530827f38f93b43ed12af0b3ad25a288dc02ed74d6d7857862df51fc56c416f9"
	})

	return []*Protocol{mainnet, testnet, regtest}
}
