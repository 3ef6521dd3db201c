package chain

import "time"

var (
	btcMainnet = MustNew(Spec{
		Coin:       "BTC",
		Name:       "Bitcoin",
		Network:    Mainnet,
		Family:     FamilyBitcoin,
		ChainNames: []string{"main"},

		AddrVersions: []AddrVersion{
			{Prefix: []byte{0x00}, Format: FormatP2PKH}, // 1...
			{Prefix: []byte{0x05}, Format: FormatP2SH},  // 3...
		},
		Bech32HRP: "bc",
		AddrTypes: []AddrType{AddrLegacy, AddrCompressed, AddrSegwit, AddrBech32},

		WIFVersions: []WIFVersion{
			{PubkeyType: PubkeyStd, Prefix: []byte{0x80}, Compressible: true},
		},

		Caps:       []Capability{CapRBF, CapSegwit},
		TrustLevel: 5,

		Decimals:         8,
		MaxTxFee:         "0.003",
		SighashType:      "ALL",
		AvgBlockInterval: 10 * time.Minute,
		HalvingInterval:  210000,
		Genesis:          "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f",
		Forks: []Fork{
			{Height: 478559, Hash: "00000000000000000019f112ec0a9982926f1258cdcc558dd7c3b7e5dc7fa148", Coin: "BCH"},
		},

		// BIP44 coin type 0, native segwit purpose
		CoinType: 0,
		Purpose:  84,
	})

	btcTestnet = btcMainnet.mustDerive(func(s *Spec) {
		s.Name = "Bitcoin Testnet"
		s.Network = Testnet
		s.ChainNames = []string{"test"}
		bitcoinTestnetVersions(s)
		s.Bech32HRP = "tb"
		s.Genesis = "000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"
		s.Forks = nil
		s.CoinType = 1
	})

	btcRegtest = btcTestnet.mustDerive(func(s *Spec) {
		s.Name = "Bitcoin Regtest"
		s.Network = Regtest
		s.ChainNames = []string{"regtest"}
		s.Bech32HRP = "bcrt"
		s.HalvingInterval = 150
		s.Genesis = "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206"
	})
)

// bitcoinTestnetVersions applies the version bytes shared by the testnets of
// most bitcoin-derived coins.
func bitcoinTestnetVersions(s *Spec) {
	s.AddrVersions = []AddrVersion{
		{Prefix: []byte{0x6f}, Format: FormatP2PKH}, // m or n
		{Prefix: []byte{0xc4}, Format: FormatP2SH},  // 2
	}
	s.WIFVersions = []WIFVersion{
		{PubkeyType: PubkeyStd, Prefix: []byte{0xef}, Compressible: true},
	}
}

// BitcoinBase returns the Bitcoin protocol on network. Synthesized altcoins
// inherit from it.
func BitcoinBase(network Network) *Protocol {
	switch network {
	case Testnet:
		return btcTestnet
	case Regtest:
		return btcRegtest
	}
	return btcMainnet
}

func bitcoinProtocols() []*Protocol {
	return []*Protocol{btcMainnet, btcTestnet, btcRegtest}
}
