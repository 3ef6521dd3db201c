package chain

import "time"

var ethMainnet = MustNew(Spec{
	Coin:       "ETH",
	Name:       "Ethereum",
	Network:    Mainnet,
	Family:     FamilyEthereum,
	ChainNames: []string{"ethereum", "foundation"},
	ChainID:    1,

	// 20-byte account hash, hex encoded without version prefix
	AddrVersions: []AddrVersion{{Format: FormatP2PKH}},
	AddrTypes:    []AddrType{AddrEthereum},

	// Private keys are exchanged as hex.
	WIFVersions: []WIFVersion{{PubkeyType: PubkeyStd}},

	Caps:       []Capability{CapToken},
	TrustLevel: 4,

	Decimals:         18,
	MaxTxFee:         "0.005",
	AvgBlockInterval: 12 * time.Second,

	CoinType: 60,
	Purpose:  44,
})

type evmChain struct {
	coin      string
	native    string
	name      string
	chainID   uint64
	testName  string
	testnetID uint64
	trust     int
}

// EVM chains share Ethereum's encoding and differ only by chain ID.
var evmChains = []evmChain{
	{"BSC", "BNB", "BNB Smart Chain", 56, "BNB Smart Chain Testnet", 97, 3},
	{"POLYGON", "POL", "Polygon", 137, "Polygon Amoy", 80002, 3},
	{"ARBITRUM", "ETH", "Arbitrum One", 42161, "Arbitrum Sepolia", 421614, 3},
	{"OPTIMISM", "ETH", "Optimism", 10, "Optimism Sepolia", 11155420, 3},
	{"BASE", "ETH", "Base", 8453, "Base Sepolia", 84532, 3},
	{"AVAX", "AVAX", "Avalanche C-Chain", 43114, "Avalanche Fuji", 43113, 3},
}

func ethereumProtocols() []*Protocol {
	ethTestnet := ethMainnet.mustDerive(func(s *Spec) {
		s.Name = "Ethereum Sepolia"
		s.Network = Testnet
		s.ChainNames = []string{"sepolia"}
		s.ChainID = 11155111
	})
	ethRegtest := ethMainnet.mustDerive(func(s *Spec) {
		s.Name = "Ethereum Devnet"
		s.Network = Regtest
		s.ChainNames = []string{"developmentchain"}
		s.ChainID = 1337
	})

	etc := ethMainnet.mustDerive(func(s *Spec) {
		s.Coin = "ETC"
		s.Name = "Ethereum Classic"
		s.BaseCoin = "ETC"
		s.ForkOf = "ETH"
		s.ChainNames = []string{"classic", "ethereum_classic"}
		s.ChainID = 61
		s.AvgBlockInterval = 13 * time.Second
		s.Forks = []Fork{{Height: 1920000, Hash: "94365e3a8c0b35089c1d1195081fe7489b528a84b22199c916180db8b28ade7f", Coin: "ETH", Replayable: true}}
		s.CoinType = 61
	})
	etcTestnet := etc.mustDerive(func(s *Spec) {
		s.Name = "Ethereum Classic Mordor"
		s.Network = Testnet
		s.ChainNames = []string{"mordor"}
		s.ChainID = 63
		s.Forks = nil
	})

	out := []*Protocol{ethMainnet, ethTestnet, ethRegtest, etc, etcTestnet}
	for _, c := range evmChains {
		c := c
		mainnet := ethMainnet.mustDerive(func(s *Spec) {
			s.Coin = c.coin
			s.Name = c.name
			s.BaseCoin = c.native
			s.ForkOf = "ETH"
			s.ChainNames = nil
			s.ChainID = c.chainID
			s.TrustLevel = c.trust
		})
		testnet := mainnet.mustDerive(func(s *Spec) {
			s.Name = c.testName
			s.Network = Testnet
			s.ChainID = c.testnetID
		})
		out = append(out, mainnet, testnet)
	}
	return out
}
