package chain

import "time"

func solanaProtocols() []*Protocol {
	mainnet := MustNew(Spec{
		Coin:    "SOL",
		Name:    "Solana",
		Network: Mainnet,
		Family:  FamilySolana,

		// The address is the raw ed25519 public key.
		AddrVersions: []AddrVersion{{Format: FormatSolana}},
		AddrTypes:    []AddrType{AddrSolana},

		WIFVersions: []WIFVersion{{PubkeyType: PubkeyEd25519}},
		Curve:       CurveEd25519,

		TrustLevel: 1,

		Decimals:         9,
		MaxTxFee:         "0.01",
		AvgBlockInterval: 400 * time.Millisecond,

		// BIP44 coin type 501
		CoinType: 501,
		Purpose:  44,
	})

	devnet := mainnet.mustDerive(func(s *Spec) {
		s.Name = "Solana Devnet"
		s.Network = Testnet
	})

	return []*Protocol{mainnet, devnet}
}
