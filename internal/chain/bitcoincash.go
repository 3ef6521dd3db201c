package chain

func bitcoinCashProtocols() []*Protocol {
	fork := func(network Network, name, prefix string) *Protocol {
		return BitcoinBase(network).mustDerive(func(s *Spec) {
			s.Coin = "BCH"
			s.Name = name
			s.BaseCoin = "BCH"
			s.ForkOf = "BTC"
			s.Bech32HRP = ""
			s.CashAddrPrefix = prefix
			s.AddrTypes = []AddrType{AddrLegacy, AddrCompressed}
			s.Caps = nil
			s.MaxTxFee = "0.1"
			s.SighashType = "ALL|FORKID"
			s.Forks = nil
			s.CoinType = 145
			if network != Mainnet {
				s.CoinType = 1
			}
			s.Purpose = 44
		})
	}

	return []*Protocol{
		fork(Mainnet, "Bitcoin Cash Node", "bitcoincash"),
		fork(Testnet, "Bitcoin Cash Node Testnet", "bchtest"),
		fork(Regtest, "Bitcoin Cash Node Regtest", "bchreg"),
	}
}
