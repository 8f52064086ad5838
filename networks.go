package safeclient

// TxService identifies a transaction service deployment: its base URL and
// the chain id it serves.
type TxService struct {
	URL     string
	ChainID uint64
}

// Known transaction service deployments.
var (
	Ethereum    = TxService{URL: "https://safe-transaction-mainnet.safe.global/api", ChainID: 1}
	GnosisChain = TxService{URL: "https://safe-transaction-gnosis-chain.safe.global/api", ChainID: 100}
	Arbitrum    = TxService{URL: "https://safe-transaction-arbitrum.safe.global/api", ChainID: 42161}
	Avalanche   = TxService{URL: "https://safe-transaction-avalanche.safe.global/api", ChainID: 43114}
	Aurora      = TxService{URL: "https://safe-transaction-aurora.safe.global/api", ChainID: 1313161554}
	BSC         = TxService{URL: "https://safe-transaction-bsc.safe.global/api", ChainID: 56}
	Optimism    = TxService{URL: "https://safe-transaction-optimism.safe.global/api", ChainID: 10}
	Polygon     = TxService{URL: "https://safe-transaction-polygon.safe.global/api", ChainID: 137}
	Goerli      = TxService{URL: "https://safe-transaction-goerli.safe.global/api", ChainID: 5}
	EWC         = TxService{URL: "https://safe-transaction-ewc.safe.global/api", ChainID: 246}
	Volta       = TxService{URL: "https://safe-transaction-volta.safe.global/api", ChainID: 73799}
)

// Services lists every known deployment, in lookup order.
var Services = []TxService{
	Ethereum, GnosisChain, Arbitrum, Avalanche, Aurora, BSC, Optimism, Polygon, Goerli, EWC, Volta,
}

// ServiceByChainID looks up the known deployment for a chain id.
func ServiceByChainID(chainID uint64) (TxService, error) {
	for _, service := range Services {
		if service.ChainID == chainID {
			return service, nil
		}
	}

	return TxService{}, &UnknownServiceError{ChainID: chainID}
}
