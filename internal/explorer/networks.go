package explorer

import (
	"fmt"
	"sort"
	"strings"
)

// networkEndpoints maps chain names to their etherscan-compatible API hosts.
var networkEndpoints = map[string]string{
	"ethereum": "https://api.etherscan.io",
	"sepolia":  "https://api-sepolia.etherscan.io",
	"bsc":      "https://api.bscscan.com",
	"polygon":  "https://api.polygonscan.com",
	"arbitrum": "https://api.arbiscan.io",
	"optimism": "https://api-optimistic.etherscan.io",
	"base":     "https://api.basescan.org",
}

// EndpointForChain resolves the explorer API base URL for a chain name.
func EndpointForChain(chain string) (string, error) {
	endpoint, ok := networkEndpoints[strings.ToLower(strings.TrimSpace(chain))]
	if !ok {
		return "", fmt.Errorf("unsupported chain %q (known: %s)", chain, strings.Join(KnownChains(), ", "))
	}
	return endpoint, nil
}

// KnownChains lists the supported chain names in stable order.
func KnownChains() []string {
	chains := make([]string, 0, len(networkEndpoints))
	for name := range networkEndpoints {
		chains = append(chains, name)
	}
	sort.Strings(chains)
	return chains
}
