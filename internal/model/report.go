package model

// TokenStandards flags which token interfaces a verified contract exposes.
// Detection is by function name only, so the flags are not mutually exclusive.
type TokenStandards struct {
	IsERC20   bool `json:"is_erc20"`
	IsERC721  bool `json:"is_erc721"`
	IsERC1155 bool `json:"is_erc1155"`
}

// ContractReport is the aggregate result of one audit invocation.
//
// Field presence follows the pipeline branch taken: Standards is set iff the
// contract is verified, ProbableType iff it is an unverified contract, and
// EthBalance/TransactionCount iff the address is not a contract at all.
type ContractReport struct {
	Address          string            `json:"address"`
	Chain            string            `json:"chain,omitempty"`
	IsContract       bool              `json:"is_contract"`
	IsVerified       bool              `json:"is_verified"`
	ContractName     string            `json:"contract_name,omitempty"`
	Creation         *CreationInfo     `json:"creation,omitempty"`
	Bytecode         string            `json:"bytecode,omitempty"`
	SourceCode       string            `json:"source_code,omitempty"`
	ABI              []ABIEntry        `json:"abi,omitempty"`
	Standards        *TokenStandards   `json:"standards,omitempty"`
	ProbableType     string            `json:"probable_type,omitempty"`
	SecurityFindings []SecurityFinding `json:"security_findings,omitempty"`
	EthBalance       string            `json:"eth_balance,omitempty"`
	TransactionCount *uint64           `json:"transaction_count,omitempty"`
	ErrorNote        string            `json:"error_note,omitempty"`
	GeneratedAt      string            `json:"generated_at"`
}
