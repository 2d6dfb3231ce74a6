package model

// ABIParam is a single typed parameter of a function or event.
type ABIParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// ABIEntry is one entry of a contract ABI: a function, event,
// constructor, fallback, or receive declaration.
type ABIEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []ABIParam `json:"inputs,omitempty"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// VerificationInfo is the explorer-side verification record for a contract.
type VerificationInfo struct {
	IsVerified      bool       `json:"is_verified"`
	ContractName    string     `json:"contract_name,omitempty"`
	CompilerVersion string     `json:"compiler_version,omitempty"`
	SourceCode      string     `json:"source_code,omitempty"`
	ABI             []ABIEntry `json:"abi,omitempty"`
}

// FunctionNames returns the set of function names declared in the ABI.
func (v VerificationInfo) FunctionNames() map[string]struct{} {
	names := make(map[string]struct{}, len(v.ABI))
	for _, entry := range v.ABI {
		if entry.Type == "function" && entry.Name != "" {
			names[entry.Name] = struct{}{}
		}
	}
	return names
}
