package audit

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// BytecodeRule pairs a hex substring (a 4-byte function selector or a known
// opcode prologue) with the label to report when it is found in bytecode.
type BytecodeRule struct {
	Pattern string
	Label   string
}

// UnknownContractType is returned when no bytecode rule matches.
const UnknownContractType = "Unknown Contract Type"

// bytecodeRules is evaluated top to bottom; the first matching rule wins.
// Several rules can match the same bytecode, so the order here is part of
// the classifier's contract and must not be reshuffled.
var bytecodeRules = []BytecodeRule{
	{selectorHex("name()"), "Likely Token (ERC20/ERC721)"},
	{selectorHex("symbol()"), "Likely Token (ERC20/ERC721)"},
	{selectorHex("totalSupply()"), "Likely Token (ERC20/ERC721)"},
	{selectorHex("transfer(address,uint256)"), "Likely Token (ERC20/ERC721)"},
	{selectorHex("safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)"), "Likely Multi Token (ERC1155)"},
	// EIP-1167 minimal proxy runtime prologue.
	{"363d3d373d3d3d363d73", "Likely Minimal Proxy (EIP-1167)"},
	{selectorHex("implementation()"), "Likely Proxy Contract"},
	{selectorHex("swap(uint256,uint256,address,bytes)"), "Likely DEX Pair/Pool"},
	{selectorHex("deposit()"), "Likely Wrapped Token or Vault"},
	// Solidity dispatcher prologue: PUSH1 0x80 PUSH1 0x40 MSTORE.
	{"6080604052", "Standard Contract (Unknown Type)"},
}

// ClassifyBytecode labels unverified-contract bytecode by the first rule
// whose pattern appears as a substring of the hex string.
func ClassifyBytecode(bytecodeHex string) string {
	code := strings.ToLower(strings.TrimPrefix(bytecodeHex, "0x"))
	for _, rule := range bytecodeRules {
		if strings.Contains(code, rule.Pattern) {
			return rule.Label
		}
	}
	return UnknownContractType
}

// selectorHex derives the 4-byte function selector for a canonical
// signature string, as lowercase hex without the 0x prefix.
func selectorHex(signature string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(signature))[:4])
}
