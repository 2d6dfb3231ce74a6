package audit

import "contractScope/internal/model"

// StandardRule names a token standard and the function names that must all
// be present in a contract ABI for the standard to be declared.
type StandardRule struct {
	Name              string
	RequiredFunctions []string
}

// standardRules matches on function names only, ignoring signatures and
// arity. A contract whose function surface is a superset of several rules
// is reported as satisfying all of them. Known precision limitation.
var standardRules = []StandardRule{
	{
		Name: "ERC20",
		RequiredFunctions: []string{
			"totalSupply", "balanceOf", "transfer", "transferFrom", "approve", "allowance",
		},
	},
	{
		Name: "ERC721",
		RequiredFunctions: []string{
			"balanceOf", "ownerOf", "safeTransferFrom", "transferFrom",
			"approve", "setApprovalForAll", "getApproved", "isApprovedForAll",
		},
	},
	{
		Name: "ERC1155",
		RequiredFunctions: []string{
			"balanceOf", "balanceOfBatch", "setApprovalForAll",
			"isApprovedForAll", "safeTransferFrom", "safeBatchTransferFrom",
		},
	},
}

// DetectStandards classifies an ABI function-name set against the known
// token standards. Checks are independent and not mutually exclusive.
func DetectStandards(functionNames map[string]struct{}) model.TokenStandards {
	var standards model.TokenStandards
	for _, rule := range standardRules {
		if !hasAllFunctions(functionNames, rule.RequiredFunctions) {
			continue
		}
		switch rule.Name {
		case "ERC20":
			standards.IsERC20 = true
		case "ERC721":
			standards.IsERC721 = true
		case "ERC1155":
			standards.IsERC1155 = true
		}
	}
	return standards
}

func hasAllFunctions(names map[string]struct{}, required []string) bool {
	for _, name := range required {
		if _, ok := names[name]; !ok {
			return false
		}
	}
	return true
}
