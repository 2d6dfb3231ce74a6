package audit

import "testing"

func nameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

var erc20Names = []string{"totalSupply", "balanceOf", "transfer", "transferFrom", "approve", "allowance"}

var erc721Names = []string{
	"balanceOf", "ownerOf", "safeTransferFrom", "transferFrom",
	"approve", "setApprovalForAll", "getApproved", "isApprovedForAll",
}

func TestDetectStandardsERC20(t *testing.T) {
	standards := DetectStandards(nameSet(erc20Names...))
	if !standards.IsERC20 {
		t.Fatalf("expected ERC20 to be detected")
	}
	if standards.IsERC721 || standards.IsERC1155 {
		t.Fatalf("unexpected standards: %+v", standards)
	}
}

func TestDetectStandardsMissingFunction(t *testing.T) {
	// allowance is absent.
	standards := DetectStandards(nameSet("totalSupply", "balanceOf", "transfer", "transferFrom", "approve"))
	if standards.IsERC20 {
		t.Fatalf("ERC20 should not be detected without allowance")
	}
}

func TestDetectStandardsSupersetMatchesBoth(t *testing.T) {
	names := append(append([]string{}, erc20Names...), erc721Names...)
	standards := DetectStandards(nameSet(names...))
	if !standards.IsERC20 || !standards.IsERC721 {
		t.Fatalf("superset surface should satisfy both standards: %+v", standards)
	}
}

func TestDetectStandardsMonotonic(t *testing.T) {
	base := nameSet(erc20Names...)
	before := DetectStandards(base)

	extended := nameSet(append([]string{"mint", "burn", "pause"}, erc20Names...)...)
	after := DetectStandards(extended)

	if before.IsERC20 && !after.IsERC20 {
		t.Fatalf("adding names must never turn a standard off")
	}
}

func TestDetectStandardsEmptySet(t *testing.T) {
	standards := DetectStandards(nameSet())
	if standards.IsERC20 || standards.IsERC721 || standards.IsERC1155 {
		t.Fatalf("empty function set should match nothing: %+v", standards)
	}
}
