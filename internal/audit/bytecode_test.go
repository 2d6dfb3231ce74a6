package audit

import "testing"

func TestClassifyBytecodeTokenSelectors(t *testing.T) {
	// name(), symbol(), totalSupply() selectors embedded in dispatcher code.
	code := "0x6080604052" + selectorHex("name()") + selectorHex("symbol()") + selectorHex("totalSupply()")
	got := ClassifyBytecode(code)
	if got != "Likely Token (ERC20/ERC721)" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestClassifyBytecodeFirstMatchWins(t *testing.T) {
	// Both the implementation() selector and the dispatcher prologue are
	// present; the earlier-declared proxy rule must win.
	code := "0x6080604052" + selectorHex("implementation()")
	got := ClassifyBytecode(code)
	if got != "Likely Proxy Contract" {
		t.Fatalf("expected proxy label, got %s", got)
	}

	// A token selector outranks the proxy rule.
	code = "0x" + selectorHex("implementation()") + selectorHex("transfer(address,uint256)")
	got = ClassifyBytecode(code)
	if got != "Likely Token (ERC20/ERC721)" {
		t.Fatalf("expected token label, got %s", got)
	}
}

func TestClassifyBytecodeMinimalProxy(t *testing.T) {
	code := "0x363d3d373d3d3d363d73bebebebebebebebebebebebebebebebebebebebe5af43d82803e903d91602b57fd5bf3"
	got := ClassifyBytecode(code)
	if got != "Likely Minimal Proxy (EIP-1167)" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestClassifyBytecodeUnknown(t *testing.T) {
	if got := ClassifyBytecode("0xdeadbeef"); got != UnknownContractType {
		t.Fatalf("expected unknown label, got %s", got)
	}
}

func TestClassifyBytecodeDeterministic(t *testing.T) {
	code := "0x6080604052" + selectorHex("deposit()")
	first := ClassifyBytecode(code)
	second := ClassifyBytecode(code)
	if first != second {
		t.Fatalf("classification not deterministic: %s != %s", first, second)
	}
	if first != "Likely Wrapped Token or Vault" {
		t.Fatalf("unexpected label: %s", first)
	}
}
