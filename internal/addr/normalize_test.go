package addr

import "testing"

func TestNormalizeChecksums(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0xde0b295669a9fd93d5f28d9ec85e40f4cb697bae", "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"},
		{"0XDE0B295669A9FD93D5F28D9EC85E40F4CB697BAE", "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"},
		{"  0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed  ", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		if Checksummed(got) != tc.want {
			t.Fatalf("checksum mismatch: %s != %s", Checksummed(got), tc.want)
		}
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	inputs := []string{
		"",
		"0x123",
		"de0b295669a9fd93d5f28d9ec85e40f4cb697ba",
		"0xzz0b295669a9fd93d5f28d9ec85e40f4cb697bae",
		"not an address",
	}
	for _, in := range inputs {
		if _, err := Normalize(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
