package report

import (
	"fmt"
	"strings"
	"time"

	"contractScope/internal/model"
)

const absentMarker = "Not available"

// Format renders a ContractReport as a human-readable text document.
// Absent fields are rendered as explicit markers, never omitted silently.
func Format(r model.ContractReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Contract Audit Report\n")
	fmt.Fprintf(&b, "=====================\n")
	fmt.Fprintf(&b, "Address:    %s\n", r.Address)
	if r.Chain != "" {
		fmt.Fprintf(&b, "Chain:      %s\n", r.Chain)
	}
	fmt.Fprintf(&b, "Generated:  %s\n", orMarker(r.GeneratedAt))

	if r.ErrorNote != "" {
		fmt.Fprintf(&b, "\nAudit degraded: %s\n", r.ErrorNote)
		return b.String()
	}

	if !r.IsContract {
		fmt.Fprintf(&b, "\nAccount Type: Externally Owned Account\n")
		fmt.Fprintf(&b, "Balance (wei):     %s\n", orMarker(r.EthBalance))
		if r.TransactionCount != nil {
			fmt.Fprintf(&b, "Transaction Count: %d\n", *r.TransactionCount)
		} else {
			fmt.Fprintf(&b, "Transaction Count: %s\n", absentMarker)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "\nAccount Type: Contract\n")
	if r.IsVerified {
		fmt.Fprintf(&b, "Verified:     Yes\n")
		fmt.Fprintf(&b, "Name:         %s\n", orMarker(r.ContractName))
	} else {
		fmt.Fprintf(&b, "Verified:     No\n")
	}

	fmt.Fprintf(&b, "\nProvenance\n----------\n")
	if r.Creation != nil {
		fmt.Fprintf(&b, "Creator:      %s\n", r.Creation.Creator)
		fmt.Fprintf(&b, "Creation Tx:  %s\n", r.Creation.TxHash)
		if r.Creation.Timestamp != nil {
			fmt.Fprintf(&b, "Created At:   %s\n", time.Unix(int64(*r.Creation.Timestamp), 0).UTC().Format(time.RFC3339))
		} else {
			fmt.Fprintf(&b, "Created At:   %s\n", absentMarker)
		}
	} else {
		fmt.Fprintf(&b, "Creation:     Unknown\n")
	}

	if r.Standards != nil {
		fmt.Fprintf(&b, "\nToken Standards\n---------------\n")
		fmt.Fprintf(&b, "ERC20:   %s\n", yesNo(r.Standards.IsERC20))
		fmt.Fprintf(&b, "ERC721:  %s\n", yesNo(r.Standards.IsERC721))
		fmt.Fprintf(&b, "ERC1155: %s\n", yesNo(r.Standards.IsERC1155))
	}

	if r.ProbableType != "" {
		fmt.Fprintf(&b, "\nBytecode Classification\n-----------------------\n")
		fmt.Fprintf(&b, "Probable Type: %s\n", r.ProbableType)
	}

	if r.IsVerified {
		fmt.Fprintf(&b, "\nSecurity Findings\n-----------------\n")
		if len(r.SecurityFindings) == 0 {
			fmt.Fprintf(&b, "None detected by heuristic scan.\n")
		} else {
			for _, f := range r.SecurityFindings {
				fmt.Fprintf(&b, "[%s] %s\n", f.Severity, f.Issue)
				fmt.Fprintf(&b, "        %s\n", f.Description)
			}
		}
	}

	return b.String()
}

func orMarker(value string) string {
	if value == "" {
		return absentMarker
	}
	return value
}

func yesNo(flag bool) string {
	if flag {
		return "Yes"
	}
	return "No"
}
