package model

// CreationInfo describes how a contract came to exist on chain.
// Timestamp may be absent when the block lookup fails after the
// creation transaction itself was resolved.
type CreationInfo struct {
	Creator   string  `json:"creator"`
	TxHash    string  `json:"tx_hash"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}
