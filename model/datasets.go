package model

// Dataset records the current owner of a research dataset.
type Dataset struct {
	ObjectType   string `json:"objectType"` // "Dataset"
	DatasetID    uint64 `json:"datasetId"`
	Owner        string `json:"owner"`
	RegisteredAt uint64 `json:"registeredAt"` // Logical time of the last registration or transfer
}

// AccessGrant is a time-bounded permission keyed by (dataset, accessor).
type AccessGrant struct {
	ObjectType  string `json:"objectType"` // "AccessGrant"
	DatasetID   uint64 `json:"datasetId"`
	Accessor    string `json:"accessor"`
	GrantedBy   string `json:"grantedBy"`
	AccessLevel uint32 `json:"accessLevel"`
	Expiration  uint64 `json:"expiration"` // Valid while expiration > current logical time
	Active      bool   `json:"active"`
}

// OwnershipHistoryEntry is one historical state of a dataset ownership record.
type OwnershipHistoryEntry struct {
	TxID      string `json:"txId"`
	Timestamp int64  `json:"timestamp"` // Unix seconds of the committing transaction
	IsDelete  bool   `json:"isDelete"`
	Owner     string `json:"owner"`
}
