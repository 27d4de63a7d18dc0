package model

// UsageRecord is an immutable entry in the dataset usage log.
type UsageRecord struct {
	ObjectType  string `json:"objectType"` // "UsageRecord"
	RecordID    uint64 `json:"recordId"`
	DatasetID   uint64 `json:"datasetId"`
	User        string `json:"user"` // Identity that recorded the usage
	UsageTypeID uint64 `json:"usageTypeId"`
	Timestamp   uint64 `json:"timestamp"`
	Details     string `json:"details"`
}

// AnonymizedDatasetRecord links an original dataset hash to its anonymized
// counterpart. Hashes are 64-character lowercase hex strings.
type AnonymizedDatasetRecord struct {
	ObjectType     string `json:"objectType"` // "AnonymizedDataset"
	RecordID       uint64 `json:"recordId"`
	OriginalHash   string `json:"originalHash"`
	AnonymizedHash string `json:"anonymizedHash"`
	MethodID       uint64 `json:"methodId"`
	Anonymizer     string `json:"anonymizer"`
	Timestamp      uint64 `json:"timestamp"`
}

// LogCounter holds the last id assigned by an append-only log.
type LogCounter struct {
	ObjectType string `json:"objectType"` // "Counter"
	Log        string `json:"log"`
	Last       uint64 `json:"last"`
}
