package model

// Category is an admin-curated taxonomy entry. The same shape backs usage
// types and anonymization methods; ObjectType tells them apart.
type Category struct {
	ObjectType  string `json:"objectType"` // "UsageType" or "AnonymizationMethod"
	CategoryID  uint64 `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
