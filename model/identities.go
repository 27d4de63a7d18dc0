package model

// AdminRecord holds the single admin of one registry.
type AdminRecord struct {
	ObjectType string `json:"objectType"` // "Admin"
	Registry   string `json:"registry"`   // Registry (contract) name this admin governs
	Admin      string `json:"admin"`      // Full client identity of the admin
	UpdatedAt  uint64 `json:"updatedAt"`  // Logical time of the last assignment
}

// Institution is a verified institutional identity.
type Institution struct {
	ObjectType        string `json:"objectType"`        // "Institution"
	Identity          string `json:"identity"`          // Full client identity of the institution
	Name              string `json:"name"`              // Display name
	VerificationLevel uint8  `json:"verificationLevel"` // Assurance level recorded by the admin
	VerifiedAt        uint64 `json:"verifiedAt"`        // Logical time of verification
	Active            bool   `json:"active"`            // False once revoked
}
