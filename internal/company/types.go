package company

import "time"

// Profile holds the structured company information extracted from a
// free-text registration request. Monetary amounts are in 억원.
type Profile struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Revenue     int    `json:"revenue"`
	Employees   int    `json:"employees"`
	Debt        int    `json:"debt"`

	// VariableDebtRatio is the share of debt on variable rates, in
	// percent. Defaults to 70 when the text does not state it.
	VariableDebtRatio int `json:"variable_debt_ratio"`

	// ExportRatio is the export share of revenue, in percent. Defaults
	// to 20 when the text does not state it.
	ExportRatio int `json:"export_ratio"`
}

// VariableRateDebt returns the variable-rate portion of the company's
// debt, derived from the stated ratio.
func (p Profile) VariableRateDebt() int {
	return p.Debt * p.VariableDebtRatio / 100
}

// ExportAmount returns the export portion of revenue, derived from the
// stated ratio.
func (p Profile) ExportAmount() int {
	return p.Revenue * p.ExportRatio / 100
}

// RegistrationResult reports the outcome of registering a company in
// the knowledge graph.
type RegistrationResult struct {
	// NodeID is the graph identifier assigned to the new UserCompany
	// node.
	NodeID string

	// CompanyName echoes the registered company name.
	CompanyName string

	// AlreadyRegistered is true when a UserCompany with this name
	// already existed; no node or relationships were created.
	AlreadyRegistered bool

	// RelationshipsCreated counts the bootstrap relationships wired to
	// macro indicators, products, policies, peers and news.
	RelationshipsCreated int

	// RegisteredAt is when the node was created.
	RegisteredAt time.Time
}

// AnalysisReport bundles the canned graph lookups run for a registered
// company. Each section holds the raw result rows for rendering.
type AnalysisReport struct {
	CompanyName      string
	BasicInfo        []map[string]any
	MacroExposure    []map[string]any
	Products         []map[string]any
	Policies         []map[string]any
	SimilarCompanies []map[string]any
}
