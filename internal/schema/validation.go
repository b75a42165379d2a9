package schema

// ValidationResult is the outcome of a context validation pass. Missing
// fields block the action the caller was about to take; warnings do not.
type ValidationResult struct {
	IsValid       bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
	Warnings      []string `json:"warnings"`
}
