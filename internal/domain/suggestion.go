package domain

// PurposeSuggestion is one AI-proposed classification of a free-text trip
// description. The JSON keys are the model response contract: the gateway
// asks for exactly these field names.
type PurposeSuggestion struct {
	PurposeCategory    PurposeCategory `json:"purposeCategory"`
	RefinedDescription string          `json:"refinedDescription"`
}
