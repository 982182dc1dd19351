package domain

import "fmt"

// PurposeCategory is the closed enumeration classifying why a trip occurred.
// The string values are part of the persisted format and of the AI response
// contract, so they must not change.
type PurposeCategory string

const (
	PurposeBusiness PurposeCategory = "Business"
	PurposePersonal PurposeCategory = "Personal"
	PurposeMedical  PurposeCategory = "Medical"
	PurposeCharity  PurposeCategory = "Charity"
	PurposeCommute  PurposeCategory = "Commute"
	PurposeOther    PurposeCategory = "Other"
)

// PurposeCategories returns every valid category in display order.
func PurposeCategories() []PurposeCategory {
	return []PurposeCategory{
		PurposeBusiness,
		PurposePersonal,
		PurposeMedical,
		PurposeCharity,
		PurposeCommute,
		PurposeOther,
	}
}

// Valid reports whether p is one of the defined categories.
func (p PurposeCategory) Valid() bool {
	switch p {
	case PurposeBusiness, PurposePersonal, PurposeMedical, PurposeCharity, PurposeCommute, PurposeOther:
		return true
	}
	return false
}

// ParsePurposeCategory converts a raw string into a PurposeCategory.
// Unknown values return a wrapped ErrValidation.
func ParsePurposeCategory(s string) (PurposeCategory, error) {
	p := PurposeCategory(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown purpose category %q", ErrValidation, s)
	}
	return p, nil
}
