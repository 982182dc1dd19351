package ai

import (
	"fmt"
	"strings"

	"github.com/milelog/backend/internal/domain"
)

func suggestPurposePrompt(description string) string {
	var b strings.Builder
	b.WriteString("You classify trips for a personal mileage log.\n")
	fmt.Fprintf(&b, "Given the trip description below, pick the best purpose category from this list: %s.\n",
		strings.Join(categoryNames(), ", "))
	b.WriteString("Also rewrite the description as one short, clear sentence.\n")
	b.WriteString(`Respond with a JSON array of suggestions, each shaped {"purposeCategory": "...", "refinedDescription": "..."}.` + "\n\n")
	fmt.Fprintf(&b, "Trip description: %s\n", description)
	return b.String()
}

func generateNotesPrompt(tripSummary string) string {
	var b strings.Builder
	b.WriteString("Write a brief note for a mileage-log entry, under 25 words.\n")
	b.WriteString("Plain text only, no headings or bullet points.\n\n")
	fmt.Fprintf(&b, "Trip: %s\n", tripSummary)
	return b.String()
}

func insightsPrompt(question string, trips []domain.Trip, vehicles []domain.Vehicle) string {
	var b strings.Builder
	b.WriteString("You are an assistant answering questions about a personal mileage log.\n")
	b.WriteString("Use the trip history below. If the history cannot answer the question, say so.\n\n")
	b.WriteString("Trip history (most recent first):\n")
	for _, t := range trips {
		fmt.Fprintf(&b, "- %s: %s to %s, %.1f miles, %s",
			t.Date.Format("2006-01-02"),
			truncate(t.StartLocation, maxLocationLen),
			truncate(t.EndLocation, maxLocationLen),
			t.Distance,
			t.PurposeCategory,
		)
		if name := vehicleName(t.VehicleID, vehicles); name != "" {
			fmt.Fprintf(&b, ", vehicle: %s", name)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}

func categoryNames() []string {
	cats := domain.PurposeCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func vehicleName(id string, vehicles []domain.Vehicle) string {
	if id == "" {
		return ""
	}
	for _, v := range vehicles {
		if v.ID == id {
			return v.DisplayName()
		}
	}
	return ""
}
