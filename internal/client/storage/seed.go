package storage

import "github.com/dmitrijs2005/promptkeeper/internal/client/models"

// seedAnchor is the fixed reference instant the sample timestamps are
// offset from: 2024-01-08 00:00 UTC.
const (
	seedAnchor int64 = 1704672000000
	hourMillis int64 = 60 * 60 * 1000
	dayMillis        = 24 * hourMillis
)

// SeedPrompts returns the sample records inserted once into an empty table.
// Of the four only "Code Refactoring Assistant" mentions code anywhere in its
// title, description or text.
func SeedPrompts() []models.Prompt {
	return []models.Prompt{
		{
			ID:          "5f0c6a52-1d7e-4c1b-9a43-2f8e7b0d9c01",
			Title:       "Creative Story Writer",
			Description: "Generates creative short stories based on a few keywords",
			Tags:        []string{"creative", "writing", "stories"},
			Text: "Write a creative short story (300-500 words) based on the following " +
				"keywords: [KEYWORDS]. Include a compelling character, an interesting " +
				"setting, and a surprising twist at the end.",
			Comments:  "Works best with 3-5 descriptive keywords. Great for creative inspiration.",
			CreatedAt: seedAnchor - 7*dayMillis,
			UpdatedAt: seedAnchor - 5*dayMillis,
		},
		{
			ID:          "8a3e1f47-62b9-4d0e-b5c7-91d2a4e6f802",
			Title:       "Code Refactoring Assistant",
			Description: "Helps improve and optimize existing code",
			Tags:        []string{"programming", "coding", "refactoring"},
			Text: "Review the following code and suggest improvements for readability, " +
				"performance, and best practices without changing its core " +
				"functionality:\n\n```\n[CODE]\n```",
			Comments:  "Very helpful for learning better coding practices and understanding optimization techniques.",
			CreatedAt: seedAnchor - 5*dayMillis,
			UpdatedAt: seedAnchor - 2*dayMillis,
		},
		{
			ID:          "c2d94b18-7a5f-4e36-8f01-3b6c9e2d7a03",
			Title:       "Recipe Creator",
			Description: "Creates recipes based on available ingredients",
			Tags:        []string{"cooking", "food", "recipes"},
			Text: "Create a detailed recipe using only the following ingredients: " +
				"[INGREDIENTS]. Include cooking instructions, approximate cooking time, " +
				"difficulty level, and potential substitutions for common allergens.",
			Comments:  "Great for meal planning and using up leftover ingredients.",
			CreatedAt: seedAnchor - 3*dayMillis,
			UpdatedAt: seedAnchor - 3*dayMillis,
		},
		{
			ID:          "e7b05c39-4f8a-4a12-9d6e-5c1f3a8b2e04",
			Title:       "Learning Concept Explainer",
			Description: "Explains complex concepts in simple terms",
			Tags:        []string{"learning", "education", "explanation"},
			Text: "Explain [CONCEPT] as if you were teaching it to a [AGE] year old. " +
				"Use simple language, helpful analogies, and break down complex ideas " +
				"into manageable parts.",
			Comments:  "Excellent for understanding difficult concepts or preparing to teach others.",
			CreatedAt: seedAnchor - 1*dayMillis,
			UpdatedAt: seedAnchor - 12*hourMillis,
		},
	}
}

// SeedTitles returns the titles of the built-in sample records.
func SeedTitles() []string {
	seeds := SeedPrompts()
	out := make([]string, len(seeds))
	for i, p := range seeds {
		out[i] = p.Title
	}
	return out
}
