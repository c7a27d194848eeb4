package assessment

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptiq/internal/material"
)

// fallbackMaterial stands in when the material is a document payload the
// model cannot read as text.
const fallbackMaterial = "General knowledge topics."

const userPrompt = "Generate the questions now based on the material provided in the system prompt."

// buildSystemPrompt embeds the material and the output rules.
func buildSystemPrompt(m material.Material, cfg QuizConfig) string {
	content := m.Text
	if !m.HasText() {
		content = fallbackMaterial
	}

	var b strings.Builder

	b.WriteString("You are a professional educational assessment designer.\n\n")
	b.WriteString("MATERIAL TO ANALYZE:\n")
	b.WriteString(content)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Create exactly %d multiple-choice questions (MCQs) based EXCLUSIVELY on the above material. ", cfg.Count)
	b.WriteString("Do not use any external knowledge or general facts not present in the material.\n\n")

	b.WriteString("Rules:\n")
	rules := []string{
		"Each question must have exactly 4 distinct options.",
		fmt.Sprintf("The questions must align with the %s difficulty level.", cfg.Level),
		"Provide a clear, detailed explanation for the correct answer, citing specific evidence from the material.",
		"Focus on core concepts, definitions, and application of knowledge from the provided material only.",
		"Questions must be directly based on the content provided - do not make up information.",
		"Ensure the correct answer is accurate and can be verified from the material.",
		"Make options plausible but clearly distinguishable, with only one correct answer.",
		fmt.Sprintf("If the material is insufficient to create %d questions, create as many as possible.", cfg.Count),
		"Label every question with the topic from the material it tests.",
		"Return ONLY a valid JSON array of objects with the following exact structure:",
	}
	for i, r := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	fmt.Fprintf(&b, `   [
     {
       "text": "Question text here",
       "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
       "correctAnswer": "Option 1",
       "difficulty": "%s",
       "topic": "Relevant topic",
       "explanation": "Detailed explanation citing the material"
     }
   ]
`, cfg.Level)
	b.WriteString("Do not include any other text, markdown, or formatting. Just the JSON array.")

	return b.String()
}
