package services

import (
	"fmt"
	"unicode/utf8"
)

// detectionSampleSize is how much of the document the classifier sees.
const detectionSampleSize = 2000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildDetectionPrompt asks for a YES/NO verdict on whether the text is a résumé.
func (pb *PromptBuilder) BuildDetectionPrompt(text string) string {
	return fmt.Sprintf(`You are a content classifier.
Analyze the following text and answer ONLY with "YES" or "NO".
Does this text appear to be a resume or CV (curriculum vitae)?

Text:
%s
`, truncateRunes(text, detectionSampleSize))
}

// BuildAnalysisPrompt asks for the structured assessment the report renders.
func (pb *PromptBuilder) BuildAnalysisPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following resume and provide a summary including:
- Candidate's main skills and strengths
- Education and experience highlights
- Areas of improvement
- Suggested job roles suitable for this profile
- enhancement_tips

Resume text:
%s

Convert the analysis into JSON (key-value pairs).
Use snake_case keys. Where a finding has a short title and an explanation,
write it as an object with "point" and "details" fields.`, text)
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
