// Package synthesizer converts generated free text into structured output
// artifacts. Malformed or empty model output never prevents artifact
// creation: the synthesizer degrades to a minimal valid file so the caller
// always gets something downloadable.
package synthesizer

import (
	"fmt"

	"docgen/internal/models"
)

// Synthesize renders generated text as the artifact for the given use case:
// a two-column spreadsheet for checksheets, a paragraph-sequenced document
// for work instructions.
func Synthesize(useCase models.UseCase, generatedText string) (*models.SynthesizedArtifact, error) {
	var data []byte
	var err error
	switch useCase {
	case models.UseCaseChecksheet:
		data, err = buildChecksheet(generatedText)
	case models.UseCaseWorkInstruction:
		data, err = buildWorkInstruction(generatedText)
	default:
		return nil, fmt.Errorf("unknown use case: %q", useCase)
	}
	if err != nil {
		return nil, err
	}
	return &models.SynthesizedArtifact{UseCase: useCase, Data: data}, nil
}
