// Package parsing turns raw CV text into canonical structured records via
// LLM extraction.
package parsing

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/prompts"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/schemas"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// ExtractCvRecord sends raw CV text through the LLM extraction prompt and
// returns the normalized canonical record.
//
// Two conditions are recoverable and yield an empty record instead of an
// error: empty input text (image-only PDFs extract to nothing) and a response
// that does not parse as JSON or does not match the record shape (the raw
// response is logged for diagnosis). A transport failure is still an error.
func ExtractCvRecord(ctx context.Context, client llm.Client, rawText string) (types.CvRecord, error) {
	if strings.TrimSpace(rawText) == "" {
		return types.EmptyCvRecord(), nil
	}

	prompt := buildExtractionPrompt(rawText)

	response, err := client.Generate(ctx, prompt, nil, llm.TierStandard)
	if err != nil {
		return types.CvRecord{}, &APICallError{Message: "CV extraction failed", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(response)

	if err := schemas.ValidateCvRecord(cleaned); err != nil {
		log.Printf("CV extraction response failed shape validation: %v", err)
		log.Printf("Raw response: %s", response)
		return types.EmptyCvRecord(), nil
	}

	var record types.CvRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		log.Printf("Failed to parse CV extraction response: %v", err)
		log.Printf("Raw response: %s", response)
		return types.EmptyCvRecord(), nil
	}

	record.Normalize()
	return record, nil
}

// buildExtractionPrompt embeds the raw text in the extraction template
func buildExtractionPrompt(rawText string) string {
	template := prompts.MustGet("parsing.json", "extract-cv-record")
	return prompts.Format(template, map[string]string{
		"CvText": rawText,
	})
}
