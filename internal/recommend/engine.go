// Package recommend builds the combined catalog+rules+CVs analysis prompt
// and parses the structured recommendation response.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/catalog"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/prompts"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/schemas"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// InvalidRecommendationFormatError indicates the model response could not be
// parsed into a RecommendationResult. Fatal for the analysis pass: a failed
// recommendation must not silently report "no recommendations". Raw carries
// the full response for diagnosis.
type InvalidRecommendationFormatError struct {
	Raw   string
	Cause error
}

func (e *InvalidRecommendationFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid recommendation format: %v", e.Cause)
	}
	return "invalid recommendation format"
}

func (e *InvalidRecommendationFormatError) Unwrap() error {
	return e.Cause
}

// Recommend runs one analysis pass over the uploaded CVs. It is a single
// request/response round-trip: no retries, no partial re-requests; the whole
// call fails atomically.
func Recommend(ctx context.Context, client llm.Client, cvs []types.UploadedCv, ruleSet []string, cat []types.CertificateCatalogEntry) (*types.RecommendationResult, error) {
	if len(cvs) == 0 {
		return nil, fmt.Errorf("no CVs to analyze")
	}

	prompt := buildAnalysisPrompt(cvs, ruleSet, cat)

	response, err := client.Generate(ctx, prompt, nil, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(response)

	if err := schemas.ValidateRecommendation(cleaned); err != nil {
		return nil, &InvalidRecommendationFormatError{Raw: response, Cause: err}
	}

	var result types.RecommendationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &InvalidRecommendationFormatError{Raw: response, Cause: err}
	}

	if err := alignCandidates(&result, cvs); err != nil {
		return nil, &InvalidRecommendationFormatError{Raw: response, Cause: err}
	}

	logUnknownCertIDs(&result, cat)
	return &result, nil
}

// buildAnalysisPrompt renders the combined prompt: catalog bullets, rules
// list (or an explicit no-rules marker), and per-document CV blocks.
func buildAnalysisPrompt(cvs []types.UploadedCv, ruleSet []string, cat []types.CertificateCatalogEntry) string {
	rulesBlock := "No specific business rules provided."
	if len(ruleSet) > 0 {
		lines := make([]string, len(ruleSet))
		for i, r := range ruleSet {
			lines[i] = "- " + r
		}
		rulesBlock = strings.Join(lines, "\n")
	}

	cvBlocks := make([]string, len(cvs))
	for i, cv := range cvs {
		cvBlocks[i] = fmt.Sprintf("--- CV for: %s ---\n%s", cv.Name, cv.RawText)
	}

	template := prompts.MustGet("recommend.json", "analyze-cvs")
	return prompts.Format(template, map[string]string{
		"Catalog": catalog.PromptString(cat),
		"Rules":   rulesBlock,
		"Cvs":     strings.Join(cvBlocks, "\n\n"),
	})
}

// alignCandidates enforces the completeness policy: exactly one candidate
// entry per input document, in input order. A candidate answering with a
// document's name claims that document directly, so an omission in the middle
// of the batch cannot shift the candidates after it onto the wrong documents.
// The model usually answers with the person's name instead of the file name;
// those fill the remaining documents in input order. Documents left without a
// candidate are backfilled with the document name and an empty recommendations
// list, since absence is not a valid "no match" signal. More candidates than
// documents, or one document claimed twice, means the response shape is
// untrustworthy.
func alignCandidates(result *types.RecommendationResult, cvs []types.UploadedCv) error {
	if len(result.Candidates) > len(cvs) {
		return fmt.Errorf("response has %d candidates for %d documents", len(result.Candidates), len(cvs))
	}

	docIndex := make(map[string]int, len(cvs))
	for i, cv := range cvs {
		docIndex[cv.Name] = i
	}

	byDoc := make([]*types.CandidateRecommendations, len(cvs))
	var unplaced []*types.CandidateRecommendations
	for i := range result.Candidates {
		cand := &result.Candidates[i]
		if idx, ok := docIndex[cand.CandidateName]; ok {
			if byDoc[idx] != nil {
				return fmt.Errorf("response repeats candidate %q", cand.CandidateName)
			}
			byDoc[idx] = cand
			continue
		}
		unplaced = append(unplaced, cand)
	}

	slot := 0
	for _, cand := range unplaced {
		for byDoc[slot] != nil {
			slot++
		}
		byDoc[slot] = cand
	}

	aligned := make([]types.CandidateRecommendations, len(cvs))
	for i, cand := range byDoc {
		if cand == nil {
			aligned[i] = types.CandidateRecommendations{
				CandidateName:   cvs[i].Name,
				Recommendations: []types.Recommendation{},
			}
			continue
		}
		aligned[i] = *cand
		if aligned[i].CandidateName == "" {
			aligned[i].CandidateName = cvs[i].Name
		}
		if aligned[i].Recommendations == nil {
			aligned[i].Recommendations = []types.Recommendation{}
		}
		for j := range aligned[i].Recommendations {
			if aligned[i].Recommendations[j].RulesApplied == nil {
				aligned[i].Recommendations[j].RulesApplied = []string{}
			}
		}
	}
	result.Candidates = aligned
	return nil
}

// logUnknownCertIDs flags recommendations referencing IDs outside the
// catalog. Model output correctness is not guaranteed, so this is
// diagnostic only.
func logUnknownCertIDs(result *types.RecommendationResult, cat []types.CertificateCatalogEntry) {
	for _, candidate := range result.Candidates {
		for _, rec := range candidate.Recommendations {
			if _, ok := catalog.FindByID(cat, rec.CertID); !ok {
				log.Printf("recommendation for %s references unknown certId %q", candidate.CandidateName, rec.CertID)
			}
		}
	}
}
