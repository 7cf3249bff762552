//nolint:revive // types is a standard Go package name pattern
package types

// RecommendationResult is the structured output of one analysis pass.
// It is replaced wholesale by the next successful analysis.
type RecommendationResult struct {
	Candidates []CandidateRecommendations `json:"candidates"`
}

// CandidateRecommendations holds the recommendations for one candidate.
// A candidate with no eligible certifications still appears with an
// empty Recommendations array.
type CandidateRecommendations struct {
	CandidateName   string           `json:"candidateName"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is a single catalog-grounded certification suggestion
type Recommendation struct {
	CertID       string   `json:"certId"`
	CertName     string   `json:"certName"`
	Reason       string   `json:"reason"`
	RulesApplied []string `json:"rulesApplied"`
}

// ChatMessage is one turn of the conversational assistant's history
type ChatMessage struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}
