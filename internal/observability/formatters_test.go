package observability

import (
	"bytes"
	"testing"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintCvRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.CvRecord{
		Experience: []types.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", Period: "2018 - 2022"},
		},
		Education: []types.EducationEntry{
			{Degree: "BSc", Major: "Computer Science"},
		},
		Certifications: []types.CertificationEntry{{Title: "CKA"}},
		Skills:         []string{"Go", "Kubernetes"},
	}

	p.PrintCvRecord("jane.pdf", record)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED CV: jane.pdf")
	assert.Contains(t, output, "Engineer @ Acme (2018 - 2022)")
	assert.Contains(t, output, "BSc in Computer Science")
	assert.Contains(t, output, "CKA")
	assert.Contains(t, output, "Go, Kubernetes")
}

func TestPrintCvRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCvRecord("jane.pdf", nil)

	assert.Empty(t, buf.String())
}

func TestPrintCvRecord_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.EmptyCvRecord()
	p.PrintCvRecord("scan.pdf", &record)

	assert.Contains(t, buf.String(), "(no structured content extracted)")
}

func TestPrintDrafts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDrafts([]types.DraftCv{
		{
			Name:                 "jane.pdf",
			TotalYearsExperience: 6.5,
			Experience:           []types.DraftExperience{{Title: "Engineer"}},
			Skills:               []types.DraftSkill{{Title: "Go"}, {Title: "AWS"}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "REVIEW DRAFTS")
	assert.Contains(t, output, "jane.pdf")
	assert.Contains(t, output, "6.5 years")
	assert.Contains(t, output, "2 skills")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(&types.RecommendationResult{
		Candidates: []types.CandidateRecommendations{
			{
				CandidateName: "Jane Doe",
				Recommendations: []types.Recommendation{
					{CertID: "aws_ccp", CertName: "AWS CCP", RulesApplied: []string{"prefer cloud"}},
				},
			},
			{CandidateName: "John Roe", Recommendations: []types.Recommendation{}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CERTIFICATION RECOMMENDATIONS")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "AWS CCP [aws_ccp]")
	assert.Contains(t, output, "prefer cloud")
	assert.Contains(t, output, "(no matching certifications)")
}

func TestPrintRecommendations_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Empty(t, buf.String())
}
