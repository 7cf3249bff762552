// Package review owns the editable draft projections of canonical CV records
// and the reconciliation of edited drafts into the submitted set: projection,
// edit capture, upsert-by-name merging, and the duplicate-submission guard.
package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/experience"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// StaleSelectionError indicates the selected files are identical to the most
// recently analyzed set. This is an expected, recoverable user-flow state,
// not an exception: the caller shows the corrective message and waits for a
// different selection.
type StaleSelectionError struct {
	Files []string
}

func (e *StaleSelectionError) Error() string {
	return fmt.Sprintf("these files have already been analyzed (%s); please select different files", strings.Join(e.Files, ", "))
}

// ProjectDraft builds the editable display projection of a canonical record.
// Composed display fields (company folded into the description, degree+major
// into the education title) are display-only: the canonical record is kept on
// the draft as Source so nothing is lost.
func ProjectDraft(name string, rec types.CvRecord) types.DraftCv {
	draft := types.DraftCv{
		Name:                 name,
		TotalYearsExperience: experience.TotalYears(rec.Experience),
		Experience:           make([]types.DraftExperience, 0, len(rec.Experience)),
		Education:            make([]types.DraftEducation, 0, len(rec.Education)),
		Certifications:       make([]types.DraftCertification, 0, len(rec.Certifications)),
		Skills:               make([]types.DraftSkill, 0, len(rec.Skills)),
		Source:               rec,
	}

	for _, exp := range rec.Experience {
		draft.Experience = append(draft.Experience, types.DraftExperience{
			Title:       exp.JobTitle,
			Description: fmt.Sprintf("%s - %s", exp.Company, exp.Description),
			Years:       exp.Period,
			Duration:    experience.YearsFromPeriod(exp.Period),
		})
	}

	for _, edu := range rec.Education {
		draft.Education = append(draft.Education, types.DraftEducation{
			Title:       fmt.Sprintf("%s in %s", edu.Degree, edu.Major),
			Description: edu.Institution,
		})
	}

	for _, cert := range rec.Certifications {
		title := cert.Title
		if cert.Issuer != "" {
			title = fmt.Sprintf("%s - %s", cert.Title, cert.Issuer)
		}
		draft.Certifications = append(draft.Certifications, types.DraftCertification{Title: title})
	}

	for _, skill := range rec.Skills {
		draft.Skills = append(draft.Skills, types.DraftSkill{Title: skill})
	}

	return draft
}

// DraftEdits carries the captured in-place edits for one draft. A nil section
// means "untouched"; a non-nil section replaces the draft's section wholesale,
// since edit capture re-reads entire lists.
type DraftEdits struct {
	Experience     []types.DraftExperience    `json:"experience"`
	Education      []types.DraftEducation     `json:"education"`
	Certifications []types.DraftCertification `json:"certifications"`
	Skills         []types.DraftSkill         `json:"skills"`
}

// ApplyEdits folds captured edits into a draft and returns the updated copy.
// Pure: the input draft is not mutated. Per-row durations and the experience
// total are recomputed from the edited period text.
func ApplyEdits(draft types.DraftCv, edits DraftEdits) types.DraftCv {
	out := draft

	if edits.Experience != nil {
		out.Experience = make([]types.DraftExperience, len(edits.Experience))
		copy(out.Experience, edits.Experience)
		for i := range out.Experience {
			out.Experience[i].Duration = experience.YearsFromPeriod(out.Experience[i].Years)
		}
	}
	if edits.Education != nil {
		out.Education = make([]types.DraftEducation, len(edits.Education))
		copy(out.Education, edits.Education)
	}
	if edits.Certifications != nil {
		out.Certifications = make([]types.DraftCertification, len(edits.Certifications))
		copy(out.Certifications, edits.Certifications)
	}
	if edits.Skills != nil {
		out.Skills = make([]types.DraftSkill, len(edits.Skills))
		copy(out.Skills, edits.Skills)
	}

	out.TotalYearsExperience = experience.TotalYearsFromDrafts(out.Experience)
	return out
}

// Merge upserts the incoming records into the existing set, keyed by Name.
// Exactly one record per name, latest write wins, nothing dropped. Order is
// stable: existing records first in their original order, then genuinely new
// names in incoming order.
func Merge(existing, incoming []types.DraftCv) []types.DraftCv {
	merged := make([]types.DraftCv, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(existing))
	for i, rec := range existing {
		index[rec.Name] = i
	}

	for _, rec := range incoming {
		if i, ok := index[rec.Name]; ok {
			merged[i] = rec
		} else {
			index[rec.Name] = len(merged)
			merged = append(merged, rec)
		}
	}

	return merged
}

// Fingerprint derives an order-independent identity for a file selection
func Fingerprint(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, "\n")
}

// CheckSelection rejects a selection identical to the one most recently
// analyzed. An empty last fingerprint (nothing analyzed yet) accepts
// anything; any differing selection, even a partial overlap, is accepted.
func CheckSelection(names []string, lastFingerprint string) error {
	if lastFingerprint == "" {
		return nil
	}
	if Fingerprint(names) == lastFingerprint {
		return &StaleSelectionError{Files: names}
	}
	return nil
}
