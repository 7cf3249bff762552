//nolint:revive // types is a standard Go package name pattern
package types

// CvRecord is the canonical structured representation of one parsed CV document.
// Invariant: array fields are never nil and string fields are never absent;
// Normalize enforces this after JSON decoding of model output.
type CvRecord struct {
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	Skills         []string             `json:"skills"`
	Other          OtherInfo            `json:"other"`
}

// ExperienceEntry represents one role held by the candidate
type ExperienceEntry struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Period      string `json:"period"` // free text, e.g. "Jan 2018 - Present"
	Description string `json:"description"`
}

// EducationEntry represents one degree or program
type EducationEntry struct {
	Degree      string `json:"degree"`
	Major       string `json:"major"`
	Institution string `json:"institution"`
}

// CertificationEntry represents one certification the candidate already holds
type CertificationEntry struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
}

// OtherInfo holds the remaining sections a CV may carry
type OtherInfo struct {
	Achievements []string `json:"achievements"`
	Languages    []string `json:"languages"`
	Summary      string   `json:"summary"`
	Interests    string   `json:"interests"`
}

// Normalize replaces nil slices with empty ones so the record always satisfies
// the canonical invariant regardless of what subset the model returned.
func (r *CvRecord) Normalize() {
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Certifications == nil {
		r.Certifications = []CertificationEntry{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Other.Achievements == nil {
		r.Other.Achievements = []string{}
	}
	if r.Other.Languages == nil {
		r.Other.Languages = []string{}
	}
}

// EmptyCvRecord returns an all-default canonical record.
// Used when a document has no extractable text or the model response
// could not be parsed.
func EmptyCvRecord() CvRecord {
	var r CvRecord
	r.Normalize()
	return r
}

// UploadedCv pairs a document with its raw text and structured extraction.
// The document filename acts as the identity key within a batch.
type UploadedCv struct {
	Name       string   `json:"name"`
	RawText    string   `json:"text"`
	Structured CvRecord `json:"structured"`
}
