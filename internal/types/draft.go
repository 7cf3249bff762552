//nolint:revive // types is a standard Go package name pattern
package types

// DraftCv is the editable, display-facing projection of a canonical CvRecord.
// Identity key is Name. The Source record is retained so composed display
// fields (degree+major, company+description) stay recoverable.
type DraftCv struct {
	Name                 string               `json:"name"`
	TotalYearsExperience float64              `json:"totalYearsExperience"`
	Experience           []DraftExperience    `json:"experience"`
	Education            []DraftEducation     `json:"education"`
	Certifications       []DraftCertification `json:"certifications"`
	Skills               []DraftSkill         `json:"skills"`
	Source               CvRecord             `json:"source"`
}

// DraftExperience is one editable experience row with a computed duration
type DraftExperience struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Years       string  `json:"years"`    // the original free-text period
	Duration    float64 `json:"duration"` // computed span in years
}

// DraftEducation is one editable education row
type DraftEducation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DraftCertification is one editable certification row
type DraftCertification struct {
	Title string `json:"title"`
}

// DraftSkill is one editable skill row
type DraftSkill struct {
	Title string `json:"title"`
}
