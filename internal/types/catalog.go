// Package types provides type definitions for structured data used throughout the SkillMatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CertificationLevel represents the difficulty/seniority tier of a certification
type CertificationLevel string

// Certification level constants, ordered roughly by seniority
const (
	LevelFoundational CertificationLevel = "Foundational"
	LevelAssociate    CertificationLevel = "Associate"
	LevelSpecialist   CertificationLevel = "Specialist"
	LevelProfessional CertificationLevel = "Professional"
	LevelExpert       CertificationLevel = "Expert"
)

// CertificateCatalogEntry represents one certification in the reference catalog
type CertificateCatalogEntry struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Level        string `json:"level" validate:"required,oneof=Foundational Associate Specialist Professional Expert"`
	OfficialLink string `json:"officialLink" validate:"omitempty,url"`
}
