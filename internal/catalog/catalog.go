// Package catalog holds the certification reference catalog: the built-in
// default entries, validation for catalog overrides, and the prompt rendering
// used by the recommendation and chat prompts.
package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

var validate = validator.New()

// Default returns the built-in certificate catalog. It is used until a
// persisted override replaces it.
func Default() []types.CertificateCatalogEntry {
	out := make([]types.CertificateCatalogEntry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// Validate checks every entry of a catalog override: required fields, the
// level enum, link shape, and ID uniqueness.
func Validate(entries []types.CertificateCatalogEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return fmt.Errorf("catalog entry %d (%s): %w", i, entry.ID, err)
		}
		if seen[entry.ID] {
			return fmt.Errorf("catalog entry %d: duplicate id %q", i, entry.ID)
		}
		seen[entry.ID] = true
	}
	return nil
}

// PromptString renders the catalog as the bulleted list embedded in prompts:
// one "- **name** (level): description | Link: officialLink" line per entry.
func PromptString(entries []types.CertificateCatalogEntry) string {
	lines := make([]string, 0, len(entries))
	for _, c := range entries {
		level := c.Level
		if level == "" {
			level = "N/A"
		}
		line := fmt.Sprintf("- **%s** (%s): %s", c.Name, level, c.Description)
		if c.OfficialLink != "" {
			line += fmt.Sprintf(" | Link: %s", c.OfficialLink)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FindByID returns the catalog entry with the given ID, if present
func FindByID(entries []types.CertificateCatalogEntry, id string) (types.CertificateCatalogEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return types.CertificateCatalogEntry{}, false
}

var defaultEntries = []types.CertificateCatalogEntry{
	// Cloud infrastructure and architecture
	{
		ID:           "aws_ccp",
		Name:         "AWS Certified Cloud Practitioner (CCP)",
		Description:  "Validates fundamental understanding of AWS cloud concepts, security, and pricing.",
		Level:        "Foundational",
		OfficialLink: "https://aws.amazon.com/certification/certified-cloud-practitioner/",
	},
	{
		ID:           "azure_fund",
		Name:         "Microsoft Certified: Azure Fundamentals (AZ-900)",
		Description:  "Demonstrates foundational knowledge of core Azure services, security, and pricing.",
		Level:        "Foundational",
		OfficialLink: "https://learn.microsoft.com/en-us/credentials/certifications/azure-fundamentals/",
	},
	{
		ID:           "gcp_cdl",
		Name:         "Google Cloud Certified Cloud Digital Leader (CDL)",
		Description:  "Understanding of basic cloud computing and how Google Cloud products enable business transformation.",
		Level:        "Foundational",
		OfficialLink: "https://cloud.google.com/learn/certification/cloud-digital-leader",
	},
	{
		ID:           "aws_saa",
		Name:         "AWS Certified Solutions Architect - Associate",
		Description:  "Designing and deploying secure, cost-effective, and scalable systems on AWS.",
		Level:        "Associate",
		OfficialLink: "https://aws.amazon.com/certification/certified-solutions-architect-associate/",
	},
	{
		ID:           "azure_admin",
		Name:         "Microsoft Certified: Azure Administrator Associate (AZ-104)",
		Description:  "Implementation, management, and monitoring of Azure identity, governance, compute, and networking.",
		Level:        "Associate",
		OfficialLink: "https://learn.microsoft.com/en-us/credentials/certifications/azure-administrator/",
	},
	{
		ID:           "gcp_pca",
		Name:         "Professional Cloud Architect (PCA)",
		Description:  "Designing, planning, and managing secure, highly available, and scalable cloud architecture on Google Cloud.",
		Level:        "Expert",
		OfficialLink: "https://cloud.google.com/learn/certification/cloud-architect",
	},

	// Integration and digital workflow
	{
		ID:           "sn_csa",
		Name:         "ServiceNow Certified System Administrator (CSA)",
		Description:  "Core knowledge of the ServiceNow platform configuration, management, and maintenance.",
		Level:        "Foundational",
		OfficialLink: "https://learning.servicenow.com/lxp/en/credentials/certified-system-administrator-mainline-exam-blueprint?id=kb_article_view&sysparm_article=KB0011554",
	},
	{
		ID:           "sn_cis_itsm",
		Name:         "ServiceNow CIS - IT Service Management (ITSM)",
		Description:  "Expertise in deploying and configuring the core IT Service Management suite (Incident, Problem, Change).",
		Level:        "Specialist",
		OfficialLink: "https://learning.servicenow.com/lxp/en/pages/now-learning-get-certified?id=amap_detail&achievement_id=6c8e1d77dbc27f40de3cdb85ca961970",
	},
	{
		ID:           "mulesoft_dev1",
		Name:         "MuleSoft Certified Developer - Level 1",
		Description:  "Building, testing, troubleshooting, and deploying basic APIs and integrations using Anypoint Platform (Mule 4).",
		Level:        "Associate",
		OfficialLink: "https://trailheadacademy.salesforce.com/certificate/exam-mule-dev---Mule-Dev-201",
	},
	{
		ID:           "sf_admin",
		Name:         "Salesforce Certified Platform Administrator",
		Description:  "Foundational knowledge of managing users, security, and standard functionality of a Salesforce organization.",
		Level:        "Associate",
		OfficialLink: "https://trailhead.salesforce.com/credentials/administrator",
	},
	{
		ID:           "sf_app_arch",
		Name:         "Salesforce Certified Application Architect",
		Description:  "Designing and building technical solutions that are secure, scalable, and tailored for enterprise data management and sharing.",
		Level:        "Expert",
		OfficialLink: "https://trailhead.salesforce.com/credentials/applicationarchitect",
	},

	// Data, AI and analytics
	{
		ID:           "snowflake_core",
		Name:         "SnowPro Core Certification",
		Description:  "Core features and implementation of the Snowflake Cloud Data Platform.",
		Level:        "Foundational",
		OfficialLink: "https://learn.snowflake.com/en/certifications/snowpro-core/",
	},
	{
		ID:           "databricks_associate",
		Name:         "Databricks Certified Data Engineer Associate",
		Description:  "Building and deploying ETL/ELT pipelines using Databricks (PySpark, SQL).",
		Level:        "Associate",
		OfficialLink: "https://www.databricks.com/learn/certification/data-engineer-associate",
	},
	{
		ID:           "power_bi_analyst",
		Name:         "Microsoft Power BI Data Analyst (PL-300)",
		Description:  "Designing and building scalable data models and reports for business insight using Power BI.",
		Level:        "Associate",
		OfficialLink: "https://learn.microsoft.com/en-us/credentials/certifications/data-analyst-associate/?practice-assessment-type=certification",
	},
	{
		ID:           "azure_ai_eng",
		Name:         "Microsoft Certified: Azure AI Engineer Associate (AI-102)",
		Description:  "Designing and implementing AI solutions using Azure services (Cognitive Services, Azure ML).",
		Level:        "Professional",
		OfficialLink: "https://learn.microsoft.com/en-us/credentials/certifications/azure-ai-engineer/",
	},

	// Business, process and strategy
	{
		ID:           "pmp",
		Name:         "Project Management Professional (PMP)",
		Description:  "Validates skills in leading and directing complex projects, using predictive, agile, and hybrid approaches.",
		Level:        "Expert",
		OfficialLink: "https://www.pmi.org/certifications/project-management-pmp",
	},
	{
		ID:           "itil_f",
		Name:         "ITIL 4 Foundation",
		Description:  "Core principles and practices for IT Service Management (ITSM) and the Service Value System.",
		Level:        "Foundational",
		OfficialLink: "https://www.peoplecert.org/browse-certifications/it-governance-and-service-management/ITIL-1/itil-4-foundation-2565",
	},
	{
		ID:           "csm",
		Name:         "Certified ScrumMaster (CSM)",
		Description:  "Understanding and application of the Scrum framework to facilitate teams and manage agile delivery.",
		Level:        "Specialist",
		OfficialLink: "https://www.scrumalliance.org/get-certified/scrum-master-track/certified-scrummaster",
	},
	{
		ID:           "cbap",
		Name:         "Certified Business Analysis Professional (CBAP)",
		Description:  "Expertise in defining requirements, driving strategic outcomes, and liaison between business and IT stakeholders.",
		Level:        "Expert",
		OfficialLink: "https://www.iiba.org/business-analysis-certifications/cbap/",
	},
	{
		ID:           "ccmp",
		Name:         "Certified Change Management Professional (CCMP)",
		Description:  "Structured methodologies for managing the human and organizational side of digital change.",
		Level:        "Specialist",
		OfficialLink: "https://www.acmpglobal.org/page/CCMP",
	},
	{
		ID:           "focp",
		Name:         "FinOps Certified Practitioner (FOCP)",
		Description:  "Principles for managing cloud financial operations, cost optimization, and financial accountability.",
		Level:        "Foundational",
		OfficialLink: "https://learn.finops.org/page/finops-certified-practitioner",
	},

	// Cybersecurity, DevOps and governance
	{
		ID:           "cissp",
		Name:         "Certified Information Systems Security Professional (CISSP)",
		Description:  "Executive-level knowledge in designing, implementing, and managing a security program.",
		Level:        "Expert",
		OfficialLink: "https://www.isc2.org/certifications/CISSP",
	},
	{
		ID:           "cism",
		Name:         "Certified Information Security Manager (CISM)",
		Description:  "Focuses on security governance, program development, risk management, and incident management.",
		Level:        "Expert",
		OfficialLink: "https://www.isaca.org/credentialing/cism",
	},
	{
		ID:           "cka",
		Name:         "Certified Kubernetes Administrator (CKA)",
		Description:  "Hands-on ability to deploy, configure, and manage Kubernetes clusters (Cloud Native App Development).",
		Level:        "Specialist",
		OfficialLink: "https://trainingportal.linuxfoundation.org/courses/certified-kubernetes-administrator-cka",
	},
	{
		ID:           "terraform",
		Name:         "HashiCorp Certified: Terraform Associate",
		Description:  "Foundational skills in Infrastructure as Code (IaC) using Terraform for multi-cloud automation.",
		Level:        "Associate",
		OfficialLink: "https://developer.hashicorp.com/certifications/infrastructure-automation",
	},
	{
		ID:           "github_as",
		Name:         "GitHub Advanced Security",
		Description:  "Expertise in implementing security tools and practices within GitHub repositories and workflows.",
		Level:        "Specialist",
		OfficialLink: "https://github.com/features/security",
	},
}
