package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCvRecord(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "full record",
			doc: `{
				"experience": [{"jobTitle": "Engineer", "company": "Acme", "period": "2020 - 2023", "description": "Work"}],
				"education": [{"degree": "BSc", "major": "CS", "institution": "MIT"}],
				"certifications": [{"title": "CKA", "issuer": "CNCF"}],
				"skills": ["Go"],
				"other": {"achievements": ["Award"], "languages": ["English"], "summary": "Dev", "interests": "Hiking"}
			}`,
		},
		{name: "empty object", doc: `{}`},
		{name: "null sections", doc: `{"experience": null, "skills": null, "other": null}`},
		{name: "extra fields pass through", doc: `{"skills": ["Go"], "hobbies": ["chess"]}`},
		{name: "skills not an array of strings", doc: `{"skills": [1, 2]}`, wantErr: true},
		{name: "experience not an array", doc: `{"experience": "none"}`, wantErr: true},
		{name: "entry field wrong type", doc: `{"experience": [{"jobTitle": 42}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCvRecord(tt.doc)
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "full result",
			doc: `{"candidates": [{"candidateName": "Jane", "recommendations": [
				{"certId": "aws_ccp", "certName": "AWS CCP", "reason": "Fits", "rulesApplied": ["rule 1"]}
			]}]}`,
		},
		{name: "empty candidates", doc: `{"candidates": []}`},
		{name: "null candidates", doc: `{"candidates": null}`},
		{name: "missing candidates key", doc: `{}`, wantErr: true},
		{name: "candidates not an array", doc: `{"candidates": "none"}`, wantErr: true},
		{name: "recommendation wrong type", doc: `{"candidates": [{"recommendations": [{"certId": 7}]}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecommendation(tt.doc)
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "missing.schema.json")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := ValidateCvRecord(`{not json`)
	assert.Error(t, err)
}
