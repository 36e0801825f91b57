package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJobPayloadValid(t *testing.T) {
	payload := []byte(`{
		"title": "Backend Engineer",
		"experience_required": "3+ years",
		"skills": [{"name": "Python", "weight": 70}, {"name": "SQL", "weight": 30}]
	}`)

	assert.NoError(t, ValidateJobPayload(payload))
}

func TestValidateJobPayloadPlainSkillNames(t *testing.T) {
	payload := []byte(`{"job_title": "Analyst", "skills": ["Excel", "SQL"]}`)

	assert.NoError(t, ValidateJobPayload(payload))
}

func TestValidateJobPayloadMissingTitle(t *testing.T) {
	payload := []byte(`{"skills": ["Python"]}`)

	err := ValidateJobPayload(payload)

	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateJobPayloadWeightOutOfRange(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "skills": [{"name": "Python", "weight": 500}]}`)

	err := ValidateJobPayload(payload)

	assert.Error(t, err)
}

func TestValidateCandidatePayloadValid(t *testing.T) {
	payload := []byte(`{
		"identifier": "resume_001.pdf",
		"name": "Jane Doe",
		"total_experience_years": 5.5,
		"skills": ["Python", "SQL"]
	}`)

	assert.NoError(t, ValidateCandidatePayload(payload))
}

func TestValidateCandidatePayloadFilenameIdentifier(t *testing.T) {
	payload := []byte(`{"filename": "cv.docx", "skills": ["Go"]}`)

	assert.NoError(t, ValidateCandidatePayload(payload))
}

func TestValidateCandidatePayloadMissingIdentifier(t *testing.T) {
	payload := []byte(`{"name": "Anon", "skills": ["Go"]}`)

	err := ValidateCandidatePayload(payload)

	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateCandidatePayloadStringExperience(t *testing.T) {
	payload := []byte(`{"identifier": "c1", "total_experience": "7 years"}`)

	assert.NoError(t, ValidateCandidatePayload(payload))
}
