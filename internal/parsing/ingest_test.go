package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultWeight = 50

func TestIngestJobWeightedSkillList(t *testing.T) {
	payload := []byte(`{
		"title": "Backend Engineer",
		"required_experience": {"min": 3, "max": 6},
		"skills": [{"name": "Python", "weight": 70}, {"name": "SQL", "weight": 30}]
	}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", job.Title)
	require.NotNil(t, job.RequiredExperience)
	assert.Equal(t, 3.0, job.RequiredExperience.MinYears)
	require.NotNil(t, job.RequiredExperience.MaxYears)
	assert.Equal(t, 6.0, *job.RequiredExperience.MaxYears)
	require.Len(t, job.Skills, 2)
	assert.Equal(t, 70, job.Skills[0].Weight)
}

func TestIngestJobAcceptsJobTitleVariant(t *testing.T) {
	payload := []byte(`{"job_title": "Data Analyst", "skills": ["Excel"]}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", job.Title)
}

func TestIngestJobMissingTitle(t *testing.T) {
	_, err := IngestJob([]byte(`{"skills": ["Python"]}`), defaultWeight)

	require.Error(t, err)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestIngestJobPlainSkillNamesGetDefaultWeight(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "skills": ["Python", "Docker"]}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.Len(t, job.Skills, 2)
	assert.Equal(t, defaultWeight, job.Skills[0].Weight)
	assert.Equal(t, defaultWeight, job.Skills[1].Weight)
}

func TestIngestJobWeightageMapOverridesListWeights(t *testing.T) {
	payload := []byte(`{
		"title": "Engineer",
		"skills": ["Python", "SQL"],
		"skills_weightage": {"python": 80}
	}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.Len(t, job.Skills, 2)
	assert.Equal(t, 80, job.Skills[0].Weight)
	assert.Equal(t, defaultWeight, job.Skills[1].Weight)
}

func TestIngestJobPrimarySecondarySkills(t *testing.T) {
	payload := []byte(`{
		"title": "Engineer",
		"primary_skills": ["Go"],
		"secondary_skills": ["Terraform"]
	}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.Len(t, job.Skills, 2)
	assert.Equal(t, "Go", job.Skills[0].Name)
	assert.Equal(t, "Terraform", job.Skills[1].Name)
}

func TestIngestJobNumericExperience(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "experience_required": 4}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.NotNil(t, job.RequiredExperience)
	assert.Equal(t, 4.0, job.RequiredExperience.MinYears)
	assert.Nil(t, job.RequiredExperience.MaxYears)
}

func TestIngestJobFreeTextExperiencePlus(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "experience_required": "3+ years"}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.NotNil(t, job.RequiredExperience)
	assert.Equal(t, 3.0, job.RequiredExperience.MinYears)
	assert.Nil(t, job.RequiredExperience.MaxYears)
}

func TestIngestJobFreeTextExperienceRange(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "experience_required": "2-5 years"}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	require.NotNil(t, job.RequiredExperience)
	assert.Equal(t, 2.0, job.RequiredExperience.MinYears)
	require.NotNil(t, job.RequiredExperience.MaxYears)
	assert.Equal(t, 5.0, *job.RequiredExperience.MaxYears)
}

func TestIngestJobZeroExperienceMeansNoRequirement(t *testing.T) {
	payload := []byte(`{"title": "Engineer", "experience_required": 0}`)

	job, err := IngestJob(payload, defaultWeight)
	require.NoError(t, err)

	assert.Nil(t, job.RequiredExperience)
}

func TestIngestJobMalformedPayload(t *testing.T) {
	_, err := IngestJob([]byte(`{"title": `), defaultWeight)

	require.Error(t, err)
	var ingestErr *IngestError
	assert.ErrorAs(t, err, &ingestErr)
}

func TestIngestCandidateFullPayload(t *testing.T) {
	payload := []byte(`{
		"identifier": "resume_001.pdf",
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+1 555 0100",
		"linkedin": "https://linkedin.com/in/janedoe",
		"total_experience_years": 5.5,
		"skills": ["Python", "SQL", "Docker"]
	}`)

	profile, err := IngestCandidate(payload)
	require.NoError(t, err)

	assert.Equal(t, "resume_001.pdf", profile.Identifier)
	assert.Equal(t, "Jane Doe", profile.Name)
	require.NotNil(t, profile.TotalExperienceYears)
	assert.Equal(t, 5.5, *profile.TotalExperienceYears)
	assert.Contains(t, profile.Links, "https://linkedin.com/in/janedoe")
	assert.Len(t, profile.Skills, 3)
}

func TestIngestCandidateFallsBackToFilename(t *testing.T) {
	profile, err := IngestCandidate([]byte(`{"filename": "cv.docx", "skills": ["Go"]}`))
	require.NoError(t, err)

	assert.Equal(t, "cv.docx", profile.Identifier)
}

func TestIngestCandidateMissingIdentifier(t *testing.T) {
	_, err := IngestCandidate([]byte(`{"name": "Anon", "skills": ["Go"]}`))

	require.Error(t, err)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "identifier", fieldErr.Field)
}

func TestIngestCandidateStringExperience(t *testing.T) {
	profile, err := IngestCandidate([]byte(`{"identifier": "c1", "total_experience": "7 years"}`))
	require.NoError(t, err)

	require.NotNil(t, profile.TotalExperienceYears)
	assert.Equal(t, 7.0, *profile.TotalExperienceYears)
}

func TestIngestCandidateMissingExperienceStaysUnknown(t *testing.T) {
	profile, err := IngestCandidate([]byte(`{"identifier": "c1", "skills": ["Go"]}`))
	require.NoError(t, err)

	assert.Nil(t, profile.TotalExperienceYears)
}

func TestIngestCandidateNegativeExperienceClampedToZero(t *testing.T) {
	profile, err := IngestCandidate([]byte(`{"identifier": "c1", "total_experience_years": -2}`))
	require.NoError(t, err)

	require.NotNil(t, profile.TotalExperienceYears)
	assert.Equal(t, 0.0, *profile.TotalExperienceYears)
}

func TestIngestCandidateDropsBlankSkills(t *testing.T) {
	profile, err := IngestCandidate([]byte(`{"identifier": "c1", "skills": ["Go", "  ", "SQL"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
}
