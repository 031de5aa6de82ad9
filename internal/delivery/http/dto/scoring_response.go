package dto

import (
	"talentflow/internal/domain/scoring"
	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type ScoreBreakdownResponse struct {
	KeywordMatch     int  `json:"keyword_match"`
	SkillsMatch      int  `json:"skills_match"`
	ExperienceMatch  int  `json:"experience_match"`
	EducationMatch   int  `json:"education_match"`
	QualityScore     int  `json:"quality_score"`
	OverallScore     int  `json:"overall_score"`
	InsufficientData bool `json:"insufficient_data"`
}

type ScoreResponse struct {
	ApplicationID uuid.UUID              `json:"application_id"`
	Breakdown     ScoreBreakdownResponse `json:"breakdown"`
}

func FromBreakdown(b scoring.Breakdown) ScoreBreakdownResponse {
	return ScoreBreakdownResponse{
		KeywordMatch:     b.KeywordMatch,
		SkillsMatch:      b.SkillsMatch,
		ExperienceMatch:  b.ExperienceMatch,
		EducationMatch:   b.EducationMatch,
		QualityScore:     b.QualityScore,
		OverallScore:     b.OverallScore,
		InsufficientData: b.InsufficientData,
	}
}

func FromScoreResult(r usecase.ScoreResult) ScoreResponse {
	return ScoreResponse{ApplicationID: r.ApplicationID, Breakdown: FromBreakdown(r.Breakdown)}
}

func FromScoreResults(items []usecase.ScoreResult) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromScoreResult(r))
	}
	return out
}
