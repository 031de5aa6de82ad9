package scoring

import (
	"math"
	"testing"
)

func sampleFeatures() ResumeFeatures {
	return ResumeFeatures{
		Tokens:          []string{"go", "postgres", "docker", "kubernetes", "rest"},
		Skills:          []string{"Go", "PostgreSQL", "Docker"},
		YearsExperience: 4,
		DegreeLevel:     3,
		WordCount:       420,
		SectionCount:    4,
		HasContactInfo:  true,
	}
}

func sampleJob() JobProfile {
	return JobProfile{
		Keywords:       []string{"go", "postgres", "grpc", "rest"},
		RequiredSkills: []string{"Go", "Docker", "Terraform"},
		RequiredYears:  5,
		RequiredDegree: 3,
	}
}

func TestScoreDeterministic(t *testing.T) {
	a := Score(sampleFeatures(), sampleJob())
	b := Score(sampleFeatures(), sampleJob())
	if a != b {
		t.Fatalf("score not deterministic: %+v vs %+v", a, b)
	}
}

func TestScoreWeightedIdentity(t *testing.T) {
	b := Score(sampleFeatures(), sampleJob())

	want := int(math.Round(
		WeightKeyword*float64(b.KeywordMatch) +
			WeightSkills*float64(b.SkillsMatch) +
			WeightExperience*float64(b.ExperienceMatch) +
			WeightEducation*float64(b.EducationMatch) +
			WeightQuality*float64(b.QualityScore)))
	if b.OverallScore != want {
		t.Fatalf("overall = %d, want weighted sum %d", b.OverallScore, want)
	}
}

func TestScoreRanges(t *testing.T) {
	cases := []struct {
		name string
		f    ResumeFeatures
		j    JobProfile
	}{
		{"full", sampleFeatures(), sampleJob()},
		{"empty resume", ResumeFeatures{}, sampleJob()},
		{"empty job", sampleFeatures(), JobProfile{}},
		{"both empty", ResumeFeatures{}, JobProfile{}},
		{"overqualified", ResumeFeatures{
			Tokens: []string{"go"}, Skills: []string{"Go"},
			YearsExperience: 20, DegreeLevel: 5, WordCount: 9000, SectionCount: 12, HasContactInfo: true,
		}, JobProfile{Keywords: []string{"go"}, RequiredSkills: []string{"Go"}, RequiredYears: 1, RequiredDegree: 1}},
	}
	for _, c := range cases {
		b := Score(c.f, c.j)
		for name, v := range map[string]int{
			"keyword":    b.KeywordMatch,
			"skills":     b.SkillsMatch,
			"experience": b.ExperienceMatch,
			"education":  b.EducationMatch,
			"quality":    b.QualityScore,
			"overall":    b.OverallScore,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s: %s score out of range: %d", c.name, name, v)
			}
		}
	}
}

func TestScoreEmptyResumeFlagged(t *testing.T) {
	b := Score(ResumeFeatures{}, sampleJob())
	if !b.InsufficientData {
		t.Fatalf("expected insufficient data flag for empty features")
	}
	if b.OverallScore != 0 {
		t.Fatalf("empty resume should score 0, got %d", b.OverallScore)
	}
}

func TestSubScores(t *testing.T) {
	if got := keywordMatch([]string{"Go", "rest"}, []string{"go", "grpc"}); got != 50 {
		t.Fatalf("keywordMatch = %d, want 50", got)
	}
	if got := skillsMatch([]string{"go", "docker"}, []string{"GO", "Docker"}); got != 100 {
		t.Fatalf("skillsMatch = %d, want 100", got)
	}
	if got := experienceMatch(2, 4); got != 50 {
		t.Fatalf("experienceMatch = %d, want 50", got)
	}
	if got := experienceMatch(10, 4); got != 100 {
		t.Fatalf("experienceMatch capped = %d, want 100", got)
	}
	if got := educationMatch(2, 4); got != 50 {
		t.Fatalf("educationMatch = %d, want 50", got)
	}
	if got := educationMatch(4, 2); got != 100 {
		t.Fatalf("educationMatch above requirement = %d, want 100", got)
	}
}
