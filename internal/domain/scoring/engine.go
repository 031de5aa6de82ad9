package scoring

import (
	"math"
	"strings"
)

// Fixed factor weights. They must sum to 1 so the overall score stays in
// the same 0-100 range as the sub-scores.
const (
	WeightKeyword    = 0.30
	WeightSkills     = 0.25
	WeightExperience = 0.20
	WeightEducation  = 0.15
	WeightQuality    = 0.10
)

// ResumeFeatures is what the extractor pulls out of one résumé.
type ResumeFeatures struct {
	Tokens          []string
	Skills          []string
	YearsExperience int
	DegreeLevel     int
	WordCount       int
	SectionCount    int
	HasContactInfo  bool
}

func (f ResumeFeatures) Empty() bool {
	return len(f.Tokens) == 0 && len(f.Skills) == 0 &&
		f.YearsExperience == 0 && f.DegreeLevel == 0 && f.WordCount == 0
}

// JobProfile is the requisition side of the comparison.
type JobProfile struct {
	Keywords       []string
	RequiredSkills []string
	RequiredYears  int
	RequiredDegree int
}

type Breakdown struct {
	KeywordMatch     int
	SkillsMatch      int
	ExperienceMatch  int
	EducationMatch   int
	QualityScore     int
	OverallScore     int
	InsufficientData bool
}

// Score compares one résumé's features against one job profile. Pure and
// deterministic: same inputs always yield the same breakdown.
func Score(f ResumeFeatures, job JobProfile) Breakdown {
	b := Breakdown{
		KeywordMatch:    keywordMatch(f.Tokens, job.Keywords),
		SkillsMatch:     skillsMatch(f.Skills, job.RequiredSkills),
		ExperienceMatch: experienceMatch(f.YearsExperience, job.RequiredYears),
		EducationMatch:  educationMatch(f.DegreeLevel, job.RequiredDegree),
		QualityScore:    qualityScore(f),
	}
	b.InsufficientData = f.Empty()
	b.OverallScore = Overall(b)
	return b
}

// Overall recombines the five sub-scores with the fixed weights.
func Overall(b Breakdown) int {
	total := WeightKeyword*float64(b.KeywordMatch) +
		WeightSkills*float64(b.SkillsMatch) +
		WeightExperience*float64(b.ExperienceMatch) +
		WeightEducation*float64(b.EducationMatch) +
		WeightQuality*float64(b.QualityScore)
	return clampScore(int(math.Round(total)))
}

func keywordMatch(tokens, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[normalize(t)] = true
	}
	hits := 0
	for _, k := range keywords {
		if seen[normalize(k)] {
			hits++
		}
	}
	return clampScore(int(math.Round(100 * float64(hits) / float64(len(keywords)))))
}

func skillsMatch(have, required []string) int {
	if len(required) == 0 {
		return 0
	}
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[normalize(s)] = true
	}
	hits := 0
	for _, s := range required {
		if set[normalize(s)] {
			hits++
		}
	}
	return clampScore(int(math.Round(100 * float64(hits) / float64(len(required)))))
}

func experienceMatch(years, required int) int {
	if required <= 0 {
		// Nothing asked for; any experience at all is a full match.
		if years > 0 {
			return 100
		}
		return 0
	}
	if years <= 0 {
		return 0
	}
	ratio := float64(years) / float64(required)
	if ratio > 1 {
		ratio = 1
	}
	return clampScore(int(math.Round(100 * ratio)))
}

func educationMatch(level, required int) int {
	if required <= 0 {
		if level > 0 {
			return 100
		}
		return 0
	}
	if level <= 0 {
		return 0
	}
	if level >= required {
		return 100
	}
	return clampScore(int(math.Round(100 * float64(level) / float64(required))))
}

// qualityScore is a structural heuristic over the résumé itself, independent
// of the job: enough text to mean something, recognizable sections, and
// reachable contact details.
func qualityScore(f ResumeFeatures) int {
	score := 0
	switch {
	case f.WordCount >= 300:
		score += 50
	case f.WordCount >= 100:
		score += 35
	case f.WordCount > 0:
		score += 15
	}
	switch {
	case f.SectionCount >= 4:
		score += 30
	case f.SectionCount >= 2:
		score += 20
	case f.SectionCount == 1:
		score += 10
	}
	if f.HasContactInfo {
		score += 20
	}
	return clampScore(score)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
