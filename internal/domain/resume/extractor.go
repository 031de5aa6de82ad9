package resume

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"talentflow/internal/domain/scoring"
)

var ErrNoUsableText = errors.New("resume contains no usable text")

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}\d`)
	yearsRe = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years?|yrs?)`)
)

var sectionHeadings = []string{
	"experience", "education", "skills", "projects", "summary",
	"certifications", "work history", "employment", "awards", "publications",
}

var degreeLevels = []struct {
	keyword string
	level   int
}{
	{"phd", 5}, {"doctorate", 5},
	{"master", 4}, {"mba", 4}, {"msc", 4}, {"m.s", 4},
	{"bachelor", 3}, {"bsc", 3}, {"b.s", 3}, {"b.tech", 3}, {"undergraduate", 3},
	{"diploma", 2}, {"associate", 2},
	{"high school", 1},
}

// Extract derives scoring features from plain résumé text. It only fails
// when the text carries no signal at all; thin résumés still produce a
// best-effort feature set.
func Extract(text string) (scoring.ResumeFeatures, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return scoring.ResumeFeatures{}, ErrNoUsableText
	}

	lower := strings.ToLower(text)
	tokens := tokenize(lower)
	if len(tokens) == 0 {
		return scoring.ResumeFeatures{}, ErrNoUsableText
	}

	f := scoring.ResumeFeatures{
		Tokens:          tokens,
		Skills:          matchSkills(lower),
		YearsExperience: extractYears(lower),
		DegreeLevel:     extractDegreeLevel(lower),
		WordCount:       len(strings.Fields(text)),
		SectionCount:    countSections(lower),
		HasContactInfo:  emailRe.MatchString(text) || phoneRe.MatchString(text),
	}
	return f, nil
}

// KeywordsFromDescription builds the requisition-side keyword list from the
// free-text job description: deduplicated meaningful tokens.
func KeywordsFromDescription(description string) []string {
	return tokenize(strings.ToLower(description))
}

func tokenize(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '+' && r != '#' && r != '.'
	})
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		w = strings.Trim(w, ".")
		if len(w) < 2 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func matchSkills(lower string) []string {
	out := make([]string, 0, 16)
	for _, s := range knownSkills {
		if strings.Contains(lower, strings.ToLower(s)) {
			out = append(out, s)
		}
	}
	return out
}

func extractYears(lower string) int {
	best := 0
	for _, m := range yearsRe.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best && n <= 50 {
			best = n
		}
	}
	return best
}

func extractDegreeLevel(lower string) int {
	for _, d := range degreeLevels {
		if strings.Contains(lower, d.keyword) {
			return d.level
		}
	}
	return 0
}

func countSections(lower string) int {
	n := 0
	for _, h := range sectionHeadings {
		if strings.Contains(lower, h) {
			n++
		}
	}
	return n
}
