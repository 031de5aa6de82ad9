package resume

import "strings"

// The requisition side mirrors the résumé side: the free-text job
// description is the only input, so the required skills, years and degree
// come from the same dictionaries the extractor uses.

func KeywordsToSkills(description string) []string {
	return matchSkills(strings.ToLower(description))
}

func RequiredYearsFromDescription(description string) int {
	return extractYears(strings.ToLower(description))
}

func RequiredDegreeFromDescription(description string) int {
	return extractDegreeLevel(strings.ToLower(description))
}
