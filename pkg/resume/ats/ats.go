// Package ats scores resume text against a fixed applicant tracking rubric.
//
// The rubric is keyword based and deterministic: the same text always gets
// the same score, which is what lets the enhancer compare a rewrite with the
// original and reject regressions.
package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Category caps.
const (
	MaxContact     = 15
	MaxSummary     = 10
	MaxExperience  = 25
	MaxSkills      = 20
	MaxEducation   = 15
	MaxActionVerbs = 10
	MaxStructure   = 5
)

// Breakdown is the per-category result of Analyze.
type Breakdown struct {
	Contact     int `json:"contact"`
	Summary     int `json:"summary"`
	Experience  int `json:"experience"`
	Skills      int `json:"skills"`
	Education   int `json:"education"`
	ActionVerbs int `json:"action_verbs"`
	Structure   int `json:"structure"`
	Penalty     int `json:"penalty"`
	Total       int `json:"total"`
}

var (
	phoneMarkers    = []string{"phone", "tel", "mobile", "+", "(", ")"}
	addressMarkers  = []string{"address", "city", "state", "zip"}
	summaryHeaders  = []string{"summary", "objective", "profile", "about"}
	experienceWords = []string{"experience", "work history", "employment", "professional experience"}
	jobIndicators   = []string{"manager", "developer", "analyst", "engineer", "specialist", "coordinator", "director", "intern"}
	skillsWords     = []string{"skills", "technical skills", "competencies", "technologies", "tools"}
	techSkills      = []string{"python", "java", "javascript", "sql", "html", "css", "react", "node", "aws", "azure", "docker", "git"}
	softSkills      = []string{"leadership", "communication", "teamwork", "problem solving", "analytical", "creative"}
	certWords       = []string{"certified", "certification", "license", "credential"}
	educationWords  = []string{"education", "degree", "university", "college", "bachelor", "master", "phd", "diploma"}
	degreeWords     = []string{"bachelor", "master", "phd", "doctorate", "associate", "diploma", "certificate"}
	honorWords      = []string{"gpa", "honors", "magna cum laude", "summa cum laude", "dean"}
	sectionWords    = []string{"contact", "summary", "experience", "skills", "education"}
	genericPhrases  = []string{"responsible for", "worked on", "helped with", "assisted in"}

	// ActionVerbs are the verbs rewarded by the language quality category.
	ActionVerbs = []string{
		"achieved", "managed", "led", "developed", "created", "implemented", "improved",
		"increased", "decreased", "optimized", "streamlined", "coordinated", "supervised",
		"analyzed", "designed", "built", "established", "launched", "delivered",
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{4}`),
		regexp.MustCompile(`jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`),
	}
	quantified = regexp.MustCompile(`\d+%|\$\d+|\d+\+|increased|decreased|improved|reduced`)
)

// Score returns the total score in [0, 100].
func Score(text string) int {
	return Analyze(text).Total
}

// Analyze scores text and returns the per-category breakdown.
func Analyze(text string) Breakdown {
	lower := strings.ToLower(text)

	b := Breakdown{
		Contact:     contactScore(lower),
		Summary:     summaryScore(text, lower),
		Experience:  experienceScore(lower),
		Skills:      skillsScore(lower),
		Education:   educationScore(lower),
		ActionVerbs: min(countPresent(lower, ActionVerbs), MaxActionVerbs),
		Structure:   min(countPresent(lower, sectionWords), MaxStructure),
		Penalty:     penalty(text, lower),
	}

	total := b.Contact + b.Summary + b.Experience + b.Skills + b.Education +
		b.ActionVerbs + b.Structure - b.Penalty
	b.Total = max(0, min(total, 100))
	return b
}

func contactScore(lower string) int {
	s := 0
	if strings.Contains(lower, "@") || strings.Contains(lower, "email") {
		s += 5
	}
	if containsAny(lower, phoneMarkers) {
		s += 3
	}
	if strings.Contains(lower, "linkedin") {
		s += 4
	}
	if containsAny(lower, addressMarkers) {
		s += 3
	}
	return min(s, MaxContact)
}

// summaryScore counts substantial lines (over 20 characters) within the four
// lines after every line mentioning a summary keyword. Duplicate header lines
// resolve to their first occurrence.
func summaryScore(text, lower string) int {
	if !containsAny(lower, summaryHeaders) {
		return 0
	}

	lines := strings.Split(text, "\n")
	first := make(map[string]int, len(lines))
	for i, line := range lines {
		if _, ok := first[line]; !ok {
			first[line] = i
		}
	}

	substantial := 0
	for _, line := range lines {
		if !containsAny(strings.ToLower(line), summaryHeaders) {
			continue
		}
		idx := first[line]
		for i := idx + 1; i < min(idx+5, len(lines)); i++ {
			if utf8.RuneCountInString(strings.TrimSpace(lines[i])) > 20 {
				substantial++
			}
		}
	}
	return min(substantial*3, MaxSummary)
}

func experienceScore(lower string) int {
	if !containsAny(lower, experienceWords) {
		return 0
	}

	s := 5
	dates := 0
	for _, re := range datePatterns {
		if re.MatchString(lower) {
			dates++
		}
	}
	s += min(dates, 8)
	s += min(countPresent(lower, jobIndicators)*2, 6)
	s += min(len(quantified.FindAllStringIndex(lower, -1)), 6)
	return min(s, MaxExperience)
}

func skillsScore(lower string) int {
	if !containsAny(lower, skillsWords) {
		return 0
	}

	s := 5
	s += min(countPresent(lower, techSkills), 8)
	s += min(countPresent(lower, softSkills), 4)
	if containsAny(lower, certWords) {
		s += 3
	}
	return min(s, MaxSkills)
}

func educationScore(lower string) int {
	if !containsAny(lower, educationWords) {
		return 0
	}

	s := 5
	s += min(countPresent(lower, degreeWords)*3, 6)
	if containsAny(lower, honorWords) {
		s += 4
	}
	return min(s, MaxEducation)
}

func penalty(text, lower string) int {
	p := 0
	switch n := utf8.RuneCountInString(text); {
	case n < 200:
		p += 10
	case n > 5000:
		p += 5
	}
	if countPresent(lower, genericPhrases) > 3 {
		p += 5
	}
	return p
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func countPresent(s string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			n++
		}
	}
	return n
}
