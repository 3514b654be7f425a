package rewrite

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
)

const (
	contactHeader    = "CONTACT INFORMATION"
	summaryHeader    = "PROFESSIONAL SUMMARY"
	experienceHeader = "PROFESSIONAL EXPERIENCE"
	skillsHeader     = "TECHNICAL SKILLS"
	educationHeader  = "EDUCATION"
	projectsHeader   = "PROJECTS"

	shortSummary = "Experienced professional seeking to leverage skills and expertise in a challenging role."
	longSummary  = "Experienced professional with a strong background in technology and problem-solving. Seeking opportunities to contribute technical expertise and drive impactful results."

	// smartSummaryMaxChars limits where the smart fallback adds a summary.
	smartSummaryMaxChars = 1000
)

type replacement struct{ old, new string }

var safeReplacements = []replacement{
	{"worked on", "developed"},
	{"helped with", "assisted in"},
	{"was responsible for", "managed"},
	{"took care of", "maintained"},
}

var verbReplacements = compileReplacements([]replacement{
	{"worked on", "developed"},
	{"helped with", "assisted in"},
	{"did", "executed"},
	{"made", "created"},
	{"was responsible for", "managed"},
	{"was in charge of", "led"},
	{"took care of", "maintained"},
	{"dealt with", "handled"},
})

type compiledReplacement struct {
	re  *regexp.Regexp
	new string
}

func compileReplacements(rs []replacement) []compiledReplacement {
	out := make([]compiledReplacement, len(rs))
	for i, r := range rs {
		out[i] = compiledReplacement{re: regexp.MustCompile(`\b` + regexp.QuoteMeta(r.old) + `\b`), new: r.new}
	}
	return out
}

type section struct {
	header   string
	keywords []string
}

var sections = []section{
	{summaryHeader, []string{"SUMMARY", "OBJECTIVE", "PROFILE"}},
	{experienceHeader, []string{"EXPERIENCE", "WORK", "EMPLOYMENT"}},
	{skillsHeader, []string{"SKILLS", "TECHNICAL", "COMPETENCIES"}},
	{educationHeader, []string{"EDUCATION", "DEGREE", "UNIVERSITY", "COLLEGE"}},
	{projectsHeader, []string{"PROJECTS", "PROJECT"}},
}

var bulletVerbs = []string{"developed", "created", "managed", "led", "implemented"}

// SmartFallback applies conservative edits and keeps them only if they raise
// the score. It then tries StructuredFallback and finally returns the trimmed
// original.
func SmartFallback(text string) resume.Outcome {
	original := ats.Score(text)
	enhanced := text

	if !strings.Contains(strings.ToUpper(enhanced), "CONTACT") {
		lines := strings.Split(enhanced, "\n")
		for i, line := range lines {
			if strings.Contains(line, "@") || looksLikeName(line) {
				lines = insertAt(lines, i, contactHeader, "")
				break
			}
		}
		enhanced = strings.Join(lines, "\n")
	}

	for _, r := range safeReplacements {
		enhanced = strings.ReplaceAll(enhanced, r.old, r.new)
	}

	upper := strings.ToUpper(enhanced)
	if !strings.Contains(upper, "SUMMARY") && !strings.Contains(upper, "OBJECTIVE") &&
		utf8.RuneCountInString(enhanced) < smartSummaryMaxChars {
		lines := strings.Split(enhanced, "\n")
		pos := 0
		for i, line := range lines {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "@") || strings.Contains(lower, "phone") || strings.Contains(lower, "linkedin") {
				pos = i + 2
				break
			}
		}
		if pos > 0 {
			lines = insertAt(lines, pos, summaryHeader, shortSummary, "")
			enhanced = strings.Join(lines, "\n")
		}
	}

	if ats.Score(enhanced) > original {
		return resume.Outcome{Text: enhanced, Source: resume.SourceSmartFallback}
	}

	structured := StructuredFallback(text)
	if ats.Score(structured) > original {
		return resume.Outcome{Text: structured, Source: resume.SourceStructuredFallback}
	}

	return resume.Outcome{Text: strings.TrimSpace(text), Source: resume.SourceOriginal}
}

// StructuredFallback rebuilds the resume under standard section headers,
// strengthening verbs and bulleting achievement lines. It does not check the
// score.
func StructuredFallback(text string) string {
	lines := strings.Split(text, "\n")

	var name, email, phone string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(line, "@") && email == "":
			email = line
		case containsAny(lower, "phone", "+", "(", ")") && phone == "":
			phone = line
		case name == "" && looksLikeName(line):
			name = line
		}
	}

	var out []string
	if name != "" {
		out = append(out, contactHeader, "", name)
		if email != "" {
			out = append(out, email)
		}
		if phone != "" {
			out = append(out, phone)
		}
		out = append(out, "")
	}

	current := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || line == name || line == email || line == phone {
			continue
		}

		if header, ok := sectionHeader(line); ok {
			current = header
			out = append(out, header, "")
			continue
		}

		for _, r := range verbReplacements {
			line = r.re.ReplaceAllString(line, r.new)
		}

		if (current == experienceHeader || current == projectsHeader) &&
			!strings.HasPrefix(line, "•") && containsAny(strings.ToLower(line), bulletVerbs...) {
			line = "• " + line
		}
		out = append(out, line)
	}

	if !strings.Contains(strings.Join(out, "\n"), summaryHeader) {
		idx := 0
		if len(out) > 0 && out[0] == contactHeader {
			idx = 1
		}
		for idx < len(out) && strings.TrimSpace(out[idx]) != "" {
			idx++
		}
		out = insertAt(out, idx+1, summaryHeader, "", longSummary, "")
	}

	return strings.Join(out, "\n")
}

func sectionHeader(line string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, s := range sections {
		if containsAny(upper, s.keywords...) {
			return s.header, true
		}
	}
	return "", false
}

// looksLikeName matches short lines without digits, including blank ones.
func looksLikeName(line string) bool {
	return len(strings.Fields(line)) <= 3 && strings.IndexFunc(line, unicode.IsDigit) < 0
}

// insertAt inserts vals at i, appending when i is past the end.
func insertAt(lines []string, i int, vals ...string) []string {
	i = max(0, min(i, len(lines)))
	out := make([]string, 0, len(lines)+len(vals))
	out = append(out, lines[:i]...)
	out = append(out, vals...)
	return append(out, lines[i:]...)
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
