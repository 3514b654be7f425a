package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the visual role of a resume line.
type Kind int

const (
	KindHeader Kind = iota
	KindSubheader
	KindBullet
	KindContact
	KindSkills
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSubheader:
		return "subheader"
	case KindBullet:
		return "bullet"
	case KindContact:
		return "contact"
	case KindSkills:
		return "skills"
	default:
		return "paragraph"
	}
}

// Block is one line of output with its role.
type Block struct {
	Kind Kind
	Text string
}

var (
	sectionHeaders = []string{
		"CONTACT INFORMATION", "PROFESSIONAL SUMMARY", "PROFESSIONAL EXPERIENCE",
		"TECHNICAL SKILLS", "EDUCATION", "PROJECTS", "CERTIFICATIONS",
	}
	titleWords = []string{
		"ENGINEER", "DEVELOPER", "MANAGER", "ANALYST", "SPECIALIST",
		"INTERN", "CONSULTANT", "COORDINATOR", "DIRECTOR", "ASSOCIATE",
	}
	degreeWords   = []string{"BACHELOR", "MASTER", "B.TECH", "M.TECH", "MBA", "PHD", "B.S.", "M.S."}
	recentYears   = []string{"2020", "2021", "2022", "2023", "2024", "2025"}
	contactTokens = []string{"@", "phone", "linkedin", "github"}
)

// longLineChars is the length above which paragraphs are split into sentences.
const longLineChars = 100

// Classify returns the role of a trimmed, non-empty line. The first matching
// rule wins.
func Classify(line string) Kind {
	upper := strings.ToUpper(line)
	lower := strings.ToLower(line)

	switch {
	case containsAny(upper, sectionHeaders):
		return KindHeader
	case isSubheader(line, upper, lower):
		return KindSubheader
	case strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
		return KindBullet
	case containsAny(lower, contactTokens) ||
		(len(strings.Fields(line)) <= 3 && !hasDigit(line) && utf8.RuneCountInString(line) > 5):
		return KindContact
	case strings.Contains(line, ",") && len(strings.Split(line, ",")) > 2:
		return KindSkills
	default:
		return KindParagraph
	}
}

func isSubheader(line, upper, lower string) bool {
	recent := containsAny(line, recentYears)
	if containsAny(upper, titleWords) &&
		(strings.Contains(line, "–") || strings.Contains(line, "|") || strings.Contains(lower, "at") || recent) {
		return true
	}
	return containsAny(upper, degreeWords) && recent
}

// Layout classifies every non-empty line of text. Skill lists are re-joined
// with bullets and long paragraphs are split at sentence boundaries.
func Layout(text string) []Block {
	var blocks []Block
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		kind := Classify(line)
		switch kind {
		case KindSkills:
			parts := strings.Split(line, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			blocks = append(blocks, Block{Kind: kind, Text: strings.Join(parts, " • ")})
		case KindParagraph:
			if utf8.RuneCountInString(line) <= longLineChars {
				blocks = append(blocks, Block{Kind: kind, Text: line})
				continue
			}
			sentences := strings.Split(line, ". ")
			for i, s := range sentences {
				if strings.TrimSpace(s) == "" {
					continue
				}
				if i < len(sentences)-1 {
					s += "."
				}
				blocks = append(blocks, Block{Kind: kind, Text: strings.TrimSpace(s)})
			}
		default:
			blocks = append(blocks, Block{Kind: kind, Text: line})
		}
	}
	return blocks
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
