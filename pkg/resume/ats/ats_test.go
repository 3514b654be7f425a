package ats_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
)

const strongResume = `Jane Doe
Email: jane@example.com | Phone: (555) 123-4567 | linkedin.com/in/janedoe | City, State
Summary
Senior software engineer with eight years building distributed systems.
Led teams that shipped reliable payment platforms at scale.
Experience
Senior Developer, Acme Corp, Jan 2019 - 03/2023
Developed a billing service that increased revenue by 25% and reduced costs by $40000.
Managed a team of 5+ engineers and implemented CI pipelines.
Skills
Python, Java, SQL, Docker, AWS, Git, leadership, communication
AWS Certified Solutions Architect
Education
Bachelor of Science, State University, GPA 3.9, honors
`

func TestScore_Bounds(t *testing.T) {
	cases := []string{"", "x", strongResume, strings.Repeat(strongResume, 10)}
	for _, text := range cases {
		s := ats.Score(text)
		if s < 0 || s > 100 {
			t.Fatalf("score %d out of range for %d chars", s, len(text))
		}
	}
}

func TestScore_EmptyTextIsZero(t *testing.T) {
	if s := ats.Score(""); s != 0 {
		t.Fatalf("expected 0, got %d", s)
	}
}

func TestScore_Deterministic(t *testing.T) {
	if ats.Score(strongResume) != ats.Score(strongResume) {
		t.Fatal("score must be deterministic")
	}
}

func TestAnalyze_Contact(t *testing.T) {
	b := ats.Analyze("email me at a@b.com phone linkedin address")
	if b.Contact != 15 {
		t.Fatalf("expected full contact score, got %d", b.Contact)
	}

	b = ats.Analyze("reach me at a@b.com")
	if b.Contact != 5 {
		t.Fatalf("expected 5, got %d", b.Contact)
	}
}

func TestAnalyze_Summary(t *testing.T) {
	text := "Summary\nThis line is definitely longer than twenty chars\nshort\nAnother line that is long enough to count\n"
	b := ats.Analyze(text)
	if b.Summary != 6 {
		t.Fatalf("expected 6, got %d", b.Summary)
	}

	if b := ats.Analyze("no header here"); b.Summary != 0 {
		t.Fatalf("expected 0 without header, got %d", b.Summary)
	}
}

func TestAnalyze_SummaryCapped(t *testing.T) {
	long := strings.Repeat("a long descriptive sentence here\n", 4)
	b := ats.Analyze("Profile\n" + long)
	if b.Summary != ats.MaxSummary {
		t.Fatalf("expected %d, got %d", ats.MaxSummary, b.Summary)
	}
}

func TestAnalyze_Experience(t *testing.T) {
	b := ats.Analyze("experience engineer 2020")
	// 5 base + 1 date pattern + 2 for one job indicator
	if b.Experience != 8 {
		t.Fatalf("expected 8, got %d", b.Experience)
	}

	if b := ats.Analyze("engineer 2020"); b.Experience != 0 {
		t.Fatalf("expected 0 without section keyword, got %d", b.Experience)
	}
}

func TestAnalyze_SkillsAndEducation(t *testing.T) {
	b := ats.Analyze("skills: python, docker, leadership. certified")
	if b.Skills != 5+2+1+3 {
		t.Fatalf("unexpected skills score %d", b.Skills)
	}

	b = ats.Analyze("education: master of science, gpa 4.0")
	// 5 base + 3 for master + 4 for honors marker
	if b.Education != 12 {
		t.Fatalf("unexpected education score %d", b.Education)
	}
}

func TestAnalyze_Penalties(t *testing.T) {
	short := ats.Analyze("tiny")
	if short.Penalty != 10 {
		t.Fatalf("expected short penalty 10, got %d", short.Penalty)
	}

	generic := strings.Repeat("x", 300) + " responsible for, worked on, helped with, assisted in"
	if p := ats.Analyze(generic).Penalty; p != 5 {
		t.Fatalf("expected generic phrase penalty 5, got %d", p)
	}

	long := strings.Repeat("word ", 1100)
	if p := ats.Analyze(long).Penalty; p != 5 {
		t.Fatalf("expected long penalty 5, got %d", p)
	}
}

func TestAnalyze_TotalMatchesParts(t *testing.T) {
	b := ats.Analyze(strongResume)
	sum := b.Contact + b.Summary + b.Experience + b.Skills + b.Education + b.ActionVerbs + b.Structure - b.Penalty
	if sum > 100 {
		sum = 100
	}
	if sum < 0 {
		sum = 0
	}
	if b.Total != sum {
		t.Fatalf("total %d does not match parts %d", b.Total, sum)
	}
	if b.Total < 60 {
		t.Fatalf("strong resume scored too low: %+v", b)
	}
}

func TestAnalyze_SummaryDuplicateHeaderUsesFirstLine(t *testing.T) {
	// Both "Summary" lines resolve to the first one, whose window is empty.
	text := "Summary\nshort\nx\ny\nz\nSummary\nAnother substantial line over twenty chars"
	if b := ats.Analyze(text); b.Summary != 0 {
		t.Fatalf("expected 0, got %d", b.Summary)
	}
}

func TestAnalyze_Caps(t *testing.T) {
	b := ats.Analyze("experience " + strings.Repeat("10% ", 20))
	// 5 base + quantified results capped at 6
	if b.Experience != 11 {
		t.Fatalf("expected 11, got %d", b.Experience)
	}

	b = ats.Analyze(strings.Join(ats.ActionVerbs, " "))
	if b.ActionVerbs != ats.MaxActionVerbs {
		t.Fatalf("expected %d, got %d", ats.MaxActionVerbs, b.ActionVerbs)
	}

	b = ats.Analyze("managed led developed")
	if b.ActionVerbs != 3 {
		t.Fatalf("expected 3, got %d", b.ActionVerbs)
	}
}

func TestAnalyze_StrongResumeBreakdown(t *testing.T) {
	want := ats.Breakdown{
		Contact:     15,
		Summary:     9,
		Experience:  17,
		Skills:      16,
		Education:   12,
		ActionVerbs: 5,
		Structure:   4,
		Penalty:     0,
		Total:       78,
	}
	if got := ats.Analyze(strongResume); got != want {
		t.Fatalf("breakdown = %+v, want %+v", got, want)
	}
}
