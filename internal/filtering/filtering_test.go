package filtering

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

func candidatePool() *linkedin.Candidates {
	return &linkedin.Candidates{Items: []*linkedin.Profile{
		{
			LinkedInURL:          "https://www.linkedin.com/in/match",
			FullName:             "Full Match",
			Skills:               []string{"python", "sql"},
			TotalExperienceYears: 5,
			Location:             "Berlin, Germany",
		},
		{
			LinkedInURL:          "https://www.linkedin.com/in/no-skills",
			FullName:             "No Skills",
			Skills:               []string{"welding"},
			TotalExperienceYears: 10,
			Location:             "Berlin, Germany",
		},
		{
			LinkedInURL:          "https://www.linkedin.com/in/junior",
			FullName:             "Junior Dev",
			Skills:               []string{"python"},
			TotalExperienceYears: 1,
			Location:             "Berlin, Germany",
		},
		{
			LinkedInURL:          "https://www.linkedin.com/in/remote",
			FullName:             "No Location",
			Skills:               []string{"python"},
			TotalExperienceYears: 4,
		},
		{
			LinkedInURL:          "https://www.linkedin.com/in/elsewhere",
			FullName:             "Wrong City",
			Skills:               []string{"python"},
			TotalExperienceYears: 4,
			Location:             "Tokyo, Japan",
		},
	}}
}

func jobConfig() *Config {
	return &Config{
		Requirements: &jobdesc.Requirements{
			RequiredSkills:     []string{"python"},
			MinExperienceYears: 3,
			Location:           "Berlin",
		},
	}
}

func TestRunAppliesAllGates(t *testing.T) {
	report := NewReport()
	deps := Deps{Logger: zap.NewNop(), Report: report}

	steps := []Filter{NewRequiredSkills(), NewMinExperience(), NewLocation()}

	result, err := Run(context.Background(), jobConfig(), deps, steps, candidatePool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.linkedin.com/in/match",
		"https://www.linkedin.com/in/remote",
	}
	if result.Len() != len(want) {
		t.Fatalf("expected %d survivors, got %d: %v", len(want), result.Len(), result.URLs())
	}
	for i, url := range want {
		if result.Items[i].LinkedInURL != url {
			t.Fatalf("position %d: got %q, want %q (order must be preserved)", i, result.Items[i].LinkedInURL, url)
		}
	}

	if got := report.Reasons("https://www.linkedin.com/in/no-skills"); len(got) != 1 || got[0] != "no required skill matched" {
		t.Fatalf("unexpected reasons for skill drop: %v", got)
	}
	if got := report.Reasons("https://www.linkedin.com/in/junior"); len(got) != 1 {
		t.Fatalf("unexpected reasons for experience drop: %v", got)
	}
	if got := report.Reasons("https://www.linkedin.com/in/elsewhere"); len(got) != 1 {
		t.Fatalf("unexpected reasons for location drop: %v", got)
	}
}

func TestGatesDisabledByUnsetRequirements(t *testing.T) {
	deps := Deps{Logger: zap.NewNop(), Report: NewReport()}
	cfg := &Config{Requirements: &jobdesc.Requirements{}}

	pool := candidatePool()
	result, err := Run(context.Background(), cfg, deps, []Filter{NewRequiredSkills(), NewMinExperience(), NewLocation()}, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Len() != pool.Len() {
		t.Fatalf("unconstrained job must pass everyone, got %d of %d", result.Len(), pool.Len())
	}
}

func TestSkillsOverlapIsLoose(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "equal", a: "python", b: "python", want: true},
		{name: "candidate broader", a: "machine learning engineer", b: "machine learning", want: true},
		{name: "job broader", a: "sql", b: "postgresql", want: true},
		{name: "disjoint", a: "welding", b: "python", want: false},
		{name: "empty", a: "", b: "python", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := skillsOverlap(tc.a, tc.b); got != tc.want {
				t.Fatalf("skillsOverlap(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestContactedFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacted.json")

	list := &linkedin.ContactedList{}
	list.AppendProfiles([]*linkedin.Profile{
		{LinkedInURL: "https://www.linkedin.com/in/match", FullName: "Full Match"},
	}, time.Now())
	if err := list.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := NewReport()
	deps := Deps{Logger: zap.NewNop(), Report: report}
	cfg := &Config{Requirements: &jobdesc.Requirements{}, ContactedFile: path}

	result, err := Run(context.Background(), cfg, deps, []Filter{NewContacted()}, candidatePool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Len() != 4 {
		t.Fatalf("expected 4 survivors, got %d", result.Len())
	}
	if result.FindByURL("https://www.linkedin.com/in/match") != nil {
		t.Fatalf("contacted candidate should be dropped")
	}
	if got := report.Reasons("https://www.linkedin.com/in/match"); len(got) != 1 || got[0] != "already contacted" {
		t.Fatalf("unexpected reasons: %v", got)
	}
}

func TestContactedFilterWithoutFilePasses(t *testing.T) {
	deps := Deps{Logger: zap.NewNop(), Report: NewReport()}
	cfg := &Config{Requirements: &jobdesc.Requirements{}}

	pool := candidatePool()
	result, err := Run(context.Background(), cfg, deps, []Filter{NewContacted()}, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Len() != pool.Len() {
		t.Fatalf("expected pass-through, got %d of %d", result.Len(), pool.Len())
	}
}
