package jobs

import (
	"testing"
)

func TestExtractJobSkills(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "detects mixed case terms",
			description: "Expertise in React, TypeScript and Docker required. CI/CD experience a plus.",
			want:        []string{"react", "typescript", "docker", "ci/cd"},
		},
		{
			name:        "empty description",
			description: "",
			want:        nil,
		},
		{
			name:        "no vocabulary terms",
			description: "Great communication and teamwork expected.",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJobSkills(tt.description)
			if len(got) != len(tt.want) {
				t.Fatalf("extractJobSkills() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("skill[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCalculateSkillMatch(t *testing.T) {
	tests := []struct {
		name       string
		jobSkills  []string
		userSkills []string
		wantCommon int
		wantMatch  int
	}{
		{
			name:       "full overlap",
			jobSkills:  []string{"react", "docker"},
			userSkills: []string{"react", "docker"},
			wantCommon: 2,
			wantMatch:  100, // 100 + 10 bonus capped
		},
		{
			name:       "no overlap keeps the floor",
			jobSkills:  []string{"kotlin", "swift"},
			userSkills: []string{"python"},
			wantCommon: 0,
			wantMatch:  20,
		},
		{
			name:       "majority overlap earns bonus",
			jobSkills:  []string{"react", "docker", "aws"},
			userSkills: []string{"react", "aws"},
			wantCommon: 2,
			wantMatch:  77, // round(2/3*100)=67 plus 10
		},
		{
			name:       "no user skills scores zero",
			jobSkills:  []string{"react"},
			userSkills: nil,
			wantCommon: 0,
			wantMatch:  0,
		},
		{
			name:       "no job skills scores zero",
			jobSkills:  nil,
			userSkills: []string{"react"},
			wantCommon: 0,
			wantMatch:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			common, missing, match := calculateSkillMatch(tt.jobSkills, tt.userSkills)
			if len(common) != tt.wantCommon {
				t.Errorf("common = %v, want %d skills", common, tt.wantCommon)
			}
			if len(common)+len(missing) != 0 && len(common)+len(missing) != len(tt.jobSkills) {
				t.Errorf("common+missing = %d, want %d", len(common)+len(missing), len(tt.jobSkills))
			}
			if match != tt.wantMatch {
				t.Errorf("matchPercentage = %d, want %d", match, tt.wantMatch)
			}
		})
	}
}

func TestSkillMatchesAliases(t *testing.T) {
	tests := []struct {
		jobSkill  string
		userSkill string
		want      bool
	}{
		{"javascript", "js", true},
		{"typescript", "ts", true},
		{"react", "frontend development", true},
		{"node", "backend engineering", true},
		{"rest api", "rest", true}, // substring match
		{"kotlin", "python", false},
	}

	for _, tt := range tests {
		t.Run(tt.jobSkill+"/"+tt.userSkill, func(t *testing.T) {
			if got := skillMatches(tt.jobSkill, tt.userSkill); got != tt.want {
				t.Errorf("skillMatches(%q, %q) = %v, want %v", tt.jobSkill, tt.userSkill, got, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name        string
		searchTerms string
		location    string
		wantQuery   string
		wantCountry string
	}{
		{
			name:        "defaults",
			wantQuery:   "software development",
			wantCountry: "us",
		},
		{
			name:        "terms with location",
			searchTerms: "golang engineer",
			location:    "Berlin",
			wantQuery:   "golang engineer in Berlin",
			wantCountry: "us",
		},
		{
			name:        "indian city appends country",
			searchTerms: "backend",
			location:    "Bangalore",
			wantQuery:   "backend in Bangalore, India",
			wantCountry: "in",
		},
		{
			name:        "india already present",
			searchTerms: "backend",
			location:    "Mumbai, India",
			wantQuery:   "backend in Mumbai, India",
			wantCountry: "in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, country := buildQuery(tt.searchTerms, tt.location)
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if country != tt.wantCountry {
				t.Errorf("country = %q, want %q", country, tt.wantCountry)
			}
		})
	}
}
