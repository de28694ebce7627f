package interview

import "testing"

func TestQuestionWords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "filters short words and trims punctuation",
			question: "How do you design scalable systems?",
			want:     []string{"design", "scalable", "systems"},
		},
		{
			name:     "lowercases",
			question: "Which DATABASE would you CHOOSE?",
			want:     []string{"which", "database", "would", "choose"},
		},
		{
			name:     "empty input",
			question: "",
			want:     []string{},
		},
		{
			name:     "only short words",
			question: "Why is it so?",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := questionWords(tt.question)
			if len(got) != len(tt.want) {
				t.Fatalf("questionWords(%q) = %v, want %v", tt.question, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("word[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical questions",
			a:    "How do you design scalable systems?",
			b:    "How do you design scalable systems?",
			want: 1.0,
		},
		{
			name: "no overlap",
			a:    "Which database would you choose?",
			b:    "Describe your testing strategy please.",
			want: 0.0,
		},
		{
			name: "empty side scores zero",
			a:    "",
			b:    "How do you design scalable systems?",
			want: 0.0,
		},
		{
			name: "repeated words counted once",
			a:    "systems systems systems design?",
			b:    "systems design practices review?",
			want: 0.5, // shared {systems, design} over min word count 4
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	a := "How do you design scalable backend systems?"
	b := "How do you monitor scalable backend services?"

	got := similarity(a, b)
	if got <= 0 || got >= 1 {
		t.Fatalf("similarity = %v, want partial overlap strictly between 0 and 1", got)
	}
}

func TestTooSimilar(t *testing.T) {
	asked := []string{
		"How do you design scalable backend systems?",
		"What caching layers have you operated?",
	}

	tests := []struct {
		name      string
		candidate string
		threshold float64
		want      bool
	}{
		{
			name:      "near duplicate rejected",
			candidate: "How would you design scalable backend systems?",
			threshold: 0.5,
			want:      true,
		},
		{
			name:      "fresh question accepted",
			candidate: "Tell us which deployment pipeline tooling worked well?",
			threshold: 0.5,
			want:      false,
		},
		{
			name:      "threshold is exclusive",
			candidate: "How would you design scalable backend systems?",
			threshold: 1.0,
			want:      false,
		},
		{
			name:      "empty asked list",
			candidate: "How do you design scalable backend systems?",
			threshold: 0.5,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := asked
			if tt.name == "empty asked list" {
				list = nil
			}
			if got := tooSimilar(tt.candidate, list, tt.threshold); got != tt.want {
				t.Errorf("tooSimilar(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}
