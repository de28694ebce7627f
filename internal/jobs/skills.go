package jobs

import "strings"

// possibleSkills is the fixed vocabulary scanned against job descriptions.
var possibleSkills = []string{
	"react", "javascript", "typescript", "node", "python", "java", "c++", "c#", ".net",
	"aws", "azure", "gcp", "docker", "kubernetes", "sql", "nosql", "mongodb", "postgres",
	"html", "css", "sass", "tailwind", "bootstrap", "git", "agile", "scrum", "jenkins",
	"ci/cd", "rest api", "graphql", "redux", "vue", "angular", "express", "django",
	"flutter", "swift", "kotlin", "android", "ios", "machine learning", "ai", "data science",
}

// extractJobSkills returns the vocabulary terms present in a job description.
func extractJobSkills(description string) []string {
	lower := strings.ToLower(description)
	var found []string
	for _, skill := range possibleSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// relatedSkills maps between shorthand and ecosystem terms so a resume
// saying "frontend" still matches a listing asking for "react".
func relatedSkills(a, b string) bool {
	switch {
	case a == "js" && b == "javascript", a == "javascript" && b == "js":
		return true
	case a == "ts" && b == "typescript", a == "typescript" && b == "ts":
		return true
	case a == "react" && strings.Contains(b, "frontend"), strings.Contains(a, "frontend") && b == "react":
		return true
	case a == "node" && strings.Contains(b, "backend"), strings.Contains(a, "backend") && b == "node":
		return true
	}
	return false
}

func skillMatches(jobSkill, userSkill string) bool {
	js := strings.ToLower(jobSkill)
	us := strings.ToLower(userSkill)
	if js == us {
		return true
	}
	if strings.Contains(us, js) || strings.Contains(js, us) {
		return true
	}
	return relatedSkills(js, us)
}

// calculateSkillMatch splits a job's skills into common and missing against
// the user's skills and scores a match percentage. The score is generous:
// any overlap gets at least 20, more than half overlap earns a 10 bonus,
// capped at 100.
func calculateSkillMatch(jobSkills, userSkills []string) (common, missing []string, matchPercentage int) {
	if len(userSkills) > 0 && len(jobSkills) > 0 {
		for _, skill := range jobSkills {
			matched := false
			for _, userSkill := range userSkills {
				if skillMatches(skill, userSkill) {
					matched = true
					break
				}
			}
			if matched {
				common = append(common, skill)
			} else {
				missing = append(missing, skill)
			}
		}
	}

	if len(jobSkills) > 0 {
		matchPercentage = int(float64(len(common))/float64(len(jobSkills))*100 + 0.5)
		if len(userSkills) > 0 && matchPercentage < 20 {
			matchPercentage = 20
		}
		if len(common)*2 > len(jobSkills) {
			matchPercentage += 10
		}
		if matchPercentage > 100 {
			matchPercentage = 100
		}
	}

	return common, missing, matchPercentage
}
