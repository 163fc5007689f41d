package cv

import (
	"regexp"
	"sort"
	"strings"

	"talentmatch-backend/internal/domain"
)

// Keyword-based extraction. Every field is best-effort: a CV that yields
// nothing still produces an empty candidate, never an error.

var skillKeywords = map[string]string{
	"React":      "Frontend",
	"Vue":        "Frontend",
	"Angular":    "Frontend",
	"TypeScript": "Frontend",
	"JavaScript": "Frontend",
	"Go":         "Backend",
	"Golang":     "Backend",
	"Python":     "Backend",
	"Java":       "Backend",
	"Node.js":    "Backend",
	"PHP":        "Backend",
	"Docker":     "DevOps",
	"Kubernetes": "DevOps",
	"CI/CD":      "DevOps",
	"Terraform":  "DevOps",
	"PostgreSQL": "Database",
	"MySQL":      "Database",
	"MongoDB":    "Database",
	"Redis":      "Database",
	"AWS":        "Cloud",
	"Azure":      "Cloud",
	"GCP":        "Cloud",
	"Swift":      "Mobile",
	"Kotlin":     "Mobile",
	"Flutter":    "Mobile",
	"Scrum":      "Méthodes",
	"Agile":      "Méthodes",
	"Git":        "Outils",
	"Jira":       "Outils",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[ .\-]?)?(?:\(\d{1,4}\)[ .\-]?)?\d{1,4}(?:[ .\-]?\d{1,4}){3,6}`)
	// "Role chez Company (period)" / "Role @ Company" / "Role - Company"
	experiencePattern = regexp.MustCompile(`(?m)^[ \t]*(.{3,60}?)[ \t]+(?:chez|at|@|-|–)[ \t]+(.{2,60}?)(?:[ \t]+\((.{4,30})\))?[ \t]*$`)
	namePattern       = regexp.MustCompile(`^[\p{Lu}][\p{L}'\-]+(?:[ \t]+[\p{Lu}][\p{L}'\-]+){1,3}$`)
)

// ExtractCandidate builds a candidate block from extracted CV text
func ExtractCandidate(text string) domain.CvCandidate {
	candidate := domain.CvCandidate{}
	if strings.TrimSpace(text) == "" {
		return candidate
	}

	candidate.Name = extractName(text)
	candidate.Email = emailPattern.FindString(text)
	candidate.Phone = extractPhone(text)
	candidate.Skills = extractSkills(text)
	candidate.Experience = extractExperience(text)

	return candidate
}

// extractName takes the first line that looks like a person's name
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if namePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func extractPhone(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range match {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 9 && digits <= 15 {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

func extractSkills(text string) []domain.Skill {
	// Keywords are scanned in sorted order so the same CV always yields
	// the same skill list
	keywords := make([]string, 0, len(skillKeywords))
	for keyword := range skillKeywords {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	textLower := strings.ToLower(text)
	var skills []domain.Skill
	for _, keyword := range keywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			skills = append(skills, domain.Skill{
				Name:     keyword,
				Category: skillKeywords[keyword],
			})
		}
	}
	return skills
}

func extractExperience(text string) []domain.Experience {
	var experiences []domain.Experience
	for _, match := range experiencePattern.FindAllStringSubmatch(text, 10) {
		role := strings.TrimSpace(match[1])
		company := strings.TrimSpace(match[2])
		if role == "" || company == "" {
			continue
		}
		experiences = append(experiences, domain.Experience{
			Role:    role,
			Company: company,
			Period:  strings.TrimSpace(match[3]),
		})
	}
	return experiences
}
