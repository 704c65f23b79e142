package catalog

import "regexp"

var (
	level4Pattern = regexp.MustCompile(`(?i)(?:^|\s)level\s*4\b`)

	personsLevelPattern   = regexp.MustCompile(`(?i)(?:Entry Level \d+|Level \d+)`)
	personsSubjectPattern = regexp.MustCompile(`(?i)(?:English|Maths|Math)`)
)

// IsLevel4 reports whether title denotes a Level 4 qualification: the word
// "level", optional whitespace and the digit 4, starting a word.
func IsLevel4(title string) bool {
	return level4Pattern.MatchString(title)
}

// functionalSkillsTitle rebuilds a Pearson functional skills title from the
// level and subject tokens of title. ok is false when either token is missing.
func functionalSkillsTitle(title string) (string, bool) {
	level := personsLevelPattern.FindString(title)
	subject := personsSubjectPattern.FindString(title)
	if level == "" || subject == "" {
		return "", false
	}
	return "FUNCTIONAL SKILLS " + level + " " + subject, true
}
