package types

import (
	"encoding/json"
	"strings"
)

// EncodeSkills serializes a skill list into the stored text form (a JSON array).
// A nil list encodes as "[]".
func EncodeSkills(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeSkills parses the stored text form. It reports false for empty or malformed
// input and never returns an error.
func DecodeSkills(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, false
	}
	if skills == nil {
		skills = []string{}
	}
	return skills, true
}

// DecodeSkillsOrEmpty is DecodeSkills with failures mapped to an empty, non-nil list.
func DecodeSkillsOrEmpty(raw string) []string {
	skills, ok := DecodeSkills(raw)
	if !ok {
		return []string{}
	}
	return skills
}

// HasSkill reports whether any entry contains needle, ignoring case.
func HasSkill(skills []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
