package handlers

import (
	"strings"
	"unicode/utf8"

	"shopwright/internal/models"
)

// Validation limits for template fields.
const (
	maxTitleLen      = 200
	maxContentLen    = 500_000
	maxConditions    = 50
	maxConditionVals = 100
	maxPriority      = 1000
)

// validateTemplateTitle checks the template title and returns the first
// error found, or "".
func validateTemplateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	return ""
}

// validateConditions checks a decoded condition list. Unknown kinds and
// modes are rejected outright rather than stored and silently skipped.
func validateConditions(conds []models.Condition) string {
	if len(conds) > maxConditions {
		return "Too many conditions (max 50)."
	}
	for _, c := range conds {
		if !c.Kind.IsValid() {
			return "Unknown condition kind: " + string(c.Kind) + "."
		}
		if c.Mode != models.ModeInclude && c.Mode != models.ModeExclude {
			return "Condition mode must be include or exclude."
		}
		if len(c.Values) > maxConditionVals {
			return "Too many condition values (max 100)."
		}
	}
	return ""
}

// validatePriority bounds the selection priority.
func validatePriority(priority int) string {
	if priority < 0 || priority > maxPriority {
		return "Priority must be between 0 and 1000."
	}
	return ""
}
