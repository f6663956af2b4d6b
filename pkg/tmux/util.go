package tmux

import "strings"

const maxSessionName = 64

// SanitizeSessionName turns an arbitrary title into a name tmux accepts and
// that is safe inside the recorder's attach command. Disallowed characters
// become hyphens.
func SanitizeSessionName(title string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '-'
	}, title)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// A leading '.' or '-' is rejected by the session name validator.
	sanitized = strings.TrimLeft(sanitized, "-.")
	sanitized = strings.TrimRight(sanitized, "-")

	if sanitized == "" {
		sanitized = "cast"
	}

	if len(sanitized) > maxSessionName {
		sanitized = sanitized[:maxSessionName]
	}

	return sanitized
}
