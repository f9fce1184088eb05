package agent

import "strings"

var nameStopwords = map[string]bool{
	"and":     true,
	"my":      true,
	"name":    true,
	"is":      true,
	"account": true,
	"number":  true,
}

// ExtractFullName pulls a candidate customer name out of a verification
// message. It prefers the words after "name is", otherwise it takes the last
// two alphabetic words before the account number.
func ExtractFullName(message, accountNumber string) string {
	lower := strings.ToLower(message)

	if idx := strings.Index(lower, "name is"); idx >= 0 {
		rest := strings.Fields(message[idx+len("name is"):])
		if len(rest) > 3 {
			rest = rest[:3]
		}
		var words []string
		for _, word := range rest {
			clean := strings.Trim(word, ".,!?")
			if clean == "" || nameStopwords[strings.ToLower(clean)] {
				continue
			}
			words = append(words, clean)
		}
		return strings.Join(words, " ")
	}

	if accountNumber == "" {
		return ""
	}

	var words []string
	for _, word := range strings.Fields(message) {
		if word == accountNumber {
			break
		}
		clean := strings.Trim(word, ".,")
		if clean == "" || !isAlpha(clean) || nameStopwords[strings.ToLower(clean)] {
			continue
		}
		words = append(words, clean)
	}
	if len(words) < 2 {
		return ""
	}
	return strings.Join(words[len(words)-2:], " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
