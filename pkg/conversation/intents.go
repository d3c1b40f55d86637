package conversation

import "strings"

// matchesAny reports whether msg matches one of the vocabulary keywords.
// Matching is case-insensitive, exact or substring, per keyword set; the
// vocabularies are small and fixed, so no further language understanding is
// attempted.
func matchesAny(msg string, keywords []string) bool {
	msg = strings.ToLower(strings.TrimSpace(msg))
	if msg == "" {
		return false
	}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if msg == k || strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

// matchService resolves user text to a canonical service type using the
// configured label table. Canonical values themselves are also accepted.
func (r *Router) matchService(msg string) (string, bool) {
	msg = strings.ToLower(strings.TrimSpace(msg))
	if msg == "" {
		return "", false
	}

	switch msg {
	case "install", "rental", "membership":
		return msg, true
	}

	for label, svc := range r.cfg.Vocabulary.ServiceLabels {
		label = strings.ToLower(strings.TrimSpace(label))
		if msg == label || strings.Contains(msg, label) {
			return svc, true
		}
	}
	return "", false
}
