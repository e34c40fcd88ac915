package media

import "strings"

// NormalizePath canonicalizes a media reference so documents at different
// directory depths agree on the same key: quotes and whitespace are trimmed,
// and for local paths any leading "./", "../" and "/" segments are removed.
func NormalizePath(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, `"'`)
	p = strings.TrimSpace(p)
	if p == "" || IsRemote(p) || strings.HasPrefix(p, "data:") {
		return p
	}

	for {
		switch {
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "../"):
			p = p[3:]
		case strings.HasPrefix(p, "/"):
			p = p[1:]
		default:
			return p
		}
	}
}

// IsRemote reports whether p is an absolute http(s) or protocol-relative URL.
func IsRemote(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

// Allowed reports whether a normalized path is site media: a local path under
// one of prefixes, or a remote URL under one of origins.
func Allowed(p string, prefixes, origins []string) bool {
	if p == "" {
		return false
	}
	if IsRemote(p) {
		for _, origin := range origins {
			if strings.HasPrefix(p, origin) {
				return true
			}
		}
		return false
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
