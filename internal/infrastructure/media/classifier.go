package media

import (
	"strings"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

type classifyRule struct {
	category content.MediaCategory
	match    func(lowerPath string, kind content.MediaKind) bool
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// Evaluated in order; the first matching rule decides the category.
var classifyRules = []classifyRule{
	{content.CategoryRemote, func(p string, _ content.MediaKind) bool {
		return IsRemote(p)
	}},
	{content.CategoryBackground, func(p string, kind content.MediaKind) bool {
		return kind == content.KindBackground || containsAny(p, "banner", "background", "bg")
	}},
	{content.CategoryPeople, func(p string, _ content.MediaKind) bool {
		return containsAny(p, "team", "person", "member", "player", "people", "staff")
	}},
	{content.CategoryLogo, func(p string, _ content.MediaKind) bool {
		return containsAny(p, "logo", "icon", "brand")
	}},
	{content.CategoryGames, func(p string, _ content.MediaKind) bool {
		return containsAny(p, "game", "match", "tournament", "esport")
	}},
}

// Classify derives a category from path tokens. It is pure and case-insensitive.
func Classify(path string, kind content.MediaKind) content.MediaCategory {
	lower := strings.ToLower(path)
	for _, rule := range classifyRules {
		if rule.match(lower, kind) {
			return rule.category
		}
	}
	return content.CategoryOther
}
