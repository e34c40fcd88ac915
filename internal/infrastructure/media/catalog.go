package media

import (
	"slices"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

// Catalog is the in-memory index built by one scan. References are unique by
// normalized path within each kind.
type Catalog struct {
	Images      []content.MediaReference `json:"images"`
	Videos      []content.MediaReference `json:"videos"`
	Backgrounds []content.MediaReference `json:"backgrounds"`

	index map[content.MediaKind]map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{
		Images:      []content.MediaReference{},
		Videos:      []content.MediaReference{},
		Backgrounds: []content.MediaReference{},
		index:       make(map[content.MediaKind]map[string]int),
	}
}

func (c *Catalog) list(kind content.MediaKind) *[]content.MediaReference {
	switch kind {
	case content.KindVideo:
		return &c.Videos
	case content.KindBackground:
		return &c.Backgrounds
	default:
		return &c.Images
	}
}

// Add inserts ref, or merges its sources into the existing entry for the same path.
func (c *Catalog) Add(ref content.MediaReference) {
	if c.index == nil {
		c.index = make(map[content.MediaKind]map[string]int)
	}
	byPath, ok := c.index[ref.Kind]
	if !ok {
		byPath = make(map[string]int)
		c.index[ref.Kind] = byPath
	}

	refs := c.list(ref.Kind)
	if i, exists := byPath[ref.Path]; exists {
		existing := &(*refs)[i]
		for _, src := range ref.Sources {
			if !slices.Contains(existing.Sources, src) {
				existing.Sources = append(existing.Sources, src)
			}
		}
		return
	}

	ref.Sources = slices.Clone(ref.Sources)
	byPath[ref.Path] = len(*refs)
	*refs = append(*refs, ref)
}

// Len returns the number of references across all kinds.
func (c *Catalog) Len() int {
	return len(c.Images) + len(c.Videos) + len(c.Backgrounds)
}

// Contains reports whether path is catalogued under any kind.
func (c *Catalog) Contains(path string) bool {
	for _, byPath := range c.index {
		if _, ok := byPath[path]; ok {
			return true
		}
	}
	return false
}

// Selection is a filter over a catalog. Empty fields match everything.
type Selection struct {
	Kind     content.MediaKind
	Category content.MediaCategory
}

// ParseSelection validates the query values of a catalog filter.
func ParseSelection(kind, category string) (Selection, error) {
	var sel Selection
	if kind != "" && kind != "all" {
		k, err := content.ParseMediaKind(kind)
		if err != nil {
			return sel, err
		}
		sel.Kind = k
	}
	if category != "" && category != "all" {
		c, err := content.ParseMediaCategory(category)
		if err != nil {
			return sel, err
		}
		sel.Category = c
	}
	return sel, nil
}

// Filter returns a new catalog with only the references sel matches.
func (c *Catalog) Filter(sel Selection) *Catalog {
	out := NewCatalog()
	for _, kind := range []content.MediaKind{content.KindImage, content.KindVideo, content.KindBackground} {
		if sel.Kind != "" && sel.Kind != kind {
			continue
		}
		for _, ref := range *c.list(kind) {
			if sel.Category != "" && sel.Category != ref.Category {
				continue
			}
			out.Add(ref)
		}
	}
	return out
}
