package templates

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

// RenderInput is everything one page render needs.
type RenderInput struct {
	Page         string // file name, e.g. "about.html"
	HTML         []byte
	Sections     map[string]content.Section
	Replacements []*content.ReplacementRecord
}

// RenderStats reports what each stage changed.
type RenderStats struct {
	Fields       FieldResult `json:"fields"`
	Matches      int         `json:"matches"`
	Replacements int         `json:"replacements"`
	AdminPage    bool        `json:"adminPage"`
}

// Pipeline runs the render stages in a fixed order: fields, match cards,
// then media replacements. Replacements never run on admin pages.
type Pipeline struct {
	fields     *FieldApplier
	matches    *MatchSynchronizer
	replacer   *Replacer
	adminPages []string
}

func NewPipeline(fields *FieldApplier, matches *MatchSynchronizer, replacer *Replacer, adminPages []string) *Pipeline {
	return &Pipeline{
		fields:     fields,
		matches:    matches,
		replacer:   replacer,
		adminPages: adminPages,
	}
}

// PageID maps a page file name to its binding page id.
func PageID(page string) string {
	return strings.TrimSuffix(strings.ToLower(page), ".html")
}

// IsAdminPage reports whether page is part of the admin surface.
func (p *Pipeline) IsAdminPage(page string) bool {
	return slices.Contains(p.adminPages, strings.ToLower(page))
}

func (p *Pipeline) Render(in RenderInput) ([]byte, RenderStats, error) {
	var stats RenderStats

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(in.HTML))
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse page %s: %w", in.Page, err)
	}

	stats.Fields = p.fields.Apply(doc, PageID(in.Page), in.Sections)
	stats.Matches = p.matches.Sync(doc, in.Sections[content.SectionMatchesData])

	stats.AdminPage = p.IsAdminPage(in.Page)
	if !stats.AdminPage {
		stats.Replacements = p.replacer.Apply(doc, in.Replacements)
	}

	out, err := doc.Html()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to serialize page %s: %w", in.Page, err)
	}
	return []byte(out), stats, nil
}
