package templates

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

// FieldResult counts the outcome of one application pass.
type FieldResult struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// FieldApplier writes section values into pages using a binding table.
type FieldApplier struct {
	bindings []Binding
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

func NewFieldApplier(bindings []Binding) *FieldApplier {
	return &FieldApplier{
		bindings: bindings,
		policy:   newFieldHTMLPolicy(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func newFieldHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "strong", "em")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Apply runs every binding registered for pageID. Missing values and missing
// nodes are skipped; a failing field never stops the others.
func (a *FieldApplier) Apply(doc *goquery.Document, pageID string, sections map[string]content.Section) FieldResult {
	var res FieldResult
	for _, b := range a.bindings {
		if b.Page != pageID && b.Page != AnyPage {
			continue
		}
		value, ok := sections[b.Section].StringValue(b.Field)
		if !ok {
			res.Skipped++
			continue
		}
		nodes := doc.Find(b.Selector)
		if nodes.Length() == 0 {
			res.Skipped++
			continue
		}
		if !b.All {
			nodes = nodes.First()
		}
		if err := a.write(nodes, b, value); err != nil {
			res.Failed++
			continue
		}
		res.Applied++
	}
	return res
}

func (a *FieldApplier) write(nodes *goquery.Selection, b Binding, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("binding %s.%s panicked: %v", b.Section, b.Field, r)
		}
	}()

	if b.Format != "" {
		value = fmt.Sprintf(b.Format, value)
	}

	switch b.Mode {
	case ModeText:
		nodes.SetText(value)
	case ModeAttr:
		if b.Attr == "" {
			return fmt.Errorf("binding %s.%s has no attribute", b.Section, b.Field)
		}
		nodes.SetAttr(b.Attr, value)
	case ModeHTML:
		nodes.SetHtml(a.policy.Sanitize(value))
	case ModeMarkdown:
		var buf bytes.Buffer
		if err := a.markdown.Convert([]byte(value), &buf); err != nil {
			return fmt.Errorf("failed to render markdown for %s.%s: %w", b.Section, b.Field, err)
		}
		nodes.SetHtml(strings.TrimSpace(a.policy.Sanitize(buf.String())))
	default:
		return fmt.Errorf("binding %s.%s has unknown mode %d", b.Section, b.Field, b.Mode)
	}
	return nil
}
