package templates

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
)

const (
	attrOriginalSrc        = "data-original-src"
	attrOriginalBackground = "data-original-background"
	attrOriginalStyle      = "data-original-style"
)

// Replacer swaps media sources for their recorded replacements. The original
// path is kept on the element so later passes resolve the same record.
type Replacer struct {
	bannerSelector string
	defaultBanner  string
}

func NewReplacer(bannerSelector, defaultBanner string) *Replacer {
	return &Replacer{
		bannerSelector: bannerSelector,
		defaultBanner:  media.NormalizePath(defaultBanner),
	}
}

// Apply rewrites every media-bearing element with a matching record and
// returns the number of elements changed.
func (r *Replacer) Apply(doc *goquery.Document, records []*content.ReplacementRecord) int {
	if len(records) == 0 {
		return 0
	}
	lookup := make(map[string]string, len(records))
	for _, rec := range records {
		lookup[media.NormalizePath(rec.OriginalPath)] = rec.ReplacementData
	}

	replaced := 0
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if r.replaceSrc(sel, lookup) {
			replaced++
		}
	})
	doc.Find("video").Each(func(_ int, video *goquery.Selection) {
		changed := false
		if _, ok := video.Attr("src"); ok && r.replaceSrc(video, lookup) {
			changed = true
		}
		video.Find("source[src]").Each(func(_ int, source *goquery.Selection) {
			if r.replaceSrc(source, lookup) {
				changed = true
			}
		})
		if changed {
			// The new source must load even when the page asked for lazy loading.
			video.SetAttr("preload", "auto")
			replaced++
		}
	})
	doc.Find("iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		if r.replaceSrc(sel, lookup) {
			replaced++
		}
	})
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		if r.replaceInlineBackground(sel, lookup) {
			replaced++
		}
	})
	if r.bannerSelector != "" {
		rules := stylesheetText(doc)
		doc.Find(r.bannerSelector).Each(func(_ int, sel *goquery.Selection) {
			if r.replaceBanner(sel, rules, lookup) {
				replaced++
			}
		})
	}
	return replaced
}

func (r *Replacer) replaceSrc(sel *goquery.Selection, lookup map[string]string) bool {
	original, ok := sel.Attr(attrOriginalSrc)
	if !ok {
		original = sel.AttrOr("src", "")
	}
	data, found := lookup[media.NormalizePath(original)]
	if !found {
		return false
	}
	sel.SetAttr(attrOriginalSrc, original)
	sel.SetAttr("src", data)
	sel.RemoveAttr("srcset")
	return true
}

// replaceInlineBackground rewrites each background layer of the style
// attribute on its own. The untouched style is kept on the element and is the
// input of every later pass.
func (r *Replacer) replaceInlineBackground(sel *goquery.Selection, lookup map[string]string) bool {
	original, ok := sel.Attr(attrOriginalStyle)
	if !ok {
		original = sel.AttrOr("style", "")
	}
	next, changed := media.ReplaceBackgroundURLs(original, func(raw string) (string, bool) {
		data, found := lookup[media.NormalizePath(raw)]
		return data, found
	})
	if !changed {
		return false
	}
	sel.SetAttr(attrOriginalStyle, original)
	sel.SetAttr("style", next)
	return true
}

// replaceBanner handles a banner whose background comes from data-background,
// a <style> rule, or the site default rather than its own style attribute.
func (r *Replacer) replaceBanner(sel *goquery.Selection, rules string, lookup map[string]string) bool {
	style := sel.AttrOr("style", "")
	if len(media.BackgroundURLs(style)) > 0 {
		return false
	}

	original := sel.AttrOr(attrOriginalBackground, "")
	if original == "" {
		original = sel.AttrOr("data-background", "")
	}
	if original == "" {
		if urls := media.RuleBackgroundURLs(rules, r.bannerSelector); len(urls) > 0 {
			original = urls[len(urls)-1]
		}
	}
	if original == "" {
		original = r.defaultBanner
	}
	data, found := lookup[media.NormalizePath(original)]
	if !found {
		return false
	}

	style = strings.TrimRight(strings.TrimSpace(style), ";")
	if style != "" {
		style += "; "
	}
	sel.SetAttr(attrOriginalBackground, original)
	sel.SetAttr("style", style+`background-image: url("`+data+`")`)
	return true
}

func stylesheetText(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteByte('\n')
	})
	return b.String()
}
