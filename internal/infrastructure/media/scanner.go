package media

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// SupplementarySource marks catalog entries that were not found in any document.
const SupplementarySource = "supplementary"

// ScanOptions configures which references a scan accepts.
type ScanOptions struct {
	Prefixes            []string
	Origins             []string
	BannerSelector      string
	DefaultBanner       string
	SupplementaryVideos []string
	Concurrency         int
}

// DocumentFailure records a document that could not be fetched or parsed.
type DocumentFailure struct {
	Document string `json:"document"`
	Error    string `json:"error"`
}

// ScanReport summarizes one scan.
type ScanReport struct {
	Documents  int               `json:"documents"`
	Scanned    int               `json:"scanned"`
	Failed     []DocumentFailure `json:"failed"`
	References int               `json:"references"`
	Duration   time.Duration     `json:"duration"`
}

// Scanner builds media catalogs from site documents
type Scanner struct {
	fetcher Fetcher
	opts    ScanOptions
	logger  *logging.ChanneledLogger
}

func NewScanner(fetcher Fetcher, opts ScanOptions, logger *logging.ChanneledLogger) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Scanner{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

type docResult struct {
	refs []content.MediaReference
	err  error
}

// Scan fetches every document concurrently and merges their references in
// document order once all fetches have settled. A document that fails
// contributes nothing and is listed in the report.
func (s *Scanner) Scan(ctx context.Context, documents []string) (*Catalog, ScanReport) {
	start := time.Now()
	results := make([]docResult, len(documents))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, name := range documents {
		g.Go(func() error {
			raw, err := s.fetcher.Fetch(ctx, name)
			if err != nil {
				results[i].err = err
				return nil
			}
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].refs = s.Extract(doc, name)
			return nil
		})
	}
	_ = g.Wait()

	catalog := NewCatalog()
	report := ScanReport{Documents: len(documents), Failed: []DocumentFailure{}}
	for i, res := range results {
		if res.err != nil {
			s.logger.Media().Warn("Skipping document in media scan", "document", documents[i], "error", res.err.Error())
			report.Failed = append(report.Failed, DocumentFailure{Document: documents[i], Error: res.err.Error()})
			continue
		}
		report.Scanned++
		for _, ref := range res.refs {
			catalog.Add(ref)
		}
	}

	for _, ref := range s.supplementary() {
		catalog.Add(ref)
	}

	report.References = catalog.Len()
	report.Duration = time.Since(start)
	s.logger.Media().Info("Media scan completed",
		"documents", report.Documents, "failed", len(report.Failed),
		"references", report.References, "duration", report.Duration)
	return catalog, report
}

// Extract returns the accepted media references of one parsed document.
func (s *Scanner) Extract(doc *goquery.Document, source string) []content.MediaReference {
	var refs []content.MediaReference
	add := func(raw string, kind content.MediaKind) {
		p := NormalizePath(raw)
		if !Allowed(p, s.opts.Prefixes, s.opts.Origins) {
			return
		}
		refs = append(refs, content.MediaReference{
			Path:     p,
			Kind:     kind,
			Category: Classify(p, kind),
			Sources:  []string{source},
		})
	}

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""), content.KindImage)
	})
	doc.Find("video[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""), content.KindVideo)
	})
	doc.Find("video source[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""), content.KindVideo)
	})
	doc.Find("iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""), content.KindVideo)
	})
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		for _, u := range BackgroundURLs(sel.AttrOr("style", "")) {
			add(u, content.KindBackground)
		}
	})

	if s.opts.BannerSelector != "" {
		doc.Find(s.opts.BannerSelector).Each(func(_ int, sel *goquery.Selection) {
			if bg, ok := sel.Attr("data-background"); ok {
				add(bg, content.KindBackground)
			}
		})
		doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
			for _, u := range RuleBackgroundURLs(sel.Text(), s.opts.BannerSelector) {
				add(u, content.KindBackground)
			}
		})
	}
	return refs
}

func (s *Scanner) supplementary() []content.MediaReference {
	var refs []content.MediaReference
	if s.opts.DefaultBanner != "" {
		p := NormalizePath(s.opts.DefaultBanner)
		refs = append(refs, content.MediaReference{
			Path:     p,
			Kind:     content.KindBackground,
			Category: Classify(p, content.KindBackground),
			Sources:  []string{SupplementarySource},
		})
	}
	for _, v := range s.opts.SupplementaryVideos {
		p := NormalizePath(v)
		if p == "" {
			continue
		}
		refs = append(refs, content.MediaReference{
			Path:     p,
			Kind:     content.KindVideo,
			Category: Classify(p, content.KindVideo),
			Sources:  []string{SupplementarySource},
		})
	}
	return refs
}
