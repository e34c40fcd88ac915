package templates

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const aboutHTML = `<html><body>
<div class="page-header"><h1 class="page-title">About</h1></div>
<div class="counters">
  <div class="counter-item" data-stat="teamMembers"><span class="counter-number">0</span><span class="counter-label">Members</span></div>
  <div class="counter-item" data-stat="featuredGames"><span class="counter-number">0</span></div>
  <div class="counter-item" data-stat="regularClients"><span class="counter-number">0</span></div>
  <div class="counter-item" data-stat="winAwards"><span class="counter-number">0</span></div>
  <div class="counter-item" data-stat="other"><span class="counter-number">7</span></div>
</div>
<footer class="footer"><p class="copyright">old</p><p class="copyright">old</p></footer>
</body></html>`

func TestFieldApplier_StatsScenario(t *testing.T) {
	t.Parallel()
	doc := parse(t, aboutHTML)
	sections := map[string]content.Section{
		content.SectionStats: {"teamMembers": "80", "featuredGames": "30", "regularClients": "40", "winAwards": "50"},
	}

	res := NewFieldApplier(DefaultBindings()).Apply(doc, "about", sections)
	assert.Equal(t, 4, res.Applied)
	assert.Zero(t, res.Failed)

	got := map[string]string{}
	doc.Find(".counter-item").Each(func(_ int, s *goquery.Selection) {
		got[s.AttrOr("data-stat", "")] = s.Find(".counter-number").Text()
	})
	assert.Equal(t, map[string]string{
		"teamMembers": "80", "featuredGames": "30", "regularClients": "40", "winAwards": "50", "other": "7",
	}, got)
	assert.Equal(t, "Members", doc.Find(".counter-label").Text())
}

func TestFieldApplier_MissingNodesAreSkipped(t *testing.T) {
	t.Parallel()
	doc := parse(t, `<html><body><div class="page-header"><h1 class="page-title">Old</h1></div></body></html>`)
	sections := map[string]content.Section{
		content.SectionAboutHeader: {"title": "Who we are", "subtitle": "no node for this"},
		content.SectionStats:       {"teamMembers": "80"},
	}

	var res FieldResult
	require.NotPanics(t, func() {
		res = NewFieldApplier(DefaultBindings()).Apply(doc, "about", sections)
	})
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, "Who we are", doc.Find(".page-title").Text())
}

func TestFieldApplier_AnyPageAndModes(t *testing.T) {
	t.Parallel()
	doc := parse(t, `<html><body>
<div class="contact-info"><a class="contact-email" href="#">x</a></div>
<footer class="footer"><div class="footer-about"></div><p class="copyright">a</p><p class="copyright">b</p></footer>
</body></html>`)
	sections := map[string]content.Section{
		content.SectionFooter: {
			"copyright": "© 2024 TSB",
			"about":     `<strong>Pro team</strong><script>alert(1)</script>`,
		},
		content.SectionContactInfo: {"email": "hello@tsb.gg"},
	}

	NewFieldApplier(DefaultBindings()).Apply(doc, "contact", sections)

	doc.Find(".copyright").Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "© 2024 TSB", s.Text())
	})
	about, err := doc.Find(".footer-about").Html()
	require.NoError(t, err)
	assert.Equal(t, "<strong>Pro team</strong>", about)

	link := doc.Find("a.contact-email")
	assert.Equal(t, "hello@tsb.gg", link.Text())
	assert.Equal(t, "mailto:hello@tsb.gg", link.AttrOr("href", ""))
}

func TestFieldApplier_Markdown(t *testing.T) {
	t.Parallel()
	doc := parse(t, `<div class="story-section"><div class="story-text"></div></div>`)
	sections := map[string]content.Section{
		content.SectionAboutStory: {"content": "Founded in **2019**.\n\n[Join](https://tsb.gg)"},
	}

	res := NewFieldApplier(DefaultBindings()).Apply(doc, "about", sections)
	require.Equal(t, 1, res.Applied)

	story := doc.Find(".story-text")
	assert.Equal(t, "2019", story.Find("strong").Text())
	assert.Equal(t, "nofollow", story.Find("a").AttrOr("rel", ""))
}

const gamesHTML = `<html><body>
<div class="match-card" id="c1"><span class="match-teams">A vs B</span><span class="match-date">d</span><span class="prize-label">Reward</span><span class="prize-value">$1</span></div>
<div class="match-card" id="c2"><span class="match-teams">C vs D</span><span class="prize-label">Reward</span></div>
</body></html>`

func TestMatchSynchronizer_OnlyPresentGroups(t *testing.T) {
	t.Parallel()
	doc := parse(t, gamesHTML)

	n := NewMatchSynchronizer().Sync(doc, content.Section{"match1Teams": "TSB vs. Wolves"})
	assert.Equal(t, 1, n)

	assert.Equal(t, "TSB vs. Wolves", doc.Find("#c1 .match-teams").Text())
	assert.Equal(t, "d", doc.Find("#c1 .match-date").Text())
	assert.Equal(t, DefaultPrizeLabel, doc.Find("#c1 .prize-label").Text())
	assert.Equal(t, "C vs D", doc.Find("#c2 .match-teams").Text())
	assert.Equal(t, "Reward", doc.Find("#c2 .prize-label").Text())
}

func TestMatchSynchronizer_NoCardsOrData(t *testing.T) {
	t.Parallel()
	assert.Zero(t, NewMatchSynchronizer().Sync(parse(t, "<p>none</p>"), content.Section{"match1Teams": "x"}))
	assert.Zero(t, NewMatchSynchronizer().Sync(parse(t, gamesHTML), nil))
}

const bannerHTML = `<html><head><style>.banner-section { background-image: url('../assets/picture/banner-bg.jpg'); }</style></head><body>
<section class="banner-section"></section>
<img id="logo" src="../assets/picture/logo.png">
<img id="keep" src="assets/picture/other.png">
<video id="v" preload="none"><source src="videos/trailer.mp4"></video>
<div id="tile" style="color: red; background-image: url(assets/picture/tile.jpg)"></div>
</body></html>`

func replacementRecords() []*content.ReplacementRecord {
	return []*content.ReplacementRecord{
		{OriginalPath: "assets/picture/banner-bg.jpg", ReplacementData: "data:image/png;base64,BANNER"},
		{OriginalPath: "assets/picture/logo.png", ReplacementData: "data:image/png;base64,LOGO"},
		{OriginalPath: "videos/trailer.mp4", ReplacementData: "data:video/mp4;base64,VID"},
		{OriginalPath: "assets/picture/tile.jpg", ReplacementData: "data:image/jpeg;base64,TILE"},
	}
}

func TestReplacer_BannerBackgroundScenario(t *testing.T) {
	t.Parallel()
	doc := parse(t, bannerHTML)

	n := NewReplacer(".banner-section", "assets/picture/banner-bg.jpg").Apply(doc, replacementRecords())
	assert.Equal(t, 4, n)

	banner := doc.Find(".banner-section")
	assert.Equal(t, `background-image: url("data:image/png;base64,BANNER")`, banner.AttrOr("style", ""))
	assert.Equal(t, "data:image/png;base64,LOGO", doc.Find("#logo").AttrOr("src", ""))
	assert.Equal(t, "../assets/picture/logo.png", doc.Find("#logo").AttrOr("data-original-src", ""))
	assert.Equal(t, "assets/picture/other.png", doc.Find("#keep").AttrOr("src", ""))
	assert.Equal(t, "data:video/mp4;base64,VID", doc.Find("#v source").AttrOr("src", ""))
	assert.Equal(t, "auto", doc.Find("#v").AttrOr("preload", ""))
	assert.Equal(t, `color: red; background-image: url("data:image/jpeg;base64,TILE")`, doc.Find("#tile").AttrOr("style", ""))
}

func TestReplacer_DefaultBannerFallback(t *testing.T) {
	t.Parallel()
	doc := parse(t, `<section class="banner-section" style="min-height: 80vh"></section>`)

	NewReplacer(".banner-section", "assets/picture/banner-bg.jpg").Apply(doc, replacementRecords())
	assert.Equal(t, `min-height: 80vh; background-image: url("data:image/png;base64,BANNER")`,
		doc.Find(".banner-section").AttrOr("style", ""))
}

func TestReplacer_Idempotent(t *testing.T) {
	t.Parallel()
	replacer := NewReplacer(".banner-section", "assets/picture/banner-bg.jpg")

	once := parse(t, bannerHTML)
	replacer.Apply(once, replacementRecords())
	onceHTML, err := once.Html()
	require.NoError(t, err)

	twice := parse(t, bannerHTML)
	replacer.Apply(twice, replacementRecords())
	replacer.Apply(twice, replacementRecords())
	twiceHTML, err := twice.Html()
	require.NoError(t, err)

	assert.Equal(t, onceHTML, twiceHTML)
}

const layeredHTML = `<html><body>
<div id="hero" style="background-image: url(assets/picture/overlay.png), url(assets/picture/hero-bg.jpg)"></div>
<iframe id="embed" src="https://www.youtube.com/embed/abc"></iframe>
</body></html>`

func TestReplacer_LayeredBackgroundAndIframe(t *testing.T) {
	t.Parallel()
	replacer := NewReplacer(".banner-section", "")
	records := []*content.ReplacementRecord{
		{OriginalPath: "assets/picture/hero-bg.jpg", ReplacementData: "data:image/jpeg;base64,HERO"},
		{OriginalPath: "https://www.youtube.com/embed/abc", ReplacementData: "data:video/mp4;base64,CLIP"},
	}
	doc := parse(t, layeredHTML)

	assert.Equal(t, 2, replacer.Apply(doc, records))

	hero := doc.Find("#hero")
	assert.Equal(t, `background-image: url(assets/picture/overlay.png), url("data:image/jpeg;base64,HERO")`, hero.AttrOr("style", ""))
	assert.Equal(t, "background-image: url(assets/picture/overlay.png), url(assets/picture/hero-bg.jpg)", hero.AttrOr("data-original-style", ""))
	embed := doc.Find("#embed")
	assert.Equal(t, "data:video/mp4;base64,CLIP", embed.AttrOr("src", ""))
	assert.Equal(t, "https://www.youtube.com/embed/abc", embed.AttrOr("data-original-src", ""))

	// A later record for the other layer is resolved against the original style.
	records = append(records, &content.ReplacementRecord{OriginalPath: "assets/picture/overlay.png", ReplacementData: "data:image/png;base64,TOP"})
	assert.Equal(t, 2, replacer.Apply(doc, records))
	assert.Equal(t, `background-image: url("data:image/png;base64,TOP"), url("data:image/jpeg;base64,HERO")`, hero.AttrOr("style", ""))
}

func TestPipeline_SkipsReplacementsOnAdminPages(t *testing.T) {
	t.Parallel()
	pipeline := NewPipeline(
		NewFieldApplier(DefaultBindings()),
		NewMatchSynchronizer(),
		NewReplacer(".banner-section", "assets/picture/banner-bg.jpg"),
		[]string{"admin.html"},
	)
	in := RenderInput{
		HTML: []byte(`<html><body><img src="assets/picture/logo.png"><footer class="footer"><p class="copyright">x</p></footer></body></html>`),
		Sections: map[string]content.Section{
			content.SectionFooter: {"copyright": "2024"},
		},
		Replacements: replacementRecords(),
	}

	in.Page = "admin.html"
	out, stats, err := pipeline.Render(in)
	require.NoError(t, err)
	assert.True(t, stats.AdminPage)
	assert.Zero(t, stats.Replacements)
	assert.Contains(t, string(out), `src="assets/picture/logo.png"`)
	assert.Contains(t, string(out), "2024")

	in.Page = "index.html"
	out, stats, err = pipeline.Render(in)
	require.NoError(t, err)
	assert.False(t, stats.AdminPage)
	assert.Equal(t, 1, stats.Replacements)
	assert.Contains(t, string(out), "data:image/png;base64,LOGO")
}
