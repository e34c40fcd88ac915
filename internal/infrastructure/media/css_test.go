package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const svgDataURI = `data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='4' height='4'></svg>`

func TestBackgroundURLs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		style string
		want  []string
	}{
		{"unquoted", "background-image: url(assets/picture/hero.jpg)", []string{"assets/picture/hero.jpg"}},
		{"shorthand", "color: red; background: #000 url('img/bg.png') no-repeat", []string{"img/bg.png"}},
		{"quoted parens", `background-image: url("assets/picture/banner(1).jpg")`, []string{"assets/picture/banner(1).jpg"}},
		{"quoted svg", `background-image: url("` + svgDataURI + `")`, []string{svgDataURI}},
		{"layers", "background-image: url(assets/picture/overlay.png), url(assets/picture/hero-bg.jpg)",
			[]string{"assets/picture/overlay.png", "assets/picture/hero-bg.jpg"}},
		{"other property", "mask-image: url(assets/picture/mask.png)", nil},
		{"empty url", "background-image: url('')", nil},
		{"case insensitive property", "Background-Image: url(assets/a.jpg)", []string{"assets/a.jpg"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BackgroundURLs(tt.style))
		})
	}
}

func TestReplaceBackgroundURLs(t *testing.T) {
	t.Parallel()
	style := `color: red; background-image: url("assets/picture/banner(1).jpg"), url(assets/picture/keep.png); border: 0`

	next, changed := ReplaceBackgroundURLs(style, func(raw string) (string, bool) {
		return "data:image/png;base64,NEW", raw == "assets/picture/banner(1).jpg"
	})
	assert.True(t, changed)
	assert.Equal(t, `color: red; background-image: url("data:image/png;base64,NEW"), url(assets/picture/keep.png); border: 0`, next)

	same, changed := ReplaceBackgroundURLs(style, func(string) (string, bool) { return "", false })
	assert.False(t, changed)
	assert.Equal(t, style, same)
}

func TestReplaceBackgroundURLs_UnclosedQuoteKeepsTail(t *testing.T) {
	t.Parallel()
	style := `background: url(assets/a.jpg); content: "open`

	next, changed := ReplaceBackgroundURLs(style, func(string) (string, bool) { return "data:x", true })
	assert.True(t, changed)
	assert.Equal(t, `background: url("data:x"); content: "open`, next)
}

func TestRuleBackgroundURLs(t *testing.T) {
	t.Parallel()
	sheet := `
/* hero */
.banner-section, .hero { background-image: url('../assets/picture/home-banner.jpg'); }
.banner-section:hover { background: url("assets/picture/hover(2).jpg") }
.footer { background: url(assets/picture/footer.jpg); }
@media (max-width: 600px) {
  .banner-section { background-image: url("` + svgDataURI + `"); }
}`

	assert.Equal(t, []string{
		"../assets/picture/home-banner.jpg",
		"assets/picture/hover(2).jpg",
		svgDataURI,
	}, RuleBackgroundURLs(sheet, ".banner-section"))
	assert.Equal(t, []string{"assets/picture/footer.jpg"}, RuleBackgroundURLs(sheet, ".footer"))
	assert.Nil(t, RuleBackgroundURLs(sheet, ""))
	assert.Nil(t, RuleBackgroundURLs(sheet, ".missing"))
}
