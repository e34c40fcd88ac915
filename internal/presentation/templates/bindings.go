// Package templates applies admin-edited content and media replacements to
// the site's HTML pages.
package templates

import "github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"

// Mode selects how a binding writes its value into the matched nodes.
type Mode int

const (
	ModeText Mode = iota
	ModeAttr
	ModeHTML
	ModeMarkdown
)

// AnyPage binds a field on every page.
const AnyPage = "*"

// Binding ties one section field to a DOM location on a page.
type Binding struct {
	Page     string
	Section  string
	Field    string
	Selector string
	Mode     Mode
	Attr     string // ModeAttr only
	Format   string // optional fmt verb wrapper, e.g. "mailto:%s"
	All      bool   // write every match instead of the first
}

func text(page, section, field, selector string) Binding {
	return Binding{Page: page, Section: section, Field: field, Selector: selector, Mode: ModeText}
}

func attr(page, section, field, selector, name string) Binding {
	return Binding{Page: page, Section: section, Field: field, Selector: selector, Mode: ModeAttr, Attr: name}
}

func counter(field string) Binding {
	return text("about", content.SectionStats, field, `.counter-item[data-stat="`+field+`"] .counter-number`)
}

// DefaultBindings is the binding table for the site's pages.
func DefaultBindings() []Binding {
	return []Binding{
		// index
		text("index", content.SectionHomeHeader, "title", ".banner-section .banner-title"),
		text("index", content.SectionHomeHeader, "subtitle", ".banner-section .banner-subtitle"),
		text("index", content.SectionHomeHeader, "buttonText", ".banner-section .banner-btn"),
		attr("index", content.SectionHomeHeader, "buttonLink", ".banner-section .banner-btn", "href"),
		text("index", content.SectionHomeAbout, "title", ".about-section .section-title"),
		{Page: "index", Section: content.SectionHomeAbout, Field: "description", Selector: ".about-section .about-text", Mode: ModeMarkdown},
		attr("index", content.SectionHomeAbout, "image", ".about-section .about-image img", "src"),

		// about
		text("about", content.SectionAboutHeader, "title", ".page-header .page-title"),
		text("about", content.SectionAboutHeader, "subtitle", ".page-header .page-subtitle"),
		text("about", content.SectionAboutStory, "title", ".story-section .section-title"),
		{Page: "about", Section: content.SectionAboutStory, Field: "content", Selector: ".story-section .story-text", Mode: ModeMarkdown},
		counter("teamMembers"),
		counter("featuredGames"),
		counter("regularClients"),
		counter("winAwards"),

		// games
		text("games", content.SectionGamesHeader, "title", ".page-header .page-title"),
		text("games", content.SectionGamesHeader, "subtitle", ".page-header .page-subtitle"),

		// contact
		text("contact", content.SectionContactHeader, "title", ".page-header .page-title"),
		text("contact", content.SectionContactHeader, "subtitle", ".page-header .page-subtitle"),
		text("contact", content.SectionContactInfo, "address", ".contact-info .contact-address"),
		text("contact", content.SectionContactInfo, "phone", ".contact-info .contact-phone"),
		{Page: "contact", Section: content.SectionContactInfo, Field: "phone", Selector: ".contact-info a.contact-phone", Mode: ModeAttr, Attr: "href", Format: "tel:%s"},
		text("contact", content.SectionContactInfo, "email", ".contact-info .contact-email"),
		{Page: "contact", Section: content.SectionContactInfo, Field: "email", Selector: ".contact-info a.contact-email", Mode: ModeAttr, Attr: "href", Format: "mailto:%s"},
		text("contact", content.SectionContactInfo, "hours", ".contact-info .contact-hours"),

		// every page
		{Page: AnyPage, Section: content.SectionFooter, Field: "about", Selector: ".footer .footer-about", Mode: ModeHTML},
		{Page: AnyPage, Section: content.SectionFooter, Field: "copyright", Selector: ".footer .copyright", Mode: ModeText, All: true},
		{Page: AnyPage, Section: content.SectionFooter, Field: "email", Selector: ".footer .footer-email", Mode: ModeText, All: true},
		attr(AnyPage, content.SectionFooter, "facebook", ".footer a.social-facebook", "href"),
		attr(AnyPage, content.SectionFooter, "twitter", ".footer a.social-twitter", "href"),
		attr(AnyPage, content.SectionFooter, "instagram", ".footer a.social-instagram", "href"),
		attr(AnyPage, content.SectionFooter, "discord", ".footer a.social-discord", "href"),
	}
}
