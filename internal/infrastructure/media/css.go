package media

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// At-rules whose blocks hold nested rules rather than declarations.
var groupingRules = []string{"@media", "@supports", "@document", "@layer", "@container"}

type cssBlock struct {
	selectors    string
	declarations bool
}

// BackgroundURLs returns the url(...) targets of background declarations in
// an inline style attribute or a rule body.
func BackgroundURLs(style string) []string {
	var urls []string
	walkBackgrounds(style, true, func(raw, _ string) (string, bool) {
		if raw != "" {
			urls = append(urls, raw)
		}
		return "", false
	})
	return urls
}

// ReplaceBackgroundURLs rewrites every url(...) inside background declarations
// of style, passing each raw target through replace. It returns the new style
// and whether anything changed.
func ReplaceBackgroundURLs(style string, replace func(raw string) (string, bool)) (string, bool) {
	out, changed := walkBackgrounds(style, true, func(raw, _ string) (string, bool) {
		return replace(raw)
	})
	if !changed {
		return style, false
	}
	return out, true
}

// RuleBackgroundURLs returns background urls from stylesheet rules whose
// selector list names selector.
func RuleBackgroundURLs(stylesheet, selector string) []string {
	if selector == "" {
		return nil
	}
	var urls []string
	walkBackgrounds(stylesheet, false, func(raw, selectors string) (string, bool) {
		if raw != "" && selectorListNames(selectors, selector) {
			urls = append(urls, raw)
		}
		return "", false
	})
	return urls
}

// walkBackgrounds tokenizes css and hands every url() of a background
// declaration to visit, along with the selector list of the enclosing rule.
// inline marks css as a bare declaration list. Text after a tokenizer error
// is copied through unchanged.
func walkBackgrounds(css string, inline bool, visit func(raw, selectors string) (string, bool)) (string, bool) {
	css = strings.ReplaceAll(css, "\r\n", "\n")

	var (
		out      strings.Builder
		prelude  strings.Builder
		consumed int
		changed  bool
		name     string
		property string
	)
	stack := []cssBlock{{declarations: inline}}
	s := scanner.New(css)

	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF {
			break
		}
		if tok.Type == scanner.TokenError {
			out.WriteString(css[consumed:])
			break
		}
		consumed += len(tok.Value)
		block := stack[len(stack)-1]
		value := tok.Value

		switch {
		case tok.Type == scanner.TokenChar && value == "{":
			sel := strings.TrimSpace(prelude.String())
			stack = append(stack, cssBlock{selectors: sel, declarations: !isGroupingRule(sel)})
			prelude.Reset()
			name, property = "", ""
		case tok.Type == scanner.TokenChar && value == "}":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			prelude.Reset()
			name, property = "", ""
		case tok.Type == scanner.TokenChar && value == ";":
			prelude.Reset()
			name, property = "", ""
		case tok.Type == scanner.TokenChar && value == ":" && block.declarations && property == "" && name != "":
			property = name
			prelude.WriteString(value)
		case tok.Type == scanner.TokenIdent && block.declarations && property == "":
			name = strings.ToLower(value)
			prelude.WriteString(value)
		case tok.Type == scanner.TokenURI:
			if block.declarations && isBackgroundProperty(property) {
				if next, ok := visit(uriTarget(value), block.selectors); ok {
					value = `url("` + next + `")`
					changed = true
				}
			}
		case tok.Type == scanner.TokenComment, tok.Type == scanner.TokenCDO, tok.Type == scanner.TokenCDC:
		default:
			prelude.WriteString(value)
		}
		out.WriteString(value)
	}
	return out.String(), changed
}

func uriTarget(token string) string {
	v := strings.TrimSpace(token[len("url(") : len(token)-1])
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return strings.TrimSpace(v)
}

func isBackgroundProperty(property string) bool {
	return property == "background" || property == "background-image"
}

func isGroupingRule(prelude string) bool {
	lower := strings.ToLower(prelude)
	for _, rule := range groupingRules {
		if strings.HasPrefix(lower, rule) {
			return true
		}
	}
	return false
}

func selectorListNames(list, selector string) bool {
	for _, sel := range strings.Split(list, ",") {
		sel = strings.TrimSpace(sel)
		if sel == selector || strings.HasPrefix(sel, selector+":") {
			return true
		}
	}
	return false
}
