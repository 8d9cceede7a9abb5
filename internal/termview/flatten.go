package termview

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/JonMunkholm/swimmeet/internal/status"
)

// span is a run of visible text, with the severity of the badge it sits in.
type span struct {
	text     string
	severity status.Severity
}

// flatten parses an HTML fragment and returns its visible text. Whitespace
// inside a span is collapsed; svg, script and style subtrees are skipped.
// Images contribute their alt text.
func flatten(markup string) ([]span, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, err
	}

	var spans []span
	var walk func(n *html.Node, sev status.Severity)
	walk = func(n *html.Node, sev status.Severity) {
		switch n.Type {
		case html.TextNode:
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				spans = append(spans, span{text: text, severity: sev})
			}
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Svg, atom.Script, atom.Style:
				return
			case atom.Img:
				if alt := attr(n, "alt"); alt != "" {
					spans = append(spans, span{text: alt, severity: sev})
				}
				return
			}
			if s := attr(n, "data-severity"); s != "" {
				sev = status.Severity(s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, sev)
		}
	}
	for _, n := range nodes {
		walk(n, "")
	}
	return spans, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
