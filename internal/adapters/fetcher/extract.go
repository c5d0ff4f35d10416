package fetcher

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// boilerplate elements never contribute readable content.
var boilerplate = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Iframe:   true,
	atom.Svg:      true,
	atom.Form:     true,
	atom.Template: true,
}

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

type metadata struct {
	title         string
	ogTitle       string
	twitterTitle  string
	description   string
	ogDescription string
	twDesc        string
	siteName      string
	ogImage       string
	twitterImage  string
}

// extractPage fills page from a parsed document.
func extractPage(doc *html.Node, page *domain.PageContent) {
	var meta metadata

	walk(doc, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Title:
			if meta.title == "" {
				meta.title = textOf(n)
			}
		case atom.Meta:
			readMeta(n, &meta)
		case atom.Body:
			return false
		}

		return true
	})

	page.Title = cleanLine(firstNonEmpty(meta.ogTitle, meta.twitterTitle, meta.title))
	page.Description = cleanLine(firstNonEmpty(meta.description, meta.ogDescription, meta.twDesc))
	page.SiteName = cleanLine(meta.siteName)
	page.ImageURL = strings.TrimSpace(firstNonEmpty(meta.ogImage, meta.twitterImage))
	page.Content = readableContent(doc)
}

func readMeta(n *html.Node, meta *metadata) {
	var key, content string

	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "name", "property":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = a.Val
		}
	}

	if content == "" {
		return
	}

	set := func(dst *string) {
		if *dst == "" {
			*dst = content
		}
	}

	switch key {
	case "description":
		set(&meta.description)
	case "og:title":
		set(&meta.ogTitle)
	case "og:description":
		set(&meta.ogDescription)
	case "og:site_name":
		set(&meta.siteName)
	case "og:image", "og:image:url":
		set(&meta.ogImage)
	case "twitter:title":
		set(&meta.twitterTitle)
	case "twitter:description":
		set(&meta.twDesc)
	case "twitter:image", "twitter:image:src":
		set(&meta.twitterImage)
	}
}

// readableContent converts the page's main region to Markdown. When the
// converter fails, the region's plain text is used instead.
func readableContent(doc *html.Node) string {
	root := mainRegion(doc)
	if root == nil {
		return ""
	}

	stripBoilerplate(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return cleanText(textOf(root))
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil || strings.TrimSpace(markdown) == "" {
		return cleanText(textOf(root))
	}

	return cleanText(markdown)
}

// mainRegion prefers <main>, then the longest <article>, then <body>.
func mainRegion(doc *html.Node) *html.Node {
	var mainNode, article, body *html.Node
	articleLen := -1

	walk(doc, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Main:
			if mainNode == nil {
				mainNode = n
			}
		case atom.Article:
			if l := len(textOf(n)); l > articleLen {
				article, articleLen = n, l
			}
		case atom.Body:
			if body == nil {
				body = n
			}
		}

		return true
	})

	switch {
	case mainNode != nil:
		return mainNode
	case article != nil:
		return article
	default:
		return body
	}
}

func stripBoilerplate(root *html.Node) {
	var doomed []*html.Node

	walk(root, func(n *html.Node) bool {
		if n != root && n.Type == html.ElementNode && boilerplate[n.DataAtom] {
			doomed = append(doomed, n)
			return false
		}

		if n.Type == html.CommentNode {
			doomed = append(doomed, n)
		}

		return true
	})

	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder

	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style) {
			return false
		}

		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}

		return true
	})

	return b.String()
}

// cleanText NFC-normalizes s, collapses horizontal whitespace and keeps at
// most one blank line between paragraphs.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	s = blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(s)
}

// cleanLine reduces s to a single normalized line.
func cleanLine(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	return strings.TrimSpace(string([]rune(s)[:n]))
}

// resolveURL makes ref absolute against base. Unresolvable refs are dropped.
func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	b, err := url.Parse(base)
	if err != nil {
		return r.String()
	}

	return b.ResolveReference(r).String()
}
