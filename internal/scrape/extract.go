package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// droppedElements never contribute to extracted content.
var droppedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"nav": true, "footer": true, "header": true, "aside": true,
}

// ExtractContent returns the main text of a parsed page. Wikipedia pages
// get special handling targeting the content div; everything else goes
// through the generic boilerplate-stripping heuristic.
func ExtractContent(doc *html.Node, pageURL string) string {
	if strings.Contains(pageURL, "wikipedia.org") {
		if text := wikipediaContent(doc); text != "" {
			return text
		}
	}
	return genericContent(doc)
}

// wikipediaContent extracts from the article content div, skipping
// citation superscripts and infobox tables.
func wikipediaContent(doc *html.Node) string {
	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(attrValue(n, "id") == "mw-content-text" || hasClass(n, "mw-parser-output"))
	})
	if content == nil {
		return ""
	}

	skip := make(map[string]bool, len(droppedElements)+2)
	for tag := range droppedElements {
		skip[tag] = true
	}
	skip["sup"] = true
	skip["table"] = true

	return nodeText(content, skip)
}

// genericContent prefers a dedicated content region, tried in order of
// specificity, falling back to the whole body.
func genericContent(doc *html.Node) string {
	selectors := []func(*html.Node) bool{
		func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "main" },
		func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "article" },
		func(n *html.Node) bool { return n.Type == html.ElementNode && attrValue(n, "role") == "main" },
		func(n *html.Node) bool { return hasClass(n, "content") },
		func(n *html.Node) bool { return hasClass(n, "post") },
		func(n *html.Node) bool { return hasClass(n, "entry") },
	}

	var root *html.Node
	for _, match := range selectors {
		if node := findFirst(doc, match); node != nil {
			root = node
			break
		}
	}
	if root == nil {
		root = findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "body"
		})
	}
	if root == nil {
		root = doc
	}

	return nodeText(root, droppedElements)
}

// ExtractMetadata returns the page title and a published date guess.
// rawHTML feeds the date-pattern fallback when no metadata tag carries
// a date.
func ExtractMetadata(doc *html.Node, rawHTML string) (string, string) {
	title := metaContent(doc, "property", "og:title")
	if title == "" {
		title = metaContent(doc, "name", "twitter:title")
	}
	if title == "" {
		if node := findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "title"
		}); node != nil {
			title = strings.TrimSpace(nodeText(node, nil))
		}
	}
	if title == "" {
		if node := findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "h1"
		}); node != nil {
			title = strings.TrimSpace(nodeText(node, nil))
		}
	}

	published := metaContent(doc, "property", "article:published_time")
	if published == "" {
		published = metaContent(doc, "name", "publishedDate")
	}
	if published == "" {
		published = metaContent(doc, "name", "date")
	}
	if published == "" {
		if node := findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "time" && attrValue(n, "datetime") != ""
		}); node != nil {
			published = strings.TrimSpace(attrValue(node, "datetime"))
		}
	}
	if published == "" {
		published = dateFromText(rawHTML)
	}

	return title, published
}

func metaContent(doc *html.Node, key, value string) string {
	node := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" && attrValue(n, key) == value
	})
	if node == nil {
		return ""
	}
	return strings.TrimSpace(attrValue(node, "content"))
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
	regexp.MustCompile(`\b(\w+\s+\d{1,2},\s+\d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2}\s+\w+\s+\d{4})\b`),
}

func dateFromText(rawHTML string) string {
	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(rawHTML); m != nil {
			return m[1]
		}
	}
	return ""
}

var englishWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
}

var germanWords = map[string]bool{
	"der": true, "die": true, "das": true, "und": true, "oder": true, "aber": true,
	"in": true, "an": true, "zu": true, "für": true, "von": true, "mit": true,
}

// SupportedLanguage reports whether the text looks English or German,
// judged by stop-word hits within the first 100 words.
func SupportedLanguage(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > 100 {
		words = words[:100]
	}

	englishCount, germanCount := 0, 0
	seen := make(map[string]bool, len(words))
	for _, word := range words {
		if seen[word] {
			continue
		}
		seen[word] = true
		if englishWords[word] {
			englishCount++
		}
		if germanWords[word] {
			germanCount++
		}
	}

	return englishCount >= 3 || germanCount >= 3
}

var (
	collapseRe = regexp.MustCompile(`\s+`)
	cookieRe   = regexp.MustCompile(`(?i)Cookie\s+(?:Policy|Notice|Settings).*?(?:\n|$)`)
	privacyRe  = regexp.MustCompile(`(?i)Privacy\s+Policy.*?(?:\n|$)`)
	termsRe    = regexp.MustCompile(`(?i)Terms\s+of\s+Service.*?(?:\n|$)`)
	navWordRe  = regexp.MustCompile(`\b(?:Home|About|Contact|Menu|Login|Register|Subscribe)\b\s*`)
	dotsRe     = regexp.MustCompile(`[.]{3,}`)
	rulesRe    = regexp.MustCompile(`[-_]{3,}`)
)

// CleanText collapses whitespace and strips boilerplate. Cookie, privacy
// and terms-of-service mentions truncate the remainder of the line,
// which on collapsed text drops the footer region they start.
func CleanText(text string) string {
	text = collapseRe.ReplaceAllString(text, " ")

	text = cookieRe.ReplaceAllString(text, "")
	text = privacyRe.ReplaceAllString(text, "")
	text = termsRe.ReplaceAllString(text, "")

	text = navWordRe.ReplaceAllString(text, "")

	text = dotsRe.ReplaceAllString(text, "...")
	text = rulesRe.ReplaceAllString(text, "---")

	return strings.TrimSpace(text)
}

// findFirst returns the first node in document order matching the
// predicate.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// nodeText joins the trimmed text nodes under n with single spaces,
// skipping any element whose tag is in skip.
func nodeText(n *html.Node, skip map[string]bool) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skip[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

func hasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, class := range strings.Fields(attrValue(n, "class")) {
		if class == className {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
