// Package parser converts raw filing documents (HTML or XML) into an
// ordered list of titled sections with plain text content.
//
// Parsing never fails: a strict structured pass is attempted first, and
// malformed input degrades to an HTML-oriented fallback that strips
// markup and scans for the "Item N." heading convention of regulatory
// annual/quarterly/current reports. When no headings exist at all, the
// whole document becomes a single catch-all section. Whatever the path,
// no text is silently dropped.
package parser

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
)

// Section titles assigned when the document supplies none.
const (
	introTitle   = "Introduction"
	contentTitle = "Content"
)

// Ensure Parser implements the port.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser is the filing document parser. It is stateless and safe for
// concurrent use.
type Parser struct{}

// New creates a new parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts one raw document into ordered sections.
func (p *Parser) Parse(raw []byte, documentName string) *domain.ParsedDocument {
	content := string(raw)

	if sections, ok := parseStructured(content); ok {
		return &domain.ParsedDocument{
			Name:     documentName,
			Sections: sections,
			Mode:     domain.ParseModeStructured,
		}
	}

	text := stripMarkup(content)
	if sections := findItemSections(text); sections != nil {
		return &domain.ParsedDocument{
			Name:     documentName,
			Sections: sections,
			Mode:     domain.ParseModeItemPattern,
		}
	}

	return &domain.ParsedDocument{
		Name:     documentName,
		Sections: []domain.Section{{Title: contentTitle, Content: text}},
		Mode:     domain.ParseModeFlat,
	}
}

// node is a generic markup tree for the strict pass. Text holds the
// element's direct character data; Children its child elements.
type node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

// parseStructured attempts a strict markup parse and walks the tree.
// Any element whose tag suggests a heading starts a new section; all
// text is appended to the current section with single-space separation.
func parseStructured(content string) ([]domain.Section, bool) {
	var root node
	dec := xml.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(&root); err != nil {
		return nil, false
	}

	var sections []domain.Section
	current := domain.Section{Title: introTitle}

	flush := func() {
		if strings.TrimSpace(current.Content) != "" {
			current.Content = strings.TrimSpace(current.Content)
			sections = append(sections, current)
		}
	}

	var walk func(n node)
	walk = func(n node) {
		if headingTag(n.XMLName.Local) {
			flush()
			current = domain.Section{Title: strings.TrimSpace(collectText(n))}
		}
		// Direct text only: children append their own, so nothing is
		// counted twice and nothing is dropped.
		if t := strings.TrimSpace(n.Text); t != "" {
			if current.Content != "" {
				current.Content += " "
			}
			current.Content += t
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	flush()

	if len(sections) == 0 {
		return nil, false
	}
	return sections, true
}

// headingTag reports whether an element tag suggests a section heading.
func headingTag(tag string) bool {
	tag = strings.ToLower(tag)
	if strings.Contains(tag, "heading") || strings.Contains(tag, "title") {
		return true
	}
	switch tag {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

// collectText concatenates all text beneath a node.
func collectText(n node) string {
	parts := make([]string, 0, 1+len(n.Children))
	if t := strings.TrimSpace(n.Text); t != "" {
		parts = append(parts, t)
	}
	for _, child := range n.Children {
		if t := collectText(child); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// itemHeading matches the "Item <number><optional letter>. <heading>"
// layout convention of annual/quarterly/current reports.
var itemHeading = regexp.MustCompile(`(?i)Item\s+\d+[A-Z]?\.?\s+[^\n]+`)

// findItemSections locates section boundaries in flattened text. The
// text before the first heading becomes an Introduction section; each
// heading starts a section running until the next one. Returns nil when
// no heading was found.
func findItemSections(text string) []domain.Section {
	locs := itemHeading.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var sections []domain.Section
	if intro := strings.TrimSpace(text[:locs[0][0]]); intro != "" {
		sections = append(sections, domain.Section{Title: introTitle, Content: intro})
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, domain.Section{
			Title:   strings.TrimSpace(text[loc[0]:loc[1]]),
			Content: strings.TrimSpace(text[loc[0]:end]),
		})
	}
	return sections
}

// Pre-compiled regular expressions for markup stripping performance.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripMarkup removes markup tags and extracts readable text. Block
// elements become newlines so the Item-heading scan can bound heading
// lines.
func stripMarkup(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = blockOpen.ReplaceAllString(content, "\n")
	content = blockClose.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
