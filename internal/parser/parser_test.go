package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

func TestParse_StructuredDocument(t *testing.T) {
	raw := []byte(`<document>
		<heading>Item 1A. Risk Factors</heading>
		<para>Cyberattacks could disrupt our operations.</para>
		<heading>Item 1C. Cybersecurity</heading>
		<para>We maintain an incident response program.</para>
	</document>`)

	doc := New().Parse(raw, "test.xml")

	assert.Equal(t, "test.xml", doc.Name)
	assert.Equal(t, domain.ParseModeStructured, doc.Mode)
	require.Len(t, doc.Sections, 2)

	assert.Equal(t, "Item 1A. Risk Factors", doc.Sections[0].Title)
	assert.Contains(t, doc.Sections[0].Content, "Cyberattacks could disrupt")
	assert.Equal(t, "Item 1C. Cybersecurity", doc.Sections[1].Title)
	assert.Contains(t, doc.Sections[1].Content, "incident response program")
}

func TestParse_StructuredPreamble(t *testing.T) {
	raw := []byte(`<document>
		<meta>Annual report for fiscal year 2023</meta>
		<title>Item 7. Management's Discussion</title>
		<para>Remediation costs increased.</para>
	</document>`)

	doc := New().Parse(raw, "test.xml")

	require.Equal(t, domain.ParseModeStructured, doc.Mode)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Introduction", doc.Sections[0].Title)
	assert.Contains(t, doc.Sections[0].Content, "Annual report")
}

func TestParse_StructuredEntities(t *testing.T) {
	raw := []byte(`<document><heading>Risk Factors</heading><para>Research &amp; development risks.</para></document>`)

	doc := New().Parse(raw, "test.xml")

	require.Equal(t, domain.ParseModeStructured, doc.Mode)
	require.Len(t, doc.Sections, 1)
	assert.Contains(t, doc.Sections[0].Content, "Research & development")
}

func TestParse_MalformedFallsBackToItemPattern(t *testing.T) {
	raw := []byte(`<html><body>
		<p>UNITEDHEALTH GROUP ANNUAL REPORT</p>
		<p>Item 1A. Risk Factors</p>
		<p>A cybersecurity incident at Change Healthcare disrupted claims processing.</p>
		<p>Item 7. Management&#8217;s Discussion and Analysis</p>
		<p>We incurred direct response costs.</p>
	</body>`) // Unclosed html tag: strict parse fails

	doc := New().Parse(raw, "test.htm")

	assert.Equal(t, domain.ParseModeItemPattern, doc.Mode)
	require.Len(t, doc.Sections, 3)

	assert.Equal(t, "Introduction", doc.Sections[0].Title)
	assert.Contains(t, doc.Sections[0].Content, "ANNUAL REPORT")

	assert.Equal(t, "Item 1A. Risk Factors", doc.Sections[1].Title)
	assert.Contains(t, doc.Sections[1].Content, "Change Healthcare")

	assert.Contains(t, doc.Sections[2].Title, "Item 7.")
	assert.Contains(t, doc.Sections[2].Content, "direct response costs")
}

func TestParse_ItemLetterSuffix(t *testing.T) {
	raw := []byte("Item 1C. Cybersecurity\nRisk management and strategy.\nItem 2. Properties\nOur facilities.")

	doc := New().Parse(raw, "plain.txt")

	assert.Equal(t, domain.ParseModeItemPattern, doc.Mode)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Item 1C. Cybersecurity", doc.Sections[0].Title)
}

func TestParse_FlatDocument(t *testing.T) {
	raw := []byte("<p>Just a press release about a data breach with no item structure.</p")

	doc := New().Parse(raw, "release.htm")

	assert.Equal(t, domain.ParseModeFlat, doc.Mode)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Content", doc.Sections[0].Title)
	assert.Contains(t, doc.Sections[0].Content, "data breach")
}

func TestParse_NoTextDropped(t *testing.T) {
	raw := []byte(`<doc>
		<heading>One</heading>
		<a>alpha <b>beta</b> gamma</a>
	</doc>`)

	doc := New().Parse(raw, "nested.xml")

	require.Equal(t, domain.ParseModeStructured, doc.Mode)
	require.Len(t, doc.Sections, 1)
	content := doc.Sections[0].Content
	assert.Contains(t, content, "alpha")
	assert.Contains(t, content, "beta")
	assert.Contains(t, content, "gamma")
	assert.Equal(t, 1, countOccurrences(content, "beta"), "nested text appears exactly once")
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestStripMarkup(t *testing.T) {
	raw := `<html><head><style>p { color: red; }</style>
<script>alert("x");</script></head>
<body><!-- comment --><p>First &amp; second</p><div>Third</div></body></html>`

	text := stripMarkup(raw)

	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "comment")
	assert.Contains(t, text, "First & second")
	assert.Contains(t, text, "Third")
}

func TestStripMarkup_BlockTagsBecomeNewlines(t *testing.T) {
	text := stripMarkup("<p>line one</p><p>Item 1A. Risk Factors</p><p>line three</p>")

	assert.Equal(t, "line one\nItem 1A. Risk Factors\nline three", text)
}
