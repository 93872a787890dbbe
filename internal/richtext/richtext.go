// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext renders editor states stored by the CMS to HTML.
package richtext

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/aryes-site/internal/content"
)

// Text format bits of a text node.
const (
	FormatBold = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
)

// Colors maps the editor color states to CSS colors.
var Colors = map[string]string{
	"aryes-blue": "#417aff",
}

// sanitizer allows the tags the renderer emits and inline colors only.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color").Matching(regexp.MustCompile(`(?i)^#[0-9a-f]{3,8}$`)).OnElements("span")
	p.AllowElements("u", "s", "sub", "sup")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return p
}()

type node struct {
	Type     string            `json:"type"`
	Tag      string            `json:"tag,omitempty"`
	ListType string            `json:"listType,omitempty"`
	Text     string            `json:"text,omitempty"`
	Format   json.RawMessage   `json:"format,omitempty"`
	State    map[string]string `json:"$,omitempty"`
	Fields   *linkFields       `json:"fields,omitempty"`
	URL      string            `json:"url,omitempty"`
	Children []node            `json:"children,omitempty"`
}

type linkFields struct {
	URL    string `json:"url"`
	NewTab bool   `json:"newTab"`
}

type document struct {
	Root node `json:"root"`
}

// HTML renders an editor state. An empty state renders to "".
func HTML(state json.RawMessage) (string, error) {
	if len(state) == 0 {
		return "", nil
	}
	var doc document
	if err := json.Unmarshal(state, &doc); err != nil {
		return "", fmt.Errorf("richtext: %w", err)
	}
	var b strings.Builder
	renderChildren(&b, doc.Root.Children)
	return sanitizer.Sanitize(b.String()), nil
}

// Render fills rt.HTML from its state.
func Render(rt *content.RichText) error {
	if rt == nil || len(rt.State) == 0 {
		return nil
	}
	out, err := HTML(rt.State)
	if err != nil {
		return err
	}
	rt.HTML = out
	return nil
}

func renderChildren(b *strings.Builder, nodes []node) {
	for i := range nodes {
		renderNode(b, &nodes[i])
	}
}

func renderNode(b *strings.Builder, n *node) {
	switch n.Type {
	case "text":
		renderText(b, n)
	case "linebreak":
		b.WriteString("<br>")
	case "tab":
		b.WriteString("\t")
	case "paragraph":
		wrap(b, "p", n.Children)
	case "heading":
		tag := n.Tag
		if !isHeading(tag) {
			tag = "h2"
		}
		wrap(b, tag, n.Children)
	case "quote":
		wrap(b, "blockquote", n.Children)
	case "list":
		tag := "ul"
		if n.ListType == "number" || n.Tag == "ol" {
			tag = "ol"
		}
		wrap(b, tag, n.Children)
	case "listitem":
		wrap(b, "li", n.Children)
	case "link", "autolink":
		href := n.URL
		if n.Fields != nil && n.Fields.URL != "" {
			href = n.Fields.URL
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`"`)
		if n.Fields != nil && n.Fields.NewTab {
			b.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		b.WriteString(">")
		renderChildren(b, n.Children)
		b.WriteString("</a>")
	default:
		renderChildren(b, n.Children)
	}
}

func wrap(b *strings.Builder, tag string, children []node) {
	b.WriteString("<" + tag + ">")
	renderChildren(b, children)
	b.WriteString("</" + tag + ">")
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

func renderText(b *strings.Builder, n *node) {
	format := parseFormat(n.Format)
	text := html.EscapeString(n.Text)

	var opening, closing []string
	push := func(tag string) {
		opening = append(opening, "<"+tag+">")
		closing = append([]string{"</" + tag + ">"}, closing...)
	}
	if format&FormatBold != 0 {
		push("strong")
	}
	if format&FormatItalic != 0 {
		push("em")
	}
	if format&FormatUnderline != 0 {
		push("u")
	}
	if format&FormatStrikethrough != 0 {
		push("s")
	}
	if format&FormatCode != 0 {
		push("code")
	}
	if format&FormatSubscript != 0 {
		push("sub")
	}
	if format&FormatSuperscript != 0 {
		push("sup")
	}

	color := Colors[n.State["color"]]
	if color != "" {
		b.WriteString(`<span style="color: ` + color + `">`)
	}
	b.WriteString(strings.Join(opening, ""))
	b.WriteString(text)
	b.WriteString(strings.Join(closing, ""))
	if color != "" {
		b.WriteString("</span>")
	}
}

// parseFormat reads the numeric format bitmask. Older states store the
// format as a space separated list of names.
func parseFormat(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	names := map[string]int{
		"bold":          FormatBold,
		"italic":        FormatItalic,
		"strikethrough": FormatStrikethrough,
		"underline":     FormatUnderline,
		"code":          FormatCode,
		"subscript":     FormatSubscript,
		"superscript":   FormatSuperscript,
	}
	for _, f := range strings.Fields(s) {
		n |= names[f]
	}
	return n
}
