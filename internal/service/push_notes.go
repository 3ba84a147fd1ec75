package service

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/MKhiriev/go-note-sync/models"
)

const (
	maxNoteTitleLength = 255
	titleEllipsis      = "..."
	untitledNoteTitle  = "Untitled note"
)

// blockElements break words when converting ENML to plain text.
var blockElements = map[string]struct{}{
	"en-note": {}, "div": {}, "p": {}, "br": {}, "hr": {}, "li": {}, "ul": {}, "ol": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"table": {}, "tr": {}, "td": {}, "th": {}, "blockquote": {}, "pre": {}, "en-todo": {},
}

// skippedElements carry no readable text.
var skippedElements = map[string]struct{}{
	"en-crypt": {}, "style": {}, "script": {},
}

// enmlPlainText extracts the text nodes of an ENML document and collapses
// all whitespace into single spaces.
func enmlPlainText(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))

	var (
		b    strings.Builder
		skip int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if _, ok := skippedElements[string(name)]; ok {
				skip++
				continue
			}
			if _, ok := blockElements[string(name)]; ok {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if _, ok := skippedElements[string(name)]; ok && skip > 0 {
				skip--
				continue
			}
			if _, ok := blockElements[string(name)]; ok {
				b.WriteByte(' ')
			}
		}
	}
}

// titleFromText shortens text to a one-line title ending with an ellipsis.
func titleFromText(text string) string {
	limit := maxNoteTitleLength - len(titleEllipsis)
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return strings.TrimRightFunc(string(runes), unicode.IsSpace) + titleEllipsis
}

// prepareNoteForUpload applies the upload rules for notes: a deleted note is
// inactive, an empty title is synthesized from the content, and a manual
// title clears a stale "untitled" quality marker.
func prepareNoteForUpload(note *models.Note) {
	if note.Deleted != nil {
		note.Active = false
	}

	if strings.TrimSpace(note.Title) == "" {
		quality := models.NoteTitleQualityLow
		text := enmlPlainText(note.Content)
		if text == "" {
			note.Title = untitledNoteTitle
			quality = models.NoteTitleQualityUntitled
		} else {
			note.Title = titleFromText(text)
		}
		note.Attributes.NoteTitleQuality = &quality
		return
	}

	if q := note.Attributes.NoteTitleQuality; q != nil && *q == models.NoteTitleQualityUntitled {
		note.Attributes.NoteTitleQuality = nil
	}
}
