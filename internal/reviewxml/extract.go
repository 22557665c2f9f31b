// Package reviewxml converts semi-structured agent output into typed
// records. Extraction is a cheap, forgiving substring pass; parsing is
// strict and fails closed with a *SchemaError that drives the caller's
// re-prompt loop.
package reviewxml

import (
	"regexp"
	"strings"
)

var genericXMLPattern = regexp.MustCompile(`(?s)<[^>]+>.*?</[^>]+>`)

// ExtractTag locates the first <tag>...</tag> span in content, taking the
// rightmost closing tag so repeated or nested emission of the same block
// yields the widest span. When the named tag is absent it falls back to
// the first generic angle-bracket span, and when nothing matches at all
// it returns content unchanged so the strict parser produces the
// diagnostic instead.
func ExtractTag(content, tag string) string {
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"

	start := strings.Index(content, openTag)
	end := strings.LastIndex(content, closeTag)
	if start != -1 && end != -1 && end > start {
		return content[start : end+len(closeTag)]
	}

	if m := genericXMLPattern.FindString(content); m != "" {
		return m
	}
	return content
}
