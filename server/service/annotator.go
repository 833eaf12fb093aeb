package service

import (
	"regexp"
	"strings"
)

// The annotator is the only piece of enrichment that understands post text.
// All three parsers are pure: same input, same output, no side effects.
var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
)

// ParseHashtags returns every #tag in text, lowercased, in order of
// appearance. Duplicates are kept; callers dedup with Distinct before
// touching storage.
func ParseHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := []string{}
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// ParseMentions returns every @handle in text, lowercased, in order of
// appearance.
func ParseMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	handles := []string{}
	for _, m := range matches {
		handles = append(handles, strings.ToLower(m[1]))
	}
	return handles
}

// ParseUrls returns every http(s) url in text, in order of appearance. Urls
// are not case-normalized since paths are case significant.
func ParseUrls(text string) []string {
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// Distinct collapses duplicates keeping first-seen order.
func Distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
