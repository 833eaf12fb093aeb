package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHashtags(t *testing.T) {
	tags := ParseHashtags("Hot take: #typescript is great. #TypeScript rules")
	require.Equal(t, []string{"typescript", "typescript"}, tags)
	require.Equal(t, []string{"typescript"}, Distinct(tags))

	assert.Equal(t, []string{}, ParseHashtags("no tags here"))
	assert.Equal(t, []string{"go", "golang"}, ParseHashtags("#go and #golang"))
	// '#' followed by a non-word char is not a tag
	assert.Equal(t, []string{}, ParseHashtags("# nope #!bang"))
}

func TestParseMentions(t *testing.T) {
	handles := ParseMentions("Thanks @alice_dev and @Alice_Dev")
	require.Equal(t, []string{"alice_dev", "alice_dev"}, handles)
	require.Equal(t, []string{"alice_dev"}, Distinct(handles))

	assert.Equal(t, []string{}, ParseMentions("no mentions here"))
	// '@' inside an email still parses as a mention; resolution drops it later
	// when no such handle exists
	assert.Equal(t, []string{"example"}, ParseMentions("email me at alice@example"))
}

func TestParseUrls(t *testing.T) {
	urls := ParseUrls("see https://example.com/a and http://x.io")
	require.Equal(t, []string{"https://example.com/a", "http://x.io"}, urls)

	assert.Equal(t, []string{}, ParseUrls("ftp://not.supported and plain text"))
	// url runs until whitespace, trailing punctuation included
	assert.Equal(t, []string{"https://example.com/a?b=1&c=2"}, ParseUrls("https://example.com/a?b=1&c=2"))
}

func TestParsersAreIdempotent(t *testing.T) {
	text := "mixed #Tag @User https://a.b/c #tag @user https://a.b/c"
	first := struct {
		tags, handles, urls []string
	}{ParseHashtags(text), ParseMentions(text), ParseUrls(text)}
	second := struct {
		tags, handles, urls []string
	}{ParseHashtags(text), ParseMentions(text), ParseUrls(text)}

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(first)); diff != "" {
		t.Errorf("parsers not deterministic, diff: %s", diff)
	}

	require.Equal(t, []string{"tag"}, Distinct(first.tags))
	require.Equal(t, []string{"user"}, Distinct(first.handles))
	require.Equal(t, []string{"https://a.b/c"}, Distinct(first.urls))
}

func TestDistinctKeepsFirstSeenOrder(t *testing.T) {
	require.Equal(t, []string{"b", "a", "c"}, Distinct([]string{"b", "a", "b", "c", "a"}))
	require.Equal(t, []string{}, Distinct([]string{}))
}
