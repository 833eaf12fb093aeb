package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKeyParser(t *testing.T) {
	p := RedisKeyParser{delimiter: "__", prefix: "likes"}

	assert.True(t, p.ValidateId("valid-post-id"))
	assert.False(t, p.ValidateId("invalid__post__id"))

	k, err := p.EncodeLikeCountKey("valid-post-id")
	assert.Nil(t, err)
	assert.Equal(t, "likes__valid-post-id", k)

	_, err = p.EncodeLikeCountKey("invalid__post__id")
	assert.NotNil(t, err)
}
