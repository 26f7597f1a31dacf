package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "—", FormatScore(nil))
	assert.Equal(t, "4.5", FormatScore(fptr(4.5)))
	assert.Equal(t, "4.0", FormatScore(fptr(4)))
}

func TestFormatScoreStars(t *testing.T) {
	assert.Equal(t, "—", FormatScoreStars(nil))
	assert.Equal(t, "★★★★☆", FormatScoreStars(fptr(4.3)))
	assert.Equal(t, "★★★★★", FormatScoreStars(fptr(4.5)))
	assert.Equal(t, "★☆☆☆☆", FormatScoreStars(fptr(1)))
}

func TestFormatReviewCount(t *testing.T) {
	assert.Equal(t, "No ratings yet", FormatReviewCount(0))
	assert.Equal(t, "1 review", FormatReviewCount(1))
	assert.Equal(t, "7 reviews", FormatReviewCount(7))
}

func TestFormatTableCount(t *testing.T) {
	assert.Equal(t, "—", FormatTableCount(nil))
	assert.Equal(t, "1 table", FormatTableCount(iptr(1)))
	assert.Equal(t, "9 tables", FormatTableCount(iptr(9)))
}

func TestFormatAuthor(t *testing.T) {
	assert.Equal(t, "Anonymous", FormatAuthor(""))
	assert.Equal(t, "Anonymous", FormatAuthor("   "))
	assert.Equal(t, "chalkhand", FormatAuthor("chalkhand"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "long st...", TruncateString("long string here", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
