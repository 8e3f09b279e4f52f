package conversation

import (
	"strings"
	"testing"

	"ai-docchat-be/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestDeriveName_ShortMessageFallsBack(t *testing.T) {
	assert.Equal(t, constant.FallbackConversationName, DeriveName(""))
	assert.Equal(t, constant.FallbackConversationName, DeriveName("hi"))
	assert.Equal(t, constant.FallbackConversationName, DeriveName("   a   "))
}

func TestDeriveName_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "What is the leave policy?", DeriveName("  What is the leave policy?  "))
}

func TestDeriveName_ExactBoundaryKeptWhole(t *testing.T) {
	msg := strings.Repeat("a", 50)
	assert.Equal(t, msg, DeriveName(msg))
}

func TestDeriveName_LongMessageTruncated(t *testing.T) {
	msg := strings.Repeat("a", 51)
	got := DeriveName(msg)
	assert.Equal(t, strings.Repeat("a", 47)+"...", got)
	assert.Len(t, got, 50)
}

func TestDeriveName_TruncationIsRuneSafe(t *testing.T) {
	msg := strings.Repeat("é", 60)
	got := DeriveName(msg)
	assert.Equal(t, strings.Repeat("é", 47)+"...", got)
}

func TestDeriveName_MinimumLengthKept(t *testing.T) {
	assert.Equal(t, "abc", DeriveName("abc"))
}
