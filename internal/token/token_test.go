package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenStringNullLiteral(t *testing.T) {
	tok := New(LEFT_PAREN, "(", nil, 1)
	assert.Equal(t, "LEFT_PAREN ( null", tok.String())
}

func TestTokenStringNumberLiteral(t *testing.T) {
	tok := New(NUMBER, "3.0", 3.0, 1)
	assert.Equal(t, "NUMBER 3.0 3", tok.String())
}

func TestTokenStringStringLiteral(t *testing.T) {
	tok := New(STRING, `"hi"`, "hi", 1)
	assert.Equal(t, `STRING "hi" hi`, tok.String())
}

func TestKeywordsCoverReservedWords(t *testing.T) {
	for _, word := range []string{"and", "class", "else", "false", "for", "fun", "if",
		"nil", "or", "print", "return", "super", "this", "true", "var", "while"} {
		_, ok := Keywords[word]
		assert.Truef(t, ok, "missing keyword %q", word)
	}
	_, ok := Keywords["identifier"]
	assert.False(t, ok)
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Type(-1).String())
	assert.Equal(t, "PRINT", PRINT.String())
}
