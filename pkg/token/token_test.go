package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", token.SELECT.String())
	assert.Equal(t, "||", token.DPIPE.String())
	assert.Equal(t, "WITH", token.WITH.String())
	assert.Equal(t, "UNKNOWN", token.TokenType(-1).String())
}

func TestLookupKeyword(t *testing.T) {
	typ, ok := token.LookupKeyword("select")
	assert.True(t, ok)
	assert.Equal(t, token.SELECT, typ)

	_, ok = token.LookupKeyword("patients")
	assert.False(t, ok)
}
