package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestExtractBearerRejectsMalformedHeaders(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"no prefix":        "abc123",
		"lowercase bearer": "bearer abc123",
		"prefix only":      "Bearer ",
		"wrong scheme":     "Basic abc123",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractBearer(header)
			assert.ErrorIs(t, err, ErrNoBearerToken)
		})
	}
}

func TestExtractBearerKeepsTokenVerbatim(t *testing.T) {
	// Tokens are opaque; embedded spaces after the prefix belong to the token.
	token, err := ExtractBearer("Bearer a b c")
	require.NoError(t, err)
	assert.Equal(t, "a b c", token)
}
