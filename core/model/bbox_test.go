package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxRoundTrip(t *testing.T) {
	boxes := []BBox{
		{0, 0, 100, 100},
		{5.5, 7.25, 6.75, 11.1},
		{30, 12, 31.5, 16},
	}
	for _, b := range boxes {
		parsed, err := ParseBBox(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}

func TestParseBBoxInvalid(t *testing.T) {
	cases := []string{"", "not json", "[1, 2, 3]", "{\"x\": 1}"}
	for _, c := range cases {
		_, err := ParseBBox(c)
		assert.Error(t, err, "input %q", c)
	}
}
