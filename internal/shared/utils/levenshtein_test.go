package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("", ""))
	assert.Equal(t, 5, LevenshteinDistance("", "smith"))
	assert.Equal(t, 5, LevenshteinDistance("smith", ""))
	assert.Equal(t, 0, LevenshteinDistance("smith", "smith"))

	// Cas classique : substitution + substitution + insertion
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))

	assert.Equal(t, 1, LevenshteinDistance("smith", "smyth"))
	assert.Equal(t, 1, LevenshteinDistance("jon", "john"))
	assert.Equal(t, 2, LevenshteinDistance("flaw", "lawn"))
}
