package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvenanceChecksum(t *testing.T) {
	a := ProvenanceChecksum([]int64{3, 1, 2})
	b := ProvenanceChecksum([]int64{1, 2, 3})

	// L'empreinte est indépendante de l'ordre de fusion
	assert.Equal(t, a, b)
	assert.Len(t, a, 128) // SHA512 hex

	// Des ensembles différents produisent des empreintes différentes
	assert.NotEqual(t, a, ProvenanceChecksum([]int64{1, 2, 4}))

	// La concaténation est délimitée : {12, 3} != {1, 23}
	assert.NotEqual(t, ProvenanceChecksum([]int64{12, 3}), ProvenanceChecksum([]int64{1, 23}))
}
