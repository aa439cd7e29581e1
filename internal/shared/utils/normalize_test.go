package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "johnsmith", NormalizeToken("  John Smith  "))
	assert.Equal(t, "jeandupont2", NormalizeToken("Jean-Dupont 2"))
	assert.Equal(t, "johnxcom", NormalizeToken("john@x.com"))
	assert.Equal(t, "", NormalizeToken(""))
	assert.Equal(t, "", NormalizeToken("   "))
	assert.Equal(t, "", NormalizeToken("---"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "john smith", NormalizeName("John", "Smith"))
	assert.Equal(t, "john smith", NormalizeName("  J.O.H.N ", " S-m-i-t-h "))

	// L'espace séparateur est inséré après normalisation : c'est le seul
	// caractère non alphanumérique possible dans le résultat
	assert.Equal(t, "john", NormalizeName("John", ""))
	assert.Equal(t, "smith", NormalizeName("", "Smith"))
	assert.Equal(t, "", NormalizeName("", ""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "2250701020304", NormalizePhone("+225 07 01 02 03 04"))
	assert.Equal(t, "", NormalizePhone("no digits"))
	assert.Equal(t, "", NormalizePhone(""))
}
