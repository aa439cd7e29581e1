package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"patient-migration-core/internal/modules/deduplication/dto"
)

func strPtr(s string) *string {
	return &s
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testRecord(id int64, first, last string) dto.SourceRecord {
	return dto.SourceRecord{
		LegacyID:  id,
		FirstName: first,
		LastName:  last,
		CreatedAt: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newSimilarityService() *SimilarityService {
	return NewSimilarityService(dto.DefaultDedupConfig())
}

func TestDefaultDedupConfig(t *testing.T) {
	cfg := dto.DefaultDedupConfig()

	total := cfg.Weights.Name + cfg.Weights.Email + cfg.Weights.Phone + cfg.Weights.DateOfBirth
	assert.InDelta(t, 1.0, total, 1e-9)

	assert.Greater(t, cfg.AutomaticThreshold, cfg.ReviewThreshold)
}

func TestSimilarityService_NameScore(t *testing.T) {
	s := newSimilarityService()

	// Nom vide d'un côté : facteur nul
	a := testRecord(1, "", "")
	b := testRecord(2, "John", "Smith")
	factors, _ := s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.Name)

	// Noms normalisés identiques
	a = testRecord(1, "  JOHN ", "S.m.i.t.h")
	b = testRecord(2, "John", "Smith")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.Name)

	// Distance d'édition + bonus nom de famille : "mary smith" vs
	// "john smith" = 1 - 4/10 + 0.3
	a = testRecord(1, "Mary", "Smith")
	b = testRecord(2, "John", "Smith")
	factors, _ = s.Score(&a, &b)
	assert.InDelta(t, 0.9, factors.Name, 1e-9)

	// Le score est plafonné à 1.0 : "jon smith" vs "john smith" donne
	// 0.9 + 0.3 de bonus famille
	a = testRecord(1, "Jon", "Smith")
	b = testRecord(2, "John", "Smith")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.Name)
}

func TestSimilarityService_EmailScore(t *testing.T) {
	s := newSimilarityService()

	a := testRecord(1, "John", "Smith")
	b := testRecord(2, "John", "Smith")

	// Email absent d'un côté : facteur nul
	a.Email = strPtr("john@x.com")
	b.Email = nil
	factors, _ := s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.Email)

	// Correspondance exacte après normalisation (casse ignorée)
	b.Email = strPtr("JOHN@X.COM")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.Email)

	// La normalisation supprime tous les séparateurs, y compris '@' et '.' :
	// deux adresses différentes peuvent devenir identiques
	a.Email = strPtr("j.ohn@x.com")
	b.Email = strPtr("john@x.com")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.Email)

	// Similarité au-dessus de 0.8 : retournée telle quelle
	a.Email = strPtr("johnsmith@x.com")
	b.Email = strPtr("johnsmyth@x.com")
	factors, _ = s.Score(&a, &b)
	assert.InDelta(t, 1.0-1.0/13.0, factors.Email, 1e-9)

	// Similarité insuffisante : facteur nul
	a.Email = strPtr("alice@x.com")
	b.Email = strPtr("bob@y.org")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.Email)
}

func TestSimilarityService_PhoneScore(t *testing.T) {
	s := newSimilarityService()

	a := testRecord(3, "Jane", "Doe")
	b := testRecord(4, "Jane", "Doe")

	// Même numéro sous deux formats : score exactement 1.0
	a.Phone = strPtr("(555) 123-4567")
	b.Phone = strPtr("5551234567")
	factors, _ := s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.Phone)

	// Préfixe d'indicatif différent : inclusion de chaînes de chiffres
	a.Phone = strPtr("+1 555 123 4567")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.8, factors.Phone)

	// Numéros sans rapport
	a.Phone = strPtr("0401020304")
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.Phone)

	// Numéro manquant
	a.Phone = nil
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.Phone)
}

func TestSimilarityService_DateOfBirthScore(t *testing.T) {
	s := newSimilarityService()

	a := testRecord(1, "John", "Smith")
	b := testRecord(2, "John", "Smith")

	// Date absente
	a.DateOfBirth = datePtr(1980, time.January, 1)
	b.DateOfBirth = nil
	factors, _ := s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.DateOfBirth)

	// Correspondance exacte
	b.DateOfBirth = datePtr(1980, time.January, 1)
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 1.0, factors.DateOfBirth)

	// Inversion jour/mois (erreur de saisie courante)
	a.DateOfBirth = datePtr(1980, time.March, 7)
	b.DateOfBirth = datePtr(1980, time.July, 3)
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.8, factors.DateOfBirth)

	// Décalage d'exactement un an
	a.DateOfBirth = datePtr(1980, time.January, 1)
	b.DateOfBirth = datePtr(1981, time.January, 1)
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.7, factors.DateOfBirth)

	// Dates sans rapport
	b.DateOfBirth = datePtr(1985, time.June, 15)
	factors, _ = s.Score(&a, &b)
	assert.Equal(t, 0.0, factors.DateOfBirth)
}

func TestSimilarityService_CombinedConfidence(t *testing.T) {
	s := newSimilarityService()

	// Idempotence sur correspondance exacte : les quatre signaux identiques
	// donnent une confiance de 1.0
	a := testRecord(1, "John", "Smith")
	a.Email = strPtr("john@x.com")
	a.Phone = strPtr("5551234567")
	a.DateOfBirth = datePtr(1980, time.January, 1)

	b := testRecord(2, "John", "Smith")
	b.Email = strPtr("john@x.com")
	b.Phone = strPtr("(555) 123-4567")
	b.DateOfBirth = datePtr(1980, time.January, 1)

	_, confidence := s.Score(&a, &b)
	assert.InDelta(t, 1.0, confidence, 1e-9)

	// Champs manquants absorbés en facteur 0 : seuls les noms pèsent
	a = testRecord(1, "John", "Smith")
	b = testRecord(2, "John", "Smith")
	_, confidence = s.Score(&a, &b)
	assert.InDelta(t, 0.4, confidence, 1e-9)

	// La fonction de score est symétrique
	a.Email = strPtr("john@x.com")
	b.DateOfBirth = datePtr(1980, time.January, 1)
	_, confAB := s.Score(&a, &b)
	_, confBA := s.Score(&b, &a)
	assert.Equal(t, confAB, confBA)
}
