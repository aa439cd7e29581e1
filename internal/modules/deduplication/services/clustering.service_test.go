package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-migration-core/internal/modules/deduplication/dto"
)

func newClusteringService() *ClusteringService {
	cfg := dto.DefaultDedupConfig()
	return NewClusteringService(NewSimilarityService(cfg), cfg)
}

// fullRecord construit un dossier avec les quatre signaux renseignés
func fullRecord(id int64, first, last, email, phone string, dob time.Time) dto.SourceRecord {
	r := testRecord(id, first, last)
	r.Email = &email
	r.Phone = &phone
	r.DateOfBirth = &dob
	return r
}

func TestClusteringService_PairAboveThreshold(t *testing.T) {
	s := newClusteringService()

	dob := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []dto.SourceRecord{
		fullRecord(1, "John", "Smith", "john@x.com", "5551234567", dob),
		fullRecord(2, "John", "Smith", "john@x.com", "5551234567", dob),
	}

	candidates := s.FindCandidates(records)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, int64(1), c.Primary.LegacyID)
	require.Len(t, c.Duplicates, 1)
	assert.Equal(t, int64(2), c.Duplicates[0].LegacyID)
	assert.InDelta(t, 1.0, c.Confidence, 1e-9)
	assert.Equal(t, 1.0, c.Factors.Name)
}

func TestClusteringService_BelowThresholdNoCluster(t *testing.T) {
	s := newClusteringService()

	records := []dto.SourceRecord{
		testRecord(1, "John", "Smith"),
		testRecord(2, "John", "Smith"), // noms seuls : confiance 0.4
		testRecord(3, "Alice", "Durand"),
	}

	assert.Empty(t, s.FindCandidates(records))
}

func TestClusteringService_EachRecordInAtMostOneCluster(t *testing.T) {
	s := newClusteringService()

	dob := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []dto.SourceRecord{
		fullRecord(1, "John", "Smith", "john@x.com", "5551234567", dob),
		fullRecord(2, "John", "Smith", "john@x.com", "5551234567", dob),
		fullRecord(3, "John", "Smith", "john@x.com", "5551234567", dob),
	}

	candidates := s.FindCandidates(records)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(1), candidates[0].Primary.LegacyID)
	assert.Len(t, candidates[0].Duplicates, 2)
}

func TestClusteringService_GreedyForwardPassIsOrderDependent(t *testing.T) {
	s := newClusteringService()

	dob := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

	// A-B = 0.8 (nom + email + date), A-C = 0.7, B-C = 0.9 :
	// la passe gloutonne rattache B à A puis ne recompare jamais C à B
	a := testRecord(1, "John", "Smith")
	a.Email = strPtr("a@x.com")
	a.DateOfBirth = &dob

	b := testRecord(2, "John", "Smith")
	b.Email = strPtr("a@x.com")
	b.Phone = strPtr("5551234567")
	b.DateOfBirth = &dob

	c := testRecord(3, "John", "Smith")
	c.Email = strPtr("a@x.com")
	c.Phone = strPtr("5551234567")

	candidates := s.FindCandidates([]dto.SourceRecord{a, b, c})
	require.Len(t, candidates, 1)

	cluster := candidates[0]
	assert.Equal(t, int64(1), cluster.Primary.LegacyID)
	require.Len(t, cluster.Duplicates, 1)
	assert.Equal(t, int64(2), cluster.Duplicates[0].LegacyID)
	assert.InDelta(t, 0.8, cluster.Confidence, 1e-9)
	// C reste non clusterisé bien qu'il corresponde à B à 0.9
}

func TestClusteringService_RepresentativeScoreIsMaxPair(t *testing.T) {
	s := newClusteringService()

	dob := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

	// Premier doublon à 0.8, second à 1.0 : le score représentatif du
	// cluster est le maximum, avec les facteurs de la paire gagnante
	primary := fullRecord(1, "John", "Smith", "john@x.com", "5551234567", dob)

	weak := testRecord(2, "John", "Smith")
	weak.Email = strPtr("john@x.com")
	weak.DateOfBirth = &dob

	exact := fullRecord(3, "John", "Smith", "john@x.com", "5551234567", dob)

	candidates := s.FindCandidates([]dto.SourceRecord{primary, weak, exact})
	require.Len(t, candidates, 1)
	assert.Len(t, candidates[0].Duplicates, 2)
	assert.InDelta(t, 1.0, candidates[0].Confidence, 1e-9)
	assert.Equal(t, 1.0, candidates[0].Factors.Phone)
}

func TestClusteringService_EmptyInput(t *testing.T) {
	s := newClusteringService()
	assert.Empty(t, s.FindCandidates(nil))
	assert.Empty(t, s.FindCandidates([]dto.SourceRecord{}))
}
