package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-migration-core/internal/modules/deduplication/dto"
)

func newMergeService() *MergeService {
	return NewMergeService(dto.DefaultDedupConfig())
}

func TestMergeService_Classify(t *testing.T) {
	s := newMergeService()

	assert.Equal(t, dto.MergeStrategyAutomatic, s.Classify(1.0))
	assert.Equal(t, dto.MergeStrategyAutomatic, s.Classify(0.95))
	assert.Equal(t, dto.MergeStrategyManualReview, s.Classify(0.90))
	assert.Equal(t, dto.MergeStrategyManualReview, s.Classify(0.75))
	assert.Equal(t, dto.MergeStrategySkip, s.Classify(0.74))
	assert.Equal(t, dto.MergeStrategySkip, s.Classify(0.0))
}

func TestMergeService_ResolveAutomaticPopulatesMergedData(t *testing.T) {
	s := newMergeService()

	candidate := dto.DeduplicationCandidate{
		Primary:    testRecord(1, "John", "Smith"),
		Duplicates: []dto.SourceRecord{testRecord(2, "John", "Smith")},
		Confidence: 0.97,
	}
	s.Resolve(&candidate)

	assert.Equal(t, dto.MergeStrategyAutomatic, candidate.Strategy)
	require.NotNil(t, candidate.MergedData)
	assert.Equal(t, []int64{1, 2}, candidate.MergedData.Provenance.LegacyIDs)
}

func TestMergeService_ResolveManualReviewLeavesMergedDataEmpty(t *testing.T) {
	s := newMergeService()

	candidate := dto.DeduplicationCandidate{
		Primary:    testRecord(1, "John", "Smith"),
		Duplicates: []dto.SourceRecord{testRecord(2, "Jon", "Smith")},
		Confidence: 0.80,
	}
	s.Resolve(&candidate)

	assert.Equal(t, dto.MergeStrategyManualReview, candidate.Strategy)
	assert.Nil(t, candidate.MergedData)
}

func TestMergeService_FuseClusterNamesFromPrimaryOnly(t *testing.T) {
	s := newMergeService()

	primary := testRecord(1, "John", "Smith")
	duplicate := testRecord(2, "Johnny", "Smyth")

	merged := s.FuseCluster(primary, []dto.SourceRecord{duplicate})

	assert.Equal(t, "John", merged.FirstName)
	assert.Equal(t, "Smith", merged.LastName)
	assert.Equal(t, "SMI-000001", merged.PatientNumber)
	assert.NotEqual(t, merged.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestMergeService_FuseClusterEmailMostRecentlyUpdated(t *testing.T) {
	s := newMergeService()

	primary := testRecord(1, "John", "Smith")
	primary.Email = strPtr("old@x.com")
	primary.UpdatedAt = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	duplicate := testRecord(2, "John", "Smith")
	duplicate.Email = strPtr("recent@x.com")
	duplicate.UpdatedAt = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	merged := s.FuseCluster(primary, []dto.SourceRecord{duplicate})
	require.NotNil(t, merged.Email)
	assert.Equal(t, "recent@x.com", *merged.Email)

	// Un membre sans updated_at est daté "maintenant" : il gagne face à
	// tous les membres horodatés (comportement hérité conservé)
	noTimestamp := testRecord(3, "John", "Smith")
	noTimestamp.Email = strPtr("untimed@x.com")
	noTimestamp.UpdatedAt = time.Time{}

	merged = s.FuseCluster(primary, []dto.SourceRecord{duplicate, noTimestamp})
	require.NotNil(t, merged.Email)
	assert.Equal(t, "untimed@x.com", *merged.Email)

	// Les membres sans email sont ignorés
	primary.Email = nil
	merged = s.FuseCluster(primary, []dto.SourceRecord{duplicate})
	require.NotNil(t, merged.Email)
	assert.Equal(t, "recent@x.com", *merged.Email)
}

func TestMergeService_FuseClusterFirstNonNilFieldsInOrder(t *testing.T) {
	s := newMergeService()

	// Le primaire n'a ni date de naissance ni genre : la première valeur
	// non nulle trouvée dans l'ordre des membres l'emporte
	primary := testRecord(1, "John", "Smith")

	d1 := testRecord(2, "John", "Smith")
	d1.DateOfBirth = datePtr(1980, time.January, 1)

	d2 := testRecord(3, "John", "Smith")
	d2.DateOfBirth = datePtr(1990, time.May, 5)
	d2.Gender = strPtr("male")

	merged := s.FuseCluster(primary, []dto.SourceRecord{d1, d2})

	require.NotNil(t, merged.DateOfBirth)
	assert.Equal(t, 1980, merged.DateOfBirth.Year())
	require.NotNil(t, merged.Gender)
	assert.Equal(t, "male", *merged.Gender)
}

func TestMergeService_FuseClusterEarliestCreatedAt(t *testing.T) {
	s := newMergeService()

	primary := testRecord(1, "John", "Smith")
	primary.CreatedAt = time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC)

	duplicate := testRecord(2, "John", "Smith")
	duplicate.CreatedAt = time.Date(2009, 7, 15, 0, 0, 0, 0, time.UTC)

	before := time.Now()
	merged := s.FuseCluster(primary, []dto.SourceRecord{duplicate})

	assert.Equal(t, duplicate.CreatedAt, merged.CreatedAt)
	assert.False(t, merged.UpdatedAt.Before(before)) // updated_at = heure de fusion
	assert.False(t, merged.Provenance.MergedAt.Before(before))
}

func TestMergeService_FuseClusterProvenance(t *testing.T) {
	s := newMergeService()

	primary := testRecord(10, "John", "Smith")
	d1 := testRecord(20, "John", "Smith")
	d2 := testRecord(30, "John", "Smith")

	merged := s.FuseCluster(primary, []dto.SourceRecord{d1, d2})

	assert.Equal(t, []int64{10, 20, 30}, merged.Provenance.LegacyIDs)
	assert.Equal(t, int64(10), merged.Provenance.PrimaryLegacyID)
}

func TestMergeService_ConvertRecordPassthrough(t *testing.T) {
	s := newMergeService()

	record := testRecord(7, "Alice", "Durand")
	record.Email = strPtr("alice@x.com")
	record.Gender = strPtr("female")
	record.DateOfBirth = datePtr(1975, time.June, 30)

	converted := s.ConvertRecord(record)

	assert.Equal(t, "Alice", converted.FirstName)
	assert.Equal(t, "Durand", converted.LastName)
	assert.Equal(t, "DUR-000007", converted.PatientNumber)
	require.NotNil(t, converted.Email)
	assert.Equal(t, "alice@x.com", *converted.Email)
	assert.Equal(t, []int64{7}, converted.Provenance.LegacyIDs)
	assert.Equal(t, int64(7), converted.Provenance.PrimaryLegacyID)
}

func TestPatientNumber(t *testing.T) {
	long := testRecord(123, "John", "Smith")
	assert.Equal(t, "SMI-000123", PatientNumber(&long))

	// Nom de famille court : complété avec X
	short := testRecord(4, "Bo", "Li")
	assert.Equal(t, "LIX-000004", PatientNumber(&short))

	// Nom vide : préfixe entièrement complété
	empty := testRecord(5, "X", "")
	assert.Equal(t, "XXX-000005", PatientNumber(&empty))

	// La ponctuation est normalisée avant le préfixe
	punct := testRecord(6, "Mary", "O'Brien")
	assert.Equal(t, "OBR-000006", PatientNumber(&punct))
}
