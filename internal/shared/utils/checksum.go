package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sort"
)

// ProvenanceChecksum calcule l'empreinte SHA512 d'un ensemble d'identifiants
// legacy. Les ids sont triés avant hachage : l'empreinte est indépendante de
// l'ordre de fusion, ce qui permet de vérifier qu'aucun dossier source n'a
// été perdu entre deux exécutions sur le même jeu de données
func ProvenanceChecksum(legacyIDs []int64) string {
	sorted := make([]int64, len(legacyIDs))
	copy(sorted, legacyIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	hasher := sha512.New()
	for _, id := range sorted {
		fmt.Fprintf(hasher, "%d;", id)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}
