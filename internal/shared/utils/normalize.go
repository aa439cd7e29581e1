package utils

import "strings"

// Helpers de normalisation pour le rapprochement de dossiers patients.
// Toutes les fonctions sont pures et totales : une chaîne vide en entrée
// produit une chaîne vide en sortie, jamais d'erreur.

// NormalizeToken normalise un token d'identité : minuscules, trim,
// suppression de tout caractère hors [a-z0-9]
func NormalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName assemble le nom complet normalisé "prenom nom".
// L'espace séparateur est inséré APRÈS normalisation : c'est le seul
// caractère non alphanumérique pouvant apparaître dans le résultat
func NormalizeName(firstName, lastName string) string {
	return strings.TrimSpace(NormalizeToken(firstName) + " " + NormalizeToken(lastName))
}

// NormalizePhone ne conserve que les chiffres du numéro de téléphone
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
