// Package catalog holds the static grocery reference data used to pre-fill
// new items: category, icon, kcal and a curiosity line per known product.
// The data is read-only; lookups are by normalized name.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Entry is one catalog record.
type Entry struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Icon       string `json:"icon"`
	KcalPer100 int    `json:"kcalPer100,omitempty"`
	Curiosity  string `json:"curiosity,omitempty"`
}

// CategoryOther is the fallback category for anything the catalog and the
// keyword heuristics cannot place.
const CategoryOther = "Outros"

// Categories lists every known category in display-rank order. Unknown
// categories sort after all of these.
var Categories = []string{
	"Hortifruti",
	"Laticínios",
	"Carnes",
	"Padaria",
	"Mercearia",
	"Bebidas",
	"Higiene",
	"Limpeza",
	"Pet",
	"Congelados",
	"Enlatados",
	"Temperos",
	"Bazar",
}

var categoryRank = func() map[string]int {
	m := make(map[string]int, len(Categories))
	for i, c := range Categories {
		m[c] = i
	}
	return m
}()

// CategoryRank returns the sort rank of a category. Unknown categories rank
// after every known one.
func CategoryRank(category string) int {
	if r, ok := categoryRank[category]; ok {
		return r
	}
	return len(Categories)
}

// CategoryIcon returns the icon for a category, or empty when unknown.
func CategoryIcon(category string) string {
	return categoryIcons[category]
}

var categoryIcons = map[string]string{
	"Hortifruti": "🥬",
	"Laticínios": "🧀",
	"Carnes":     "🥩",
	"Padaria":    "🍞",
	"Mercearia":  "🧺",
	"Bebidas":    "🥤",
	"Higiene":    "🧼",
	"Limpeza":    "🧽",
	"Pet":        "🐾",
	"Congelados": "🧊",
	"Enlatados":  "🥫",
	"Temperos":   "🌿",
	"Bazar":      "🧰",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a product name and strips accents so that
// "Limão Taiti" and "limao taiti" compare equal.
func Normalize(name string) string {
	s, _, err := transform.String(stripAccents, name)
	if err != nil {
		s = name
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Find returns the catalog entry for a product name. The match is exact on
// the normalized name first, then by substring in either direction, so
// "Arroz 5kg" still finds "Arroz". Returns nil when nothing matches.
func Find(name string) *Entry {
	q := Normalize(name)
	if q == "" {
		return nil
	}
	for i := range entries {
		if entries[i].norm == q {
			return &entries[i].Entry
		}
	}
	for i := range entries {
		if strings.Contains(q, entries[i].norm) || strings.Contains(entries[i].norm, q) {
			return &entries[i].Entry
		}
	}
	return nil
}

// GuessCategory assigns a category for a product name: catalog match first,
// then a small set of keyword heuristics, then Outros. This is what the
// receipt importer uses for every parsed line.
func GuessCategory(name string) string {
	if e := Find(name); e != nil {
		return e.Category
	}
	q := Normalize(name)
	for _, h := range keywordHeuristics {
		for _, kw := range h.keywords {
			if strings.Contains(q, kw) {
				return h.category
			}
		}
	}
	return CategoryOther
}

type heuristic struct {
	category string
	keywords []string
}

// Coarse buckets for names the catalog does not know. Keywords are already
// normalized (lowercase, no accents).
var keywordHeuristics = []heuristic{
	{"Hortifruti", []string{"fruta", "verdura", "legume", "folha", "salada", "org"}},
	{"Limpeza", []string{"deterg", "sabao", "desinf", "amaciante", "alvej", "esponja", "limp"}},
	{"Mercearia", []string{"arroz", "feijao", "acucar", "farinha", "macarrao", "oleo", "sal ", "cafe"}},
	{"Bebidas", []string{"refri", "suco", "cerveja", "vinho", "agua", "bebida"}},
	{"Higiene", []string{"shampoo", "sabonete", "papel hig", "creme dental", "desod"}},
	{"Carnes", []string{"carne", "frango", "peixe", "linguica", "bife", "file"}},
	{"Laticínios", []string{"leite", "queijo", "iogurte", "manteiga", "requeij"}},
	{"Padaria", []string{"pao", "bolo", "biscoito", "torrada"}},
}
