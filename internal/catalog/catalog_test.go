package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Maçã", "maca"},
		{"  Limão Taiti ", "limao taiti"},
		{"ARROZ", "arroz"},
		{"pão francês", "pao frances"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCategory string
		wantNil      bool
	}{
		{"exact", "Arroz", "Mercearia", false},
		{"case and accents", "maça", "Hortifruti", false},
		{"query contains entry", "Arroz 5kg", "Mercearia", false},
		{"entry contains query", "Mussarela", "Laticínios", false},
		{"unknown", "parafuso sextavado", "", true},
		{"blank", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.input)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Find(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Find(%q) = nil, want entry", tt.input)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Find(%q).Category = %q, want %q", tt.input, got.Category, tt.wantCategory)
			}
		})
	}
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Arroz Tio João 5kg", "Mercearia"},
		{"DETERGENTE YPE CLEAR", "Limpeza"},
		{"Suco de uva integral", "Bebidas"},
		{"coisa indecifrável", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := GuessCategory(tt.input); got != tt.want {
				t.Errorf("GuessCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryRank(t *testing.T) {
	if CategoryRank("Hortifruti") != 0 {
		t.Errorf("Hortifruti should rank first, got %d", CategoryRank("Hortifruti"))
	}
	if CategoryRank("Outros") != len(Categories) {
		t.Errorf("unknown category should rank last, got %d", CategoryRank("Outros"))
	}
	if !(CategoryRank("Carnes") > CategoryRank("Laticínios")) {
		t.Error("category rank should follow catalog order")
	}
}
