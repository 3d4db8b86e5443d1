package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStreet(t *testing.T) {
	aliases := DefaultAliases()

	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantName   string
	}{
		{
			name:       "canonical prefix",
			input:      "Avenida Brasil",
			wantPrefix: "Avenida",
			wantName:   "BRASIL",
		},
		{
			name:       "abbreviated prefix with dot",
			input:      "Av. Brasil",
			wantPrefix: "Av.",
			wantName:   "BRASIL",
		},
		{
			name:       "prefix case insensitive",
			input:      "rua das Flores",
			wantPrefix: "rua",
			wantName:   "DAS FLORES",
		},
		{
			name:       "accented prefix",
			input:      "Praça da Sé",
			wantPrefix: "Praça",
			wantName:   "DA SE",
		},
		{
			name:       "no known prefix",
			input:      "Beira Mar Norte",
			wantPrefix: "",
			wantName:   "BEIRA MAR NORTE",
		},
		{
			name:       "empty input",
			input:      "",
			wantPrefix: "",
			wantName:   "",
		},
		{
			name:       "whitespace only",
			input:      "   ",
			wantPrefix: "",
			wantName:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, name := SplitStreet(tt.input, aliases)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestStripDiacriticsIdempotent(t *testing.T) {
	inputs := []string{"São João", "Praça", "AVENIDA", "Condomínio Águas Claras", ""}
	for _, in := range inputs {
		once := StripDiacritics(in)
		twice := StripDiacritics(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalizePolicy(t *testing.T) {
	assert.Equal(t, "SAO JOAO", Normalize("  são joão "))
	assert.Equal(t, Normalize("PRAÇA"), Normalize("praça"))
}

func TestAliasesForReverseSymmetry(t *testing.T) {
	aliases := DefaultAliases()
	for abbrev, canonical := range aliases {
		set := aliases.AliasesFor(canonical)
		require.NotEmpty(t, set, "canonical %q", canonical)
		assert.Contains(t, set, abbrev, "canonical %q must map back to %q", canonical, abbrev)
		assert.Contains(t, set, canonical)
	}
}

func TestAliasesForUnknownPrefix(t *testing.T) {
	aliases := DefaultAliases()
	assert.Empty(t, aliases.AliasesFor("Xyz"))
	assert.Empty(t, aliases.AliasesFor(""))
}

func TestMatchesType(t *testing.T) {
	aliases := AliasTable{"Av": "Avenida", "Av.": "Avenida"}

	assert.True(t, aliases.MatchesType("Av", "Av."))
	assert.True(t, aliases.MatchesType("AV.", "Avenida"))
	assert.True(t, aliases.MatchesType("Avenida", "Av"))
	// Stored abbreviation absent from the table resolves to no match,
	// never to an error.
	assert.False(t, aliases.MatchesType("Avda", "Av."))
	assert.False(t, aliases.MatchesType("Av", "Rua"))
}
