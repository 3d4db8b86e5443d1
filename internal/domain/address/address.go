// Package address resolves free-text Brazilian street addresses into the
// pieces the ERP lookup needs: a street-type prefix and the street name
// proper, plus every abbreviation the ERP may have stored for that
// street type.
package address

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// streetTypes lists the known Portuguese logradouro types. A first token
// matching one of these (or an alias table key) marks the prefix/name
// boundary.
var streetTypes = []string{
	"Acesso",
	"Adro",
	"Aeroporto",
	"Alameda",
	"Alto",
	"Área",
	"Artéria",
	"Atalho",
	"Avenida",
	"Baixa",
	"Balneário",
	"Beco",
	"Bloco",
	"Boulevard",
	"Cais",
	"Calçada",
	"Caminho",
	"Campo",
	"Chácara",
	"Colônia",
	"Condomínio",
	"Conjunto",
	"Corredor",
	"Desvio",
	"Distrito",
	"Eixo",
	"Entrada",
	"Esplanada",
	"Estação",
	"Estrada",
	"Favela",
	"Fazenda",
	"Feira",
	"Galeria",
	"Granja",
	"Jardim",
	"Ladeira",
	"Lago",
	"Lagoa",
	"Largo",
	"Lateral",
	"Loteamento",
	"Mercado",
	"Monte",
	"Morro",
	"Núcleo",
	"Paralela",
	"Parque",
	"Passagem",
	"Passarela",
	"Passeio",
	"Pátio",
	"Ponta",
	"Ponte",
	"Porto",
	"Praça",
	"Praia",
	"Quadra",
	"Ramal",
	"Rampa",
	"Recanto",
	"Residencial",
	"Retorno",
	"Rodovia",
	"Rotatória",
	"Rua",
	"Servidão",
	"Setor",
	"Sítio",
	"Subida",
	"Terminal",
	"Travessa",
	"Trecho",
	"Trevo",
	"Túnel",
	"Vale",
	"Variante",
	"Vereda",
	"Via",
	"Viaduto",
	"Viela",
	"Vila",
	"Zona",
}

// AliasTable maps an abbreviation token to its canonical street type.
// Many abbreviations alias the same canonical name.
type AliasTable map[string]string

// DefaultAliases returns the abbreviation table the ERP data was
// populated with.
func DefaultAliases() AliasTable {
	return AliasTable{
		"R":       "Rua",
		"R.":      "Rua",
		"RUA":     "Rua",
		"Av":      "Avenida",
		"Av.":     "Avenida",
		"A":       "Avenida",
		"Trav":    "Travessa",
		"Trav.":   "Travessa",
		"TV.":     "Travessa",
		"TV":      "Travessa",
		"TVs":     "Travessa",
		"TVS":     "Travessa",
		"Al":      "Alameda",
		"ALA":     "Alameda",
		"ALAMEDA": "Alameda",
		"Al.":     "Alameda",
		"Pç":      "Praça",
		"Pç.":     "Praça",
		"Rod":     "Rodovia",
		"Rod.":    "Rodovia",
		"Est":     "Estrada",
		"Est.":    "Estrada",
		"Jd":      "Jardim",
		"Jd.":     "Jardim",
		"Vl":      "Vila",
		"Vl.":     "Vila",
		"Baln":    "Balneário",
		"Baln.":   "Balneário",
		"Conj":    "Conjunto",
		"Conj.":   "Conjunto",
		"Res":     "Residencial",
		"Res.":    "Residencial",
		"Cond":    "Condomínio",
		"Cond.":   "Condomínio",
		"Pq":      "Parque",
		"Pq.":     "Parque",
		"St":      "Setor",
		"St.":     "Setor",
		"Lot":     "Loteamento",
		"Lot.":    "Loteamento",
	}
}

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks ("São" -> "Sao"). Applying it
// twice equals applying it once.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize applies the one canonical matching policy used across the
// whole pipeline: trim, uppercase, strip diacritics.
func Normalize(s string) string {
	return StripDiacritics(strings.ToUpper(strings.TrimSpace(s)))
}

// SplitStreet splits a free-text street into its street-type prefix and
// the street name proper. The prefix is the raw first token when it
// matches a known street type or alias; otherwise it is empty and the
// name is the whole normalized input. The name side is always
// normalized. Empty input yields an empty pair.
func SplitStreet(input string, aliases AliasTable) (prefix, name string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", ""
	}

	first := fields[0]
	if isStreetType(first) || aliases.isAlias(first) {
		return first, Normalize(strings.Join(fields[1:], " "))
	}
	return "", Normalize(input)
}

func isStreetType(token string) bool {
	probe := Normalize(token)
	for _, t := range streetTypes {
		if Normalize(t) == probe {
			return true
		}
	}
	return false
}

func (t AliasTable) isAlias(token string) bool {
	probe := Normalize(token)
	for abbrev := range t {
		if Normalize(abbrev) == probe {
			return true
		}
	}
	return false
}

// canonicalOf resolves a prefix token to its canonical street type:
// either the token is itself a canonical name or it is an alias key.
func (t AliasTable) canonicalOf(prefix string) string {
	probe := Normalize(prefix)
	if probe == "" {
		return ""
	}
	for abbrev, canonical := range t {
		if Normalize(abbrev) == probe {
			return canonical
		}
	}
	for _, s := range streetTypes {
		if Normalize(s) == probe {
			return s
		}
	}
	return ""
}

// AliasesFor returns every abbreviation that aliases the canonical
// street type of prefix, plus the canonical spelling itself. The ERP
// stores abbreviation codes, so a lookup match may be on any of them.
// An unknown prefix yields an empty set.
func (t AliasTable) AliasesFor(prefix string) []string {
	canonical := t.canonicalOf(prefix)
	if canonical == "" {
		return nil
	}
	out := []string{canonical}
	for abbrev, c := range t {
		if c == canonical {
			out = append(out, abbrev)
		}
	}
	return out
}

// MatchesType reports whether a street-type value stored in the ERP is
// one of the valid abbreviations for prefix.
func (t AliasTable) MatchesType(storedType, prefix string) bool {
	probe := Normalize(storedType)
	for _, abbrev := range t.AliasesFor(prefix) {
		if Normalize(abbrev) == probe {
			return true
		}
	}
	return false
}
