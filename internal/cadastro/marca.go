package cadastro

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"mpztools/internal/modelo"
)

// MarcaDoLote devolve a marca do lote: a primeira marca válida encontrada.
// Células em branco e o literal de cabeçalho "MARCA" não contam.
func MarcaDoLote(produtos []modelo.Produto) string {
	for _, p := range produtos {
		m := strings.TrimSpace(p.Marca)
		if m == "" || strings.ToUpper(m) == "MARCA" {
			continue
		}
		return m
	}
	return ""
}

var removerAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug normaliza a marca para compor o nome do arquivo: sem acentos, só
// alfanumérico, espaços viram "_". Marca inválida vira "saida".
func Slug(marca string) string {
	s, _, err := transform.String(removerAcentos, marca)
	if err != nil {
		s = marca
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "saida"
	}
	return b.String()
}
