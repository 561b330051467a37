package atributos

import (
	"strconv"
	"strings"
)

// numero interpreta "80", "90,5" e "1.234,5"; retorna 0 e false se ilegível.
func numero(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Padrão brasileiro: ponto de milhar, vírgula decimal. Se só houver
	// ponto, ele é tratado como decimal.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatarMedida produz "80 cm" para inteiros e "90,5 cm" para decimais,
// sempre com vírgula decimal.
func formatarMedida(valor float64, unidade string) string {
	if valor == float64(int64(valor)) {
		return strconv.FormatInt(int64(valor), 10) + " " + unidade
	}
	s := strconv.FormatFloat(valor, 'f', 1, 64)
	return strings.ReplaceAll(s, ".", ",") + " " + unidade
}

func formatarCm(valor float64) string { return formatarMedida(valor, "cm") }
func formatarKg(valor float64) string { return formatarMedida(valor, "kg") }
