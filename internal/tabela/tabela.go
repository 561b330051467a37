package tabela

import (
	"errors"
	"strconv"
	"strings"
)

// ErrFormato indica uma fonte que não é planilha legível (extensão ou conteúdo).
var ErrFormato = errors.New("formato de planilha não suportado")

// ColunasFaltantesError carrega a lista de colunas obrigatórias ausentes.
// A mensagem é a mesma exibida ao usuário final.
type ColunasFaltantesError struct {
	Colunas []string
}

func (e *ColunasFaltantesError) Error() string {
	return "Planilha fora do padrão. Colunas faltantes: " + strings.Join(e.Colunas, ", ")
}

// Tabela é a representação normalizada em memória de uma fonte tabular.
// Todas as células são strings; colunas de prazo são normalizadas na leitura.
type Tabela struct {
	Colunas []string
	Linhas  [][]string
}

func (t *Tabela) Indice(col string) int {
	for i, c := range t.Colunas {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(col)) {
			return i
		}
	}
	return -1
}

func (t *Tabela) Valor(linha int, col string) string {
	i := t.Indice(col)
	if i < 0 || linha < 0 || linha >= len(t.Linhas) || i >= len(t.Linhas[linha]) {
		return ""
	}
	return t.Linhas[linha][i]
}

// Inteiro converte a célula para int; vazio ou ilegível vira 0.
func (t *Tabela) Inteiro(linha int, col string) int {
	return ParaInteiro(t.Valor(linha, col))
}

func (t *Tabela) ExigirColunas(cols ...string) error {
	var faltantes []string
	for _, c := range cols {
		if t.Indice(c) < 0 {
			faltantes = append(faltantes, c)
		}
	}
	if len(faltantes) > 0 {
		return &ColunasFaltantesError{Colunas: faltantes}
	}
	return nil
}

// RenomearColuna troca o nome da primeira coluna equivalente (case-insensitive).
func (t *Tabela) RenomearColuna(de, para string) bool {
	i := t.Indice(de)
	if i < 0 {
		return false
	}
	t.Colunas[i] = para
	return true
}

// ParaInteiro aceita "3", "3.0", "3,0" e variantes com espaço; o resto vira 0.
func ParaInteiro(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// colunaDePrazo reconhece colunas de promessa de entrega pelo nome.
func colunaDePrazo(nome string) bool {
	n := strings.ToLower(nome)
	for _, marca := range []string{"prazo", "dias", "dia", "entrega"} {
		if strings.Contains(n, marca) {
			return true
		}
	}
	return false
}

// normalizar aplica o passo obrigatório de limpeza: remove linhas totalmente
// vazias, remove cabeçalhos repetidos no meio dos dados e converte colunas de
// prazo para inteiros (vazio vira 0).
func (t *Tabela) normalizar() {
	prazos := make([]bool, len(t.Colunas))
	for i, c := range t.Colunas {
		prazos[i] = colunaDePrazo(c)
	}

	var limpas [][]string
	for _, linha := range t.Linhas {
		// Garante largura fixa; leitores de xlsx descartam células finais vazias.
		for len(linha) < len(t.Colunas) {
			linha = append(linha, "")
		}
		linha = linha[:len(t.Colunas)]

		if linhaVazia(linha) || cabecalhoRepetido(t.Colunas, linha) {
			continue
		}
		for i := range linha {
			if prazos[i] {
				linha[i] = strconv.Itoa(ParaInteiro(linha[i]))
			}
		}
		limpas = append(limpas, linha)
	}
	t.Linhas = limpas
}

func linhaVazia(linha []string) bool {
	for _, c := range linha {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cabecalhoRepetido(colunas, linha []string) bool {
	repetiu := false
	for i, c := range linha {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.EqualFold(c, strings.TrimSpace(colunas[i])) {
			return false
		}
		repetiu = true
	}
	return repetiu
}
