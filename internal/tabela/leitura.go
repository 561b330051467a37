package tabela

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LerArquivo lê uma planilha local (xlsx/xlsm/xls ou csv) e devolve a tabela
// já normalizada (limpeza + coerção de colunas de prazo).
func LerArquivo(caminho string) (*Tabela, error) {
	switch strings.ToLower(filepath.Ext(caminho)) {
	case ".xlsx", ".xlsm", ".xls":
		return lerExcel(caminho)
	case ".csv", ".txt":
		return lerCSV(caminho)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormato, caminho)
	}
}

func lerExcel(caminho string) (*Tabela, error) {
	f, err := excelize.OpenFile(caminho)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormato, err)
	}
	defer f.Close()

	abas := f.GetSheetList()
	if len(abas) == 0 {
		return nil, fmt.Errorf("%w: arquivo sem abas", ErrFormato)
	}
	linhas, err := f.GetRows(abas[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormato, err)
	}
	return montar(linhas)
}

func lerCSV(caminho string) (*Tabela, error) {
	arq, err := os.Open(caminho)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormato, err)
	}
	defer arq.Close()

	leitor := bufio.NewReader(arq)
	primeira, err := leitor.ReadString('\n')
	if err != nil && primeira == "" {
		return nil, fmt.Errorf("%w: arquivo vazio", ErrFormato)
	}

	sep := detectarSeparador(primeira)

	if _, err := arq.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormato, err)
	}
	r := csv.NewReader(arq)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	registros, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormato, err)
	}
	return montar(registros)
}

// detectarSeparador tenta os separadores usuais sobre a primeira linha e fica
// com o que produz mais colunas.
func detectarSeparador(linha string) rune {
	candidatos := []rune{';', ',', '\t', '|'}
	melhor := ';'
	cols := 0
	for _, c := range candidatos {
		n := strings.Count(linha, string(c))
		if n > cols {
			melhor, cols = c, n
		}
	}
	return melhor
}

func montar(linhas [][]string) (*Tabela, error) {
	if len(linhas) == 0 {
		return nil, fmt.Errorf("%w: planilha sem cabeçalho", ErrFormato)
	}
	colunas := make([]string, len(linhas[0]))
	for i, c := range linhas[0] {
		colunas[i] = strings.TrimSpace(c)
	}
	t := &Tabela{Colunas: colunas, Linhas: linhas[1:]}
	t.normalizar()
	return t, nil
}
