package atributos

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mpztools/internal/modelo"
	"mpztools/internal/tabela"
)

var ErrSemDados = errors.New("nenhuma linha pôde ser processada")

// ColunasEntrada é o contrato mínimo da planilha de origem.
var ColunasEntrada = []string{"EAN", "NOMEE-COMMERCE", "DESCRICAOHTML", "MODMPZ", "COR"}

type Extrator struct {
	Logger *logrus.Logger
}

type Resultado struct {
	Linhas    [][]string
	Detalhes  []modelo.ResultadoLinha
	TotalOK   int
	TotalErro int
}

// Extrair processa a planilha linha a linha. Erro numa linha é registrado e a
// linha é pulada; o job só falha se nenhuma linha sobreviver.
func (e *Extrator) Extrair(t *tabela.Tabela) (*Resultado, error) {
	if err := t.ExigirColunas(ColunasEntrada...); err != nil {
		return nil, err
	}

	res := &Resultado{}
	for i := range t.Linhas {
		ean := strings.TrimSpace(t.Valor(i, "EAN"))
		linha, err := e.extrairLinha(t, i)
		if err != nil {
			e.Logger.WithError(err).WithField("ean", ean).Warn("Linha ignorada na extração de atributos")
			res.Detalhes = append(res.Detalhes, modelo.LinhaComErro(ean, err.Error()))
			res.TotalErro++
			continue
		}
		res.Linhas = append(res.Linhas, linha)
		res.Detalhes = append(res.Detalhes, modelo.LinhaProcessada(ean))
		res.TotalOK++
	}

	if res.TotalOK == 0 {
		return nil, ErrSemDados
	}
	return res, nil
}

func (e *Extrator) extrairLinha(t *tabela.Tabela, i int) ([]string, error) {
	ean := strings.TrimSpace(t.Valor(i, "EAN"))
	if ean == "" {
		return nil, fmt.Errorf("linha %d sem EAN", i+1)
	}
	nome := strings.TrimSpace(t.Valor(i, "NOMEE-COMMERCE"))
	texto := extrairTexto(t.Valor(i, "DESCRICAOHTML"))

	atrs := map[string]string{
		"Cor":        strings.TrimSpace(t.Valor(i, "COR")),
		"Modelo":     strings.TrimSpace(t.Valor(i, "MODMPZ")),
		"Fabricante": fabricante(nome),
	}
	extrairDimensoes(texto, atrs)
	extrairPesos(texto, atrs)
	extrairGenericos(texto, atrs)

	linha := make([]string, len(Colunas))
	linha[0] = ean
	linha[1] = nome
	for c := 2; c < len(Colunas); c++ {
		linha[c] = atrs[Colunas[c]]
	}
	return linha, nil
}

// fabricante é o sufixo depois do último "-" do nome de e-commerce.
func fabricante(nome string) string {
	i := strings.LastIndex(nome, "-")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(nome[i+1:])
}

// Salvar grava o relatório em Atributos_Extraidos_<YYYYMMDD_HHMMSS>.xlsx.
func Salvar(res *Resultado, dir string, agora time.Time) (string, error) {
	linhas := [][]string{Colunas}
	linhas = append(linhas, res.Linhas...)

	caminho := filepath.Join(dir, fmt.Sprintf("Atributos_Extraidos_%s.xlsx", agora.Format("20060102_150405")))
	if err := tabela.Escrever(caminho, []tabela.Aba{{Nome: "Atributos", Linhas: linhas}}); err != nil {
		return "", err
	}
	return caminho, nil
}
