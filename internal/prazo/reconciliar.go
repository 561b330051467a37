package prazo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"mpztools/internal/tabela"
)

// Colunas do relatório de divergências, na ordem de saída.
var ColunasRelatorio = []string{"COD_COMPARACAO", "DIAS_PRAZO_ERP", "DIAS_PRAZO_MARKETPLACE", "DIFERENCA_PRAZO"}

type Divergencia struct {
	CodComparacao    string
	PrazoERP         int
	PrazoMarketplace int
	Diferenca        int
}

type Relatorio struct {
	Marketplace  string
	Analisados   int
	Divergentes  int
	Divergencias []Divergencia
}

// Reconciliar cruza o export do ERP com o export do marketplace, identifica o
// dialeto pela coluna de prazo presente e calcula a diferença de promessa de
// entrega por item. O resultado é determinístico: entradas iguais produzem
// relatório idêntico byte a byte.
func Reconciliar(erp, mkt *tabela.Tabela) (*Relatorio, error) {
	dialeto, err := IdentificarDialeto(mkt)
	if err != nil {
		return nil, err
	}

	if err := erp.ExigirColunas(dialeto.ColChaveERP, dialeto.ColPrazoERP); err != nil {
		return nil, err
	}
	if err := mkt.ExigirColunas(dialeto.ColChaveMkt, dialeto.ColPrazoMkt); err != nil {
		return nil, err
	}

	// Índice do ERP por chave aparada; última ocorrência vence, como num
	// dicionário montado em varredura única.
	prazosERP := make(map[string]int)
	for i := range erp.Linhas {
		chave := strings.TrimSpace(erp.Valor(i, dialeto.ColChaveERP))
		if chave == "" {
			continue
		}
		prazosERP[chave] = erp.Inteiro(i, dialeto.ColPrazoERP)
	}

	// Join interno na ordem do arquivo do marketplace; linha sem par no ERP
	// fica fora da análise.
	var todas []Divergencia
	for i := range mkt.Linhas {
		chave := strings.TrimSpace(mkt.Valor(i, dialeto.ColChaveMkt))
		if chave == "" {
			continue
		}
		prazoERP, ok := prazosERP[chave]
		if !ok {
			continue
		}
		prazoMkt := dialeto.ExtrairPrazo(mkt.Valor(i, dialeto.ColPrazoMkt))
		todas = append(todas, Divergencia{
			CodComparacao:    chave,
			PrazoERP:         prazoERP,
			PrazoMarketplace: prazoMkt,
			Diferenca:        prazoMkt - prazoERP,
		})
	}

	// Ordena por |diferença| decrescente, estável sobre a ordem de entrada.
	sort.SliceStable(todas, func(a, b int) bool {
		return abs(todas[a].Diferenca) > abs(todas[b].Diferenca)
	})

	rel := &Relatorio{Marketplace: dialeto.Nome, Analisados: len(todas)}
	for _, d := range todas {
		if d.Diferenca != 0 {
			rel.Divergencias = append(rel.Divergencias, d)
		}
	}
	rel.Divergentes = len(rel.Divergencias)
	return rel, nil
}

// SalvarRelatorio grava as divergências em divergencias_<YYYYMMDD_HHMM>.xlsx
// dentro do diretório informado e devolve o caminho gerado.
func SalvarRelatorio(rel *Relatorio, dir string, agora time.Time) (string, error) {
	linhas := [][]string{ColunasRelatorio}
	for _, d := range rel.Divergencias {
		linhas = append(linhas, []string{
			d.CodComparacao,
			strconv.Itoa(d.PrazoERP),
			strconv.Itoa(d.PrazoMarketplace),
			strconv.Itoa(d.Diferenca),
		})
	}

	caminho := filepath.Join(dir, fmt.Sprintf("divergencias_%s.xlsx", agora.Format("20060102_1504")))
	if err := tabela.Escrever(caminho, []tabela.Aba{{Nome: "Divergencias", Linhas: linhas}}); err != nil {
		return "", err
	}
	return caminho, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
