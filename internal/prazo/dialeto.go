package prazo

import (
	"errors"
	"regexp"
	"strconv"

	"mpztools/internal/tabela"
)

var ErrMarketplaceDesconhecido = errors.New("não foi possível identificar o marketplace pela planilha enviada")

// Dialeto descreve como cada marketplace expõe chave e prazo de entrega.
// Adicionar um marketplace novo é uma linha na tabela dialetos.
type Dialeto struct {
	Nome         string
	ColChaveMkt  string
	ColPrazoMkt  string
	ColChaveERP  string
	ColPrazoERP  string
	ExtrairPrazo func(string) int
}

// Tabela única de dialetos. A chave do ERP é COD BARRA, exceto Mobly que
// compara pelo COD AUXILIAR. O prazo do ERP sai de SITE_DISPONIBILIDADE,
// exceto Wake que exporta DIAS P/ ENTREGA.
var dialetos = []Dialeto{
	{Nome: "Wake", ColChaveMkt: "SKU", ColPrazoMkt: "Prazo de Entrega", ColChaveERP: "COD BARRA", ColPrazoERP: "DIAS P/ ENTREGA", ExtrairPrazo: prazoNumerico},
	{Nome: "Tray", ColChaveMkt: "EAN", ColPrazoMkt: "Disponibilidade", ColChaveERP: "COD BARRA", ColPrazoERP: "SITE_DISPONIBILIDADE", ExtrairPrazo: primeiroInteiro},
	{Nome: "Shoppe", ColChaveMkt: "ean", ColPrazoMkt: "dias_para_envio", ColChaveERP: "COD BARRA", ColPrazoERP: "SITE_DISPONIBILIDADE", ExtrairPrazo: prazoNumerico},
	{Nome: "Mobly", ColChaveMkt: "SellerSku", ColPrazoMkt: "SupplierDeliveryTime", ColChaveERP: "COD AUXILIAR", ColPrazoERP: "SITE_DISPONIBILIDADE", ExtrairPrazo: prazoNumerico},
	{Nome: "MadeiraMadeira", ColChaveMkt: "EAN", ColPrazoMkt: "Prazo Expedição", ColChaveERP: "COD BARRA", ColPrazoERP: "SITE_DISPONIBILIDADE", ExtrairPrazo: prazoNumerico},
	// Crossdoc é o campo de prazo da WebContinental; tratado como numérico puro.
	{Nome: "WebContinental", ColChaveMkt: "EAN", ColPrazoMkt: "Crossdoc", ColChaveERP: "COD BARRA", ColPrazoERP: "SITE_DISPONIBILIDADE", ExtrairPrazo: prazoNumerico},
}

// IdentificarDialeto escolhe o dialeto pela presença da coluna de prazo do
// marketplace na planilha; vale o primeiro que casar.
func IdentificarDialeto(mkt *tabela.Tabela) (*Dialeto, error) {
	for i := range dialetos {
		if mkt.Indice(dialetos[i].ColPrazoMkt) >= 0 {
			return &dialetos[i], nil
		}
	}
	return nil, ErrMarketplaceDesconhecido
}

// Dialetos expõe uma cópia da tabela de dialetos (útil para listagem e testes).
func Dialetos() []Dialeto {
	out := make([]Dialeto, len(dialetos))
	copy(out, dialetos)
	return out
}

func prazoNumerico(s string) int {
	return tabela.ParaInteiro(s)
}

var reDigitos = regexp.MustCompile(`\d+`)

// primeiroInteiro pega a primeira sequência de dígitos da célula. A Tray
// exporta frases como "Envio em 5 dias úteis".
func primeiroInteiro(s string) int {
	m := reDigitos.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
