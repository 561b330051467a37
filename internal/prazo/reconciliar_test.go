package prazo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpztools/internal/tabela"
)

func novaTabela(colunas []string, linhas ...[]string) *tabela.Tabela {
	return &tabela.Tabela{Colunas: colunas, Linhas: linhas}
}

func TestReconciliarTrayComDivergencia(t *testing.T) {
	erp := novaTabela(
		[]string{"COD BARRA", "SITE_DISPONIBILIDADE"},
		[]string{"7890001", "3"},
	)
	mkt := novaTabela(
		[]string{"EAN", "Disponibilidade"},
		[]string{"7890001", "Envio em 5 dias úteis"},
	)

	rel, err := Reconciliar(erp, mkt)
	require.NoError(t, err)

	assert.Equal(t, "Tray", rel.Marketplace)
	assert.Equal(t, 1, rel.Analisados)
	require.Equal(t, 1, rel.Divergentes)
	d := rel.Divergencias[0]
	assert.Equal(t, "7890001", d.CodComparacao)
	assert.Equal(t, 3, d.PrazoERP)
	assert.Equal(t, 5, d.PrazoMarketplace)
	assert.Equal(t, 2, d.Diferenca)
}

func TestReconciliarMoblySemDivergencia(t *testing.T) {
	erp := novaTabela(
		[]string{"COD AUXILIAR", "SITE_DISPONIBILIDADE"},
		[]string{"ABC-1", "7"},
	)
	mkt := novaTabela(
		[]string{"SellerSku", "SupplierDeliveryTime"},
		[]string{"ABC-1", "7"},
	)

	rel, err := Reconciliar(erp, mkt)
	require.NoError(t, err)

	assert.Equal(t, "Mobly", rel.Marketplace)
	assert.Equal(t, 1, rel.Analisados)
	assert.Equal(t, 0, rel.Divergentes)
	assert.Empty(t, rel.Divergencias)
}

func TestReconciliarOrdenaPorModuloDaDiferenca(t *testing.T) {
	erp := novaTabela(
		[]string{"COD BARRA", "SITE_DISPONIBILIDADE"},
		[]string{"1", "5"},
		[]string{"2", "5"},
		[]string{"3", "5"},
		[]string{"4", "5"},
	)
	mkt := novaTabela(
		[]string{"ean", "dias_para_envio"},
		[]string{"1", "6"},
		[]string{"2", "1"},
		[]string{"3", "5"},
		[]string{"4", "15"},
	)

	rel, err := Reconciliar(erp, mkt)
	require.NoError(t, err)
	require.Equal(t, 3, rel.Divergentes)

	anterior := rel.Divergencias[0]
	for _, d := range rel.Divergencias[1:] {
		assert.GreaterOrEqual(t, abs(anterior.Diferenca), abs(d.Diferenca))
		anterior = d
	}
	assert.Equal(t, "4", rel.Divergencias[0].CodComparacao)
}

func TestReconciliarDeterministico(t *testing.T) {
	montar := func() (*tabela.Tabela, *tabela.Tabela) {
		erp := novaTabela(
			[]string{"COD BARRA", "SITE_DISPONIBILIDADE"},
			[]string{"1", "3"},
			[]string{"2", "4"},
		)
		mkt := novaTabela(
			[]string{"EAN", "Disponibilidade"},
			[]string{"1", "Envio em 9 dias"},
			[]string{"2", "Envio em 1 dia"},
		)
		return erp, mkt
	}

	erpA, mktA := montar()
	erpB, mktB := montar()
	relA, err := Reconciliar(erpA, mktA)
	require.NoError(t, err)
	relB, err := Reconciliar(erpB, mktB)
	require.NoError(t, err)
	assert.Equal(t, relA, relB)
}

func TestReconciliarIgnoraSemParNoERP(t *testing.T) {
	erp := novaTabela(
		[]string{"COD BARRA", "SITE_DISPONIBILIDADE"},
		[]string{"1", "3"},
	)
	mkt := novaTabela(
		[]string{"EAN", "Disponibilidade"},
		[]string{"1", "Envio em 3 dias"},
		[]string{"999", "Envio em 10 dias"},
	)

	rel, err := Reconciliar(erp, mkt)
	require.NoError(t, err)
	assert.Equal(t, 1, rel.Analisados)
	assert.Equal(t, 0, rel.Divergentes)
}

func TestMarketplaceDesconhecido(t *testing.T) {
	erp := novaTabela([]string{"COD BARRA", "SITE_DISPONIBILIDADE"})
	mkt := novaTabela([]string{"EAN", "ColunaQualquer"})

	_, err := Reconciliar(erp, mkt)
	assert.ErrorIs(t, err, ErrMarketplaceDesconhecido)
}

func TestColunasFaltantesNoERP(t *testing.T) {
	erp := novaTabela([]string{"OUTRA"})
	mkt := novaTabela([]string{"SellerSku", "SupplierDeliveryTime"})

	_, err := Reconciliar(erp, mkt)
	var faltantes *tabela.ColunasFaltantesError
	require.ErrorAs(t, err, &faltantes)
	assert.Contains(t, faltantes.Colunas, "COD AUXILIAR")
}

// Cada dialeto se identifica pela própria coluna de prazo, sem ambiguidade
// com os que vêm antes na tabela.
func TestCoberturaDosDialetos(t *testing.T) {
	for _, d := range Dialetos() {
		mkt := novaTabela([]string{d.ColChaveMkt, d.ColPrazoMkt})
		achado, err := IdentificarDialeto(mkt)
		require.NoError(t, err, d.Nome)
		assert.Equal(t, d.Nome, achado.Nome)
	}
}

func TestPrimeiroInteiro(t *testing.T) {
	assert.Equal(t, 5, primeiroInteiro("Envio em 5 dias úteis"))
	assert.Equal(t, 12, primeiroInteiro("12"))
	assert.Equal(t, 0, primeiroInteiro("sem número"))
	assert.Equal(t, 0, primeiroInteiro(""))
}
