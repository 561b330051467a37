package cadastro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpztools/internal/tabela"
)

func tabelaMestre(linhas ...[]string) *tabela.Tabela {
	return &tabela.Tabela{Colunas: ColunasObrigatorias, Linhas: linhas}
}

func linhaMestre(ean, nome, tipo, volumes, componentes string) []string {
	linha := make([]string, len(ColunasObrigatorias))
	linha[0] = ean
	linha[1] = nome
	linha[2] = nome + " - Madesa"
	linha[3] = tipo
	linha[7] = volumes
	linha[8] = componentes
	return linha
}

func TestLerMestre(t *testing.T) {
	tb := tabelaMestre(
		linhaMestre("789", "Mesa", "ACABADO", "1", ""),
		linhaMestre("", "Sem EAN", "ACABADO", "1", ""),
		linhaMestre("790", "Kit Mesa", "KIT", "0", "789/789"),
	)

	produtos, err := LerMestre(tb)
	require.NoError(t, err)
	require.Len(t, produtos, 2, "linha sem EAN é descartada")

	assert.Equal(t, "789", produtos[0].EAN)
	assert.False(t, produtos[0].EhKit())

	kit := produtos[1]
	assert.True(t, kit.EhKit())
	assert.Equal(t, 1, kit.Volumes, "volumes nunca fica abaixo de 1")
	assert.Equal(t, []string{"789", "789"}, kit.Componentes())
}

func TestLerMestreColunasFaltantes(t *testing.T) {
	tb := &tabela.Tabela{Colunas: []string{"EAN", "NOMEONCLICK"}}

	_, err := LerMestre(tb)
	var faltantes *tabela.ColunasFaltantesError
	require.ErrorAs(t, err, &faltantes)
	assert.Contains(t, faltantes.Colunas, "TIPODEPRODUTO")
	assert.NotContains(t, faltantes.Colunas, "EAN")
}
