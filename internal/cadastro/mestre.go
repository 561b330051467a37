package cadastro

import (
	"strings"

	"mpztools/internal/modelo"
	"mpztools/internal/tabela"
)

// ColunasObrigatorias é o contrato de entrada do cadastro mestre. A ausência
// de qualquer uma derruba o job antes de produzir saída.
var ColunasObrigatorias = []string{
	"EAN", "NOMEONCLICK", "NOMEE-COMMERCE", "TIPODEPRODUTO",
	"EMBALTURA", "EMBLARGURA", "EMBCOMPRIMENTO", "VOLUMES", "EANCOMPONENTES",
	"MARCA", "CUSTO", "DE", "POR", "FORNECEDOR", "OUTROS", "IPI", "FRETE",
	"NCM", "CODFORN", "CATEGORIA", "GRUPO", "COMPLEMENTO",
	"DISPONIBILIDADEWEB", "DESCRICAOHTML",
	"PESOBRUTO", "PESOLIQUIDO",
	"VOLPESOBRUTO", "VOLPESOLIQ", "VOLLARGURA", "VOLALTURA", "VOLCOMPRIMENTO",
	"CATEGORIAPRINCIPALTRAY", "CATEGORIAPRINCIPALCORP", "NIVELADICIONAL1CORP",
	"CUSTOTOTAL",
}

// LerMestre converte a tabela normalizada em produtos. Linhas sem EAN são
// descartadas; VOLUMES nunca fica abaixo de 1.
func LerMestre(t *tabela.Tabela) ([]modelo.Produto, error) {
	if err := t.ExigirColunas(ColunasObrigatorias...); err != nil {
		return nil, err
	}

	var produtos []modelo.Produto
	for i := range t.Linhas {
		ean := strings.TrimSpace(t.Valor(i, "EAN"))
		if ean == "" {
			continue
		}
		volumes := t.Inteiro(i, "VOLUMES")
		if volumes < 1 {
			volumes = 1
		}
		produtos = append(produtos, modelo.Produto{
			EAN:            ean,
			NomeOnclick:    strings.TrimSpace(t.Valor(i, "NOMEONCLICK")),
			NomeEcommerce:  strings.TrimSpace(t.Valor(i, "NOMEE-COMMERCE")),
			TipoProduto:    strings.TrimSpace(t.Valor(i, "TIPODEPRODUTO")),
			EmbAltura:      t.Valor(i, "EMBALTURA"),
			EmbLargura:     t.Valor(i, "EMBLARGURA"),
			EmbComprimento: t.Valor(i, "EMBCOMPRIMENTO"),
			Volumes:        volumes,
			EANComponentes: t.Valor(i, "EANCOMPONENTES"),
			Marca:          strings.TrimSpace(t.Valor(i, "MARCA")),
			Custo:          t.Valor(i, "CUSTO"),
			De:             t.Valor(i, "DE"),
			Por:            t.Valor(i, "POR"),
			Fornecedor:     t.Valor(i, "FORNECEDOR"),
			Outros:         t.Valor(i, "OUTROS"),
			IPI:            t.Valor(i, "IPI"),
			Frete:          t.Valor(i, "FRETE"),
			NCM:            t.Valor(i, "NCM"),
			CodForn:        t.Valor(i, "CODFORN"),
			Categoria:      t.Valor(i, "CATEGORIA"),
			Grupo:          t.Valor(i, "GRUPO"),
			Complemento:    t.Valor(i, "COMPLEMENTO"),
			DisponibWeb:    t.Valor(i, "DISPONIBILIDADEWEB"),
			DescricaoHTML:  t.Valor(i, "DESCRICAOHTML"),
			PesoBruto:      t.Valor(i, "PESOBRUTO"),
			PesoLiquido:    t.Valor(i, "PESOLIQUIDO"),
			VolPesoBruto:   t.Valor(i, "VOLPESOBRUTO"),
			VolPesoLiq:     t.Valor(i, "VOLPESOLIQ"),
			VolLargura:     t.Valor(i, "VOLLARGURA"),
			VolAltura:      t.Valor(i, "VOLALTURA"),
			VolComprimento: t.Valor(i, "VOLCOMPRIMENTO"),
			CategoriaTray:  t.Valor(i, "CATEGORIAPRINCIPALTRAY"),
			CategoriaCorp:  t.Valor(i, "CATEGORIAPRINCIPALCORP"),
			NivelAdic1Corp: t.Valor(i, "NIVELADICIONAL1CORP"),
			CustoTotal:     t.Valor(i, "CUSTOTOTAL"),
		})
	}
	return produtos, nil
}
