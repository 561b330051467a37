package cadastro

import (
	"strconv"
	"strings"
	"time"

	"mpztools/internal/modelo"
)

const (
	colunasProduto = 45
	colunasPreco   = 14
	colunasLojaWeb = 19
	colunasKit     = 6
	colunasVolume  = 12

	garantiaPadrao = "90 dias após o recebimento do produto"
)

// Expansao reúne as linhas produzidas para cada aba do template de cadastro.
type Expansao struct {
	Produto [][]string
	Preco   [][]string
	LojaWeb [][]string
	Kit     [][]string
	Volume  [][]string
}

// Expandir projeta o cadastro mestre sobre as cinco abas do template. Cada
// produto gera uma linha em PRODUTO, PRECO e LOJA WEB, N linhas em VOLUME e,
// quando é kit, uma linha em KIT por componente distinto.
func Expandir(produtos []modelo.Produto, agora time.Time) *Expansao {
	nomes := make(map[string]string, len(produtos))
	for _, p := range produtos {
		nomes[p.EAN] = p.NomeOnclick
	}

	exp := &Expansao{}
	for i := range produtos {
		p := &produtos[i]
		exp.Produto = append(exp.Produto, linhaProduto(p))
		exp.Preco = append(exp.Preco, linhaPreco(p, agora))
		exp.LojaWeb = append(exp.LojaWeb, linhaLojaWeb(p))
		if p.EhKit() {
			exp.Kit = append(exp.Kit, linhasKit(p, nomes)...)
		}
		exp.Volume = append(exp.Volume, linhasVolume(p)...)
	}
	return exp
}

// nomeReduzido corta o nome interno em 25 caracteres, limite do importador.
func nomeReduzido(nome string) string {
	r := []rune(nome)
	if len(r) > 25 {
		r = r[:25]
	}
	return string(r)
}

// marcaWeb é o sufixo depois do último "-" do nome de e-commerce.
func marcaWeb(nomeEcommerce string) string {
	i := strings.LastIndex(nomeEcommerce, "-")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(nomeEcommerce[i+1:])
}

// tipoProdutoValor: 0 para produto ACABADO, 2 para os demais (kits).
func tipoProdutoValor(tipo string) string {
	if strings.ToUpper(strings.TrimSpace(tipo)) == "ACABADO" {
		return "0"
	}
	return "2"
}

func linhaProduto(p *modelo.Produto) []string {
	linha := make([]string, colunasProduto)
	linha[0] = p.EAN
	linha[1] = p.NomeOnclick
	linha[2] = nomeReduzido(p.NomeOnclick)
	linha[3] = p.NomeEcommerce
	linha[4] = tipoProdutoValor(p.TipoProduto)
	linha[5] = "F"
	linha[6] = p.NCM
	linha[7] = p.CodForn
	linha[8] = p.Marca
	linha[9] = marcaWeb(p.NomeEcommerce)
	linha[10] = p.Categoria
	linha[11] = p.Grupo
	linha[12] = p.Complemento
	linha[13] = p.EmbAltura
	linha[14] = p.EmbLargura
	linha[15] = p.EmbComprimento
	linha[16] = p.PesoBruto
	linha[17] = p.PesoLiquido
	linha[18] = strconv.Itoa(p.Volumes)
	linha[19] = "T"
	linha[20] = p.DisponibWeb
	linha[21] = "90"
	linha[22] = "1000"
	linha[23] = garantiaPadrao
	linha[24] = p.DescricaoHTML
	linha[25] = "F"
	linha[26] = "F"
	linha[27] = "T"
	linha[44] = "F"
	return linha
}

func linhaPreco(p *modelo.Produto, agora time.Time) []string {
	dataFormatada := agora.Format("02/01/2006")
	// O rótulo histórico desse campo falava em 20 anos, mas o valor gravado
	// sempre foi a data com 30 anos somados. O contrato é +30.
	dataFinal := agora.AddDate(30, 0, 0).Format("02/01/2006")

	linha := make([]string, colunasPreco)
	linha[0] = p.EAN
	linha[1] = p.Custo
	linha[2] = p.CustoTotal
	linha[3] = p.De
	linha[4] = p.Por
	linha[5] = p.Fornecedor
	linha[6] = p.Outros
	linha[7] = p.IPI
	linha[8] = p.Frete
	linha[9] = dataFormatada
	linha[10] = dataFinal
	linha[13] = "F"
	return linha
}

func linhaLojaWeb(p *modelo.Produto) []string {
	linha := make([]string, colunasLojaWeb)
	linha[0] = p.EAN
	linha[1] = p.NomeEcommerce
	linha[2] = "T"
	linha[3] = p.CategoriaTray
	linha[4] = p.CategoriaCorp
	linha[5] = p.NivelAdic1Corp
	linha[6] = "F"
	linha[7] = p.DisponibWeb
	linha[8] = "T"
	linha[18] = "F"
	return linha
}

// linhasKit decompõe o kit em componentes distintos com multiplicidade igual
// à contagem de ocorrências na lista separada por "/". Componente fora do
// cadastro mestre sai como "Desconhecido".
func linhasKit(p *modelo.Produto, nomes map[string]string) [][]string {
	componentes := p.Componentes()
	contagem := make(map[string]int, len(componentes))
	var ordem []string
	for _, ean := range componentes {
		if contagem[ean] == 0 {
			ordem = append(ordem, ean)
		}
		contagem[ean]++
	}

	linhas := make([][]string, 0, len(ordem))
	for _, ean := range ordem {
		nome, ok := nomes[ean]
		if !ok || nome == "" {
			nome = "Desconhecido"
		}
		linhas = append(linhas, []string{p.EAN, ean, nome, strconv.Itoa(contagem[ean]), "", "0"})
	}
	return linhas
}

// linhasVolume gera um registro por volume físico. Com um volume só valem as
// medidas da embalagem; com mais de um, as medidas por volume.
func linhasVolume(p *modelo.Produto) [][]string {
	altura, largura, comprimento := p.EmbAltura, p.EmbLargura, p.EmbComprimento
	pesoBruto, pesoLiq := p.PesoBruto, p.PesoLiquido
	if p.Volumes > 1 {
		altura, largura, comprimento = p.VolAltura, p.VolLargura, p.VolComprimento
		pesoBruto, pesoLiq = p.VolPesoBruto, p.VolPesoLiq
	}

	linhas := make([][]string, 0, p.Volumes)
	for v := 1; v <= p.Volumes; v++ {
		linha := make([]string, colunasVolume)
		linha[0] = p.EAN
		linha[1] = nomeReduzido(p.NomeOnclick)
		linha[2] = altura
		linha[3] = largura
		linha[4] = comprimento
		linha[5] = pesoBruto
		linha[6] = pesoLiq
		linha[11] = strconv.Itoa(v)
		linhas = append(linhas, linha)
	}
	return linhas
}
