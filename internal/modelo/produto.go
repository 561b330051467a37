package modelo

import "strings"

const TipoKit = "KIT"

// Produto é a linha normalizada do cadastro mestre, chaveada pelo EAN.
type Produto struct {
	EAN            string
	NomeOnclick    string
	NomeEcommerce  string
	TipoProduto    string
	EmbAltura      string
	EmbLargura     string
	EmbComprimento string
	Volumes        int
	EANComponentes string
	Marca          string
	Custo          string
	De             string
	Por            string
	Fornecedor     string
	Outros         string
	IPI            string
	Frete          string
	NCM            string
	CodForn        string
	Categoria      string
	Grupo          string
	Complemento    string
	DisponibWeb    string
	DescricaoHTML  string
	PesoBruto      string
	PesoLiquido    string
	VolPesoBruto   string
	VolPesoLiq     string
	VolLargura     string
	VolAltura      string
	VolComprimento string
	CategoriaTray  string
	CategoriaCorp  string
	NivelAdic1Corp string
	CustoTotal     string
}

func (p *Produto) EhKit() bool {
	return strings.ToUpper(strings.TrimSpace(p.TipoProduto)) == TipoKit
}

// Componentes retorna os EANs componentes do kit na ordem de declaração,
// já sem entradas vazias. Kits declaram componentes separados por "/".
func (p *Produto) Componentes() []string {
	if strings.TrimSpace(p.EANComponentes) == "" {
		return nil
	}
	var eans []string
	for _, c := range strings.Split(p.EANComponentes, "/") {
		c = strings.TrimSpace(c)
		if c != "" {
			eans = append(eans, c)
		}
	}
	return eans
}
