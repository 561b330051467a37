package atributos

import (
	"regexp"
	"strings"
)

// Colunas do relatório de atributos, na ordem de saída. Toda linha produzida
// tem exatamente essa largura; atributo ausente fica como string vazia.
var Colunas = []string{
	"EAN", "Nome",
	"Largura", "Altura", "Profundidade",
	"Peso", "Peso Suportado",
	"Cor", "Modelo", "Fabricante",
	"Material", "Material da Estrutura", "Revestimento", "Acabamento",
	"Quantidade de Portas", "Quantidade de Gavetas", "Quantidade de Prateleiras", "Quantidade de Nichos",
	"Suporta TV de até", "Capacidade", "Voltagem", "Garantia",
	"Conteúdo da Embalagem", "Necessita Montagem", "Estilo", "Ambiente",
	"Formato", "Tipo de Pés", "Tipo de Puxador", "Observações",
}

var (
	reLargura      = regexp.MustCompile(`(?i)Largura[:\s]*([\d,\.]+)\s*cm`)
	reAltura       = regexp.MustCompile(`(?i)Altura[:\s]*([\d,\.]+)\s*cm`)
	reProfundidade = regexp.MustCompile(`(?i)Profundidade[:\s]*([\d,\.]+)\s*cm`)

	// Fallback "100 x 200 x 50 cm": largura x altura x profundidade.
	reLxAxP = regexp.MustCompile(`(?i)(\d[\d,\.]*)\s*(?:cm\s*)?x\s*(\d[\d,\.]*)\s*(?:cm\s*)?x\s*(\d[\d,\.]*)\s*cm`)

	rePeso = regexp.MustCompile(`(?i)Peso[:\s]*([\d,\.]+)\s*kg`)

	// "Peso Suportado Distribuído: 40 kg/prateleira / 80 kg no tampo"
	reSuportadoBloco   = regexp.MustCompile(`(?i)Peso\s*Suportado\s*Distribuído[:\s]*([^/\n]+(?:/[^/\n]+)*)`)
	reKgEmSegmento     = regexp.MustCompile(`([\d,\.]+)\s*kg`)
	reSuportadoSimples = regexp.MustCompile(`(?i)(?:Peso\s*Suportado|Suporta|Carga\s*Máxima)[:\s]*([\d,\.]+)\s*kg`)

	reCaracteristicas = regexp.MustCompile(`(?i)Características do Produto[:\-]?\s*([\s\S]+?)(?:\n\n|\z)`)
)

// estrategia é uma extração pura texto -> valor de um atributo nomeado.
type estrategia struct {
	Atributo string
	Padrao   *regexp.Regexp
}

// Atributos genéricos, um padrão por atributo. A busca acontece primeiro na
// seção "Características do Produto" (quando houver) e depois no texto todo.
var genericas = []estrategia{
	{"Material", regexp.MustCompile(`(?i)Material[:\s]+([^\n]+)`)},
	{"Material da Estrutura", regexp.MustCompile(`(?i)Material\s+da\s+Estrutura[:\s]+([^\n]+)`)},
	{"Revestimento", regexp.MustCompile(`(?i)Revestimento[:\s]+([^\n]+)`)},
	{"Acabamento", regexp.MustCompile(`(?i)Acabamento[:\s]+([^\n]+)`)},
	{"Quantidade de Portas", regexp.MustCompile(`(?i)(?:Quantidade\s+de\s+)?Portas[:\s]+(\d+)`)},
	{"Quantidade de Gavetas", regexp.MustCompile(`(?i)(?:Quantidade\s+de\s+)?Gavetas[:\s]+(\d+)`)},
	{"Quantidade de Prateleiras", regexp.MustCompile(`(?i)(?:Quantidade\s+de\s+)?Prateleiras[:\s]+(\d+)`)},
	{"Quantidade de Nichos", regexp.MustCompile(`(?i)(?:Quantidade\s+de\s+)?Nichos[:\s]+(\d+)`)},
	{"Suporta TV de até", regexp.MustCompile(`(?i)(?:Suporta\s+TV\s+de\s+até|TV\s+de\s+até)[:\s]+([^\n]+)`)},
	{"Capacidade", regexp.MustCompile(`(?i)Capacidade[:\s]+([^\n]+)`)},
	{"Voltagem", regexp.MustCompile(`(?i)Voltagem[:\s]+([^\n]+)`)},
	{"Garantia", regexp.MustCompile(`(?i)Garantia[:\s]+([^\n]+)`)},
	{"Conteúdo da Embalagem", regexp.MustCompile(`(?i)Conte[uú]do\s+da\s+Embalagem[:\s]+([^\n]+)`)},
	{"Necessita Montagem", regexp.MustCompile(`(?i)(?:Necessita\s+)?Montagem[:\s]+(Sim|Não|Nao)`)},
	{"Estilo", regexp.MustCompile(`(?i)Estilo[:\s]+([^\n]+)`)},
	{"Ambiente", regexp.MustCompile(`(?i)Ambiente[:\s]+([^\n]+)`)},
	{"Formato", regexp.MustCompile(`(?i)Formato[:\s]+([^\n]+)`)},
	{"Tipo de Pés", regexp.MustCompile(`(?i)(?:Tipo\s+de\s+)?P[eé]s[:\s]+([^\n]+)`)},
	{"Tipo de Puxador", regexp.MustCompile(`(?i)(?:Tipo\s+de\s+)?Puxador(?:es)?[:\s]+([^\n]+)`)},
	{"Observações", regexp.MustCompile(`(?i)Observa[cç][oõ]es[:\s]+([^\n]+)`)},
}

// extrairDimensoes preenche Largura/Altura/Profundidade. Primeiro tenta os
// rótulos diretos; se nenhum dos três casar, cai no padrão "L x A x P cm"
// tomando o máximo de cada componente entre todas as ocorrências.
func extrairDimensoes(texto string, atrs map[string]string) {
	achou := false
	for atributo, re := range map[string]*regexp.Regexp{
		"Largura":      reLargura,
		"Altura":       reAltura,
		"Profundidade": reProfundidade,
	} {
		if m := re.FindStringSubmatch(texto); len(m) > 1 {
			if v, ok := numero(m[1]); ok {
				atrs[atributo] = formatarCm(v)
				achou = true
			}
		}
	}
	if achou {
		return
	}

	var maxL, maxA, maxP float64
	for _, m := range reLxAxP.FindAllStringSubmatch(texto, -1) {
		l, okL := numero(m[1])
		a, okA := numero(m[2])
		p, okP := numero(m[3])
		if !okL || !okA || !okP {
			continue
		}
		if l > maxL {
			maxL = l
		}
		if a > maxA {
			maxA = a
		}
		if p > maxP {
			maxP = p
		}
	}
	if maxL > 0 {
		atrs["Largura"] = formatarCm(maxL)
	}
	if maxA > 0 {
		atrs["Altura"] = formatarCm(maxA)
	}
	if maxP > 0 {
		atrs["Profundidade"] = formatarCm(maxP)
	}
}

func extrairPesos(texto string, atrs map[string]string) {
	if m := rePeso.FindStringSubmatch(texto); len(m) > 1 {
		if v, ok := numero(m[1]); ok {
			atrs["Peso"] = formatarKg(v)
		}
	}

	if m := reSuportadoBloco.FindStringSubmatch(texto); len(m) > 1 {
		var max float64
		for _, seg := range strings.Split(m[1], "/") {
			if km := reKgEmSegmento.FindStringSubmatch(seg); len(km) > 1 {
				if v, ok := numero(km[1]); ok && v > max {
					max = v
				}
			}
		}
		if max > 0 {
			atrs["Peso Suportado"] = formatarKg(max)
			return
		}
	}
	if m := reSuportadoSimples.FindStringSubmatch(texto); len(m) > 1 {
		if v, ok := numero(m[1]); ok {
			atrs["Peso Suportado"] = formatarKg(v)
		}
	}
}

func extrairGenericos(texto string, atrs map[string]string) {
	secao := ""
	if m := reCaracteristicas.FindStringSubmatch(texto); len(m) > 1 {
		secao = m[1]
	}

	for _, e := range genericas {
		if atrs[e.Atributo] != "" {
			continue
		}
		valor := ""
		if secao != "" {
			if m := e.Padrao.FindStringSubmatch(secao); len(m) > 1 {
				valor = m[1]
			}
		}
		if valor == "" {
			if m := e.Padrao.FindStringSubmatch(texto); len(m) > 1 {
				valor = m[1]
			}
		}
		if valor != "" {
			atrs[e.Atributo] = limparValor(valor)
		}
	}
}

func limparValor(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimRight(v, ".;")
}
