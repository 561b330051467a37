package cadastro

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"mpztools/internal/tabela"
)

var (
	ErrTemplateNaoEncontrado = errors.New("template de cadastro não encontrado")
	ErrEscritaSaida          = errors.New("erro ao gravar o template preenchido")
)

const (
	abaProduto    = "PRODUTO"
	abaPreco      = "PRECO"
	abaLojaWeb    = "LOJA WEB"
	abaKit        = "KIT"
	abaVolume     = "VOLUME"
	abaImportacao = "Tipo Importacao"

	// PRODUTO tem cabeçalho duplo; os dados começam na linha 3. As demais
	// abas têm cabeçalho simples e dados a partir da linha 2.
	linhaDadosProduto = 3
	linhaDadosDemais  = 2
)

// EscreverTemplate preenche o template canônico com a expansão e grava
// Template_Produtos_<comerciante>_Cadastro_<slug>.xlsx no diretório de saída.
// As validações de dados da aba "Tipo Importacao" se perdem numa gravação
// comum; por isso o ciclo é gravar, reabrir, reaplicar as validações e gravar
// de novo. Em caso de falha nenhum arquivo parcial permanece.
func EscreverTemplate(caminhoTemplate, dir, comerciante, slug string, exp *Expansao) (string, error) {
	if _, err := os.Stat(caminhoTemplate); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNaoEncontrado, caminhoTemplate)
	}

	f, err := excelize.OpenFile(caminhoTemplate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateNaoEncontrado, err)
	}
	defer f.Close()

	validacoes, err := f.GetDataValidations(abaImportacao)
	if err != nil {
		return "", fmt.Errorf("%w: validações de %q: %v", ErrEscritaSaida, abaImportacao, err)
	}

	abas := []tabela.Aba{
		{Nome: abaProduto, Linhas: exp.Produto},
		{Nome: abaPreco, Linhas: exp.Preco},
		{Nome: abaLojaWeb, Linhas: exp.LojaWeb},
		{Nome: abaKit, Linhas: exp.Kit},
		{Nome: abaVolume, Linhas: exp.Volume},
	}
	for _, aba := range abas {
		inicio := linhaDadosDemais
		if aba.Nome == abaProduto {
			inicio = linhaDadosProduto
		}
		if err := reescreverAba(f, aba.Nome, inicio, aba.Linhas); err != nil {
			return "", err
		}
	}

	saida := filepath.Join(dir, fmt.Sprintf("Template_Produtos_%s_Cadastro_%s.xlsx", comerciante, slug))
	temp := saida + ".tmp"
	if err := f.SaveAs(temp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEscritaSaida, err)
	}

	if err := reaplicarValidacoes(temp, validacoes); err != nil {
		os.Remove(temp)
		return "", err
	}
	if err := os.Rename(temp, saida); err != nil {
		os.Remove(temp)
		return "", fmt.Errorf("%w: %v", ErrEscritaSaida, err)
	}
	return saida, nil
}

// reescreverAba limpa as linhas de dados existentes e grava as novas a partir
// da linha inicial, sem tocar no cabeçalho.
func reescreverAba(f *excelize.File, aba string, inicio int, linhas [][]string) error {
	existentes, err := f.GetRows(aba)
	if err != nil {
		return fmt.Errorf("%w: aba %q: %v", ErrEscritaSaida, aba, err)
	}
	for l := len(existentes); l >= inicio; l-- {
		if err := f.RemoveRow(aba, l); err != nil {
			return fmt.Errorf("%w: aba %q: %v", ErrEscritaSaida, aba, err)
		}
	}

	for i, linha := range linhas {
		celula, err := excelize.CoordinatesToCellName(1, inicio+i)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEscritaSaida, err)
		}
		valores := make([]interface{}, len(linha))
		for c, v := range linha {
			valores[c] = v
		}
		if err := f.SetSheetRow(aba, celula, &valores); err != nil {
			return fmt.Errorf("%w: aba %q linha %d: %v", ErrEscritaSaida, aba, inicio+i, err)
		}
	}
	return nil
}

func reaplicarValidacoes(caminho string, validacoes []*excelize.DataValidation) error {
	f, err := excelize.OpenFile(caminho)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEscritaSaida, err)
	}
	defer f.Close()

	for _, dv := range validacoes {
		if err := f.AddDataValidation(abaImportacao, dv); err != nil {
			return fmt.Errorf("%w: validação %q: %v", ErrEscritaSaida, dv.Sqref, err)
		}
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: %v", ErrEscritaSaida, err)
	}
	return nil
}
