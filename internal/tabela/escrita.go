package tabela

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Aba é um par (nome, linhas) a gravar num arquivo de saída.
type Aba struct {
	Nome   string
	Linhas [][]string
}

// Escrever grava as abas num novo arquivo xlsx. A gravação é atômica: escreve
// num nome temporário e renomeia no fim, para nunca deixar saída parcial.
func Escrever(caminho string, abas []Aba) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, aba := range abas {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), aba.Nome)
		} else {
			if _, err := f.NewSheet(aba.Nome); err != nil {
				return fmt.Errorf("erro ao criar aba %s: %w", aba.Nome, err)
			}
		}
		for l, linha := range aba.Linhas {
			celula, err := excelize.CoordinatesToCellName(1, l+1)
			if err != nil {
				return err
			}
			valores := make([]interface{}, len(linha))
			for c, v := range linha {
				valores[c] = v
			}
			if err := f.SetSheetRow(aba.Nome, celula, &valores); err != nil {
				return fmt.Errorf("erro ao escrever linha %d da aba %s: %w", l+1, aba.Nome, err)
			}
		}
	}

	temp := caminho + ".tmp"
	if err := f.SaveAs(temp); err != nil {
		return fmt.Errorf("erro ao salvar %s: %w", caminho, err)
	}
	if err := os.Rename(temp, caminho); err != nil {
		os.Remove(temp)
		return fmt.Errorf("erro ao salvar %s: %w", caminho, err)
	}
	return nil
}
