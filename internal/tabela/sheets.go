package tabela

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// LerPlanilhaGoogle lê uma aba de uma planilha remota do Google Sheets como
// fonte alternativa ao upload de arquivo. O resultado passa pela mesma
// normalização da leitura local.
func LerPlanilhaGoogle(ctx context.Context, credencial, sheetID, aba string) (*Tabela, error) {
	creds, err := os.ReadFile(credencial)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler credenciais do Google: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar config JWT: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar serviço Sheets: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(sheetID, aba).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler planilha %s!%s: %w", sheetID, aba, err)
	}

	linhas := make([][]string, 0, len(resp.Values))
	for _, v := range resp.Values {
		linha := make([]string, len(v))
		for i, c := range v {
			linha[i] = fmt.Sprint(c)
		}
		linhas = append(linhas, linha)
	}
	return montar(linhas)
}
