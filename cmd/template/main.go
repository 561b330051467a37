package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mpztools/internal/auditoria"
	"mpztools/internal/cadastro"
	"mpztools/internal/config"
	"mpztools/internal/observability"
	"mpztools/internal/tabela"
)

// go run cmd/template/main.go -arquivo=mestre.xlsx
// go run cmd/template/main.go -sheet  (usa GOOGLE_SHEET_ID/GOOGLE_SHEET_ABA)
func main() {
	arquivo := flag.String("arquivo", "", "Planilha mestre local (xlsx/csv)")
	usarSheet := flag.Bool("sheet", false, "Ler o mestre do Google Sheets")
	saida := flag.String("saida", ".", "Diretório de saída")
	comerciante := flag.String("comerciante", "MPZ", "Nome do comerciante no arquivo gerado")
	flag.Parse()

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	var (
		t   *tabela.Tabela
		err error
	)
	switch {
	case *usarSheet:
		t, err = tabela.LerPlanilhaGoogle(context.Background(), cfg.GoogleCredential, cfg.GoogleSheetID, cfg.GoogleSheetAba)
	case *arquivo != "":
		t, err = tabela.LerArquivo(*arquivo)
	default:
		log.Fatal("Informe -arquivo ou -sheet")
	}
	if err != nil {
		log.Fatalf("Erro ao ler o cadastro mestre: %v", err)
	}

	produtos, err := cadastro.LerMestre(t)
	if err != nil {
		log.Fatalf("Erro no cadastro mestre: %v", err)
	}

	exp := cadastro.Expandir(produtos, time.Now())
	slug := cadastro.Slug(cadastro.MarcaDoLote(produtos))

	caminho, err := cadastro.EscreverTemplate(cfg.TemplatePath, *saida, *comerciante, slug, exp)
	if err != nil {
		log.Fatalf("Erro ao gravar o template: %v", err)
	}

	observability.LinhasProcessadas.WithLabelValues("cadastro").Add(float64(len(produtos)))
	log.Printf("%d produtos expandidos (%d linhas de volume, %d de kit). Saída em %s",
		len(produtos), len(exp.Volume), len(exp.Kit), caminho)

	if err := auditoria.Registrar(cfg.DatabaseURL, "cadastro", slug, len(produtos), 0, nil); err != nil {
		log.Printf("Aviso: auditoria não registrada: %v", err)
	}
}
