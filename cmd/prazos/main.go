package main

import (
	"flag"
	"log"
	"time"

	"mpztools/internal/auditoria"
	"mpztools/internal/config"
	"mpztools/internal/observability"
	"mpztools/internal/prazo"
	"mpztools/internal/tabela"
)

// go run cmd/prazos/main.go -erp=export_erp.xlsx -mkt=export_tray.xlsx
func main() {
	erpArq := flag.String("erp", "", "Planilha exportada do ERP")
	mktArq := flag.String("mkt", "", "Planilha exportada do marketplace")
	saida := flag.String("saida", ".", "Diretório de saída do relatório")
	flag.Parse()

	if *erpArq == "" || *mktArq == "" {
		log.Fatal("Informe -erp e -mkt")
	}

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	erp, err := tabela.LerArquivo(*erpArq)
	if err != nil {
		log.Fatalf("Erro ao ler planilha do ERP: %v", err)
	}
	mkt, err := tabela.LerArquivo(*mktArq)
	if err != nil {
		log.Fatalf("Erro ao ler planilha do marketplace: %v", err)
	}

	rel, err := prazo.Reconciliar(erp, mkt)
	if err != nil {
		log.Fatalf("Erro na reconciliação: %v", err)
	}

	observability.LinhasProcessadas.WithLabelValues("prazos").Add(float64(rel.Analisados))
	observability.DivergenciasEncontradas.Add(float64(rel.Divergentes))

	caminho, err := prazo.SalvarRelatorio(rel, *saida, time.Now())
	if err != nil {
		log.Fatalf("Erro ao salvar relatório: %v", err)
	}

	log.Printf("Marketplace %s: %d itens analisados, %d divergentes. Relatório em %s",
		rel.Marketplace, rel.Analisados, rel.Divergentes, caminho)

	if err := auditoria.Registrar(cfg.DatabaseURL, "prazos", rel.Marketplace, rel.Analisados-rel.Divergentes, rel.Divergentes, nil); err != nil {
		log.Printf("Aviso: auditoria não registrada: %v", err)
	}
}
