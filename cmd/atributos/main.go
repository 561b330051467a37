package main

import (
	"flag"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"mpztools/internal/atributos"
	"mpztools/internal/auditoria"
	"mpztools/internal/config"
	"mpztools/internal/observability"
	"mpztools/internal/tabela"
)

// go run cmd/atributos/main.go -arquivo=mestre.xlsx
func main() {
	arquivo := flag.String("arquivo", "", "Planilha com as descrições HTML")
	saida := flag.String("saida", ".", "Diretório de saída")
	flag.Parse()

	if *arquivo == "" {
		log.Fatal("Informe -arquivo")
	}

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	t, err := tabela.LerArquivo(*arquivo)
	if err != nil {
		log.Fatalf("Erro ao ler a planilha: %v", err)
	}

	extrator := &atributos.Extrator{Logger: logrus.New()}
	res, err := extrator.Extrair(t)
	if err != nil {
		log.Fatalf("Erro na extração de atributos: %v", err)
	}

	caminho, err := atributos.Salvar(res, *saida, time.Now())
	if err != nil {
		log.Fatalf("Erro ao salvar o relatório: %v", err)
	}

	observability.LinhasProcessadas.WithLabelValues("atributos").Add(float64(res.TotalOK))
	log.Printf("%d linhas extraídas, %d com erro. Relatório em %s", res.TotalOK, res.TotalErro, caminho)

	if err := auditoria.Registrar(cfg.DatabaseURL, "atributos", "", res.TotalOK, res.TotalErro, res.Detalhes); err != nil {
		log.Printf("Aviso: auditoria não registrada: %v", err)
	}
}
