package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"mpztools/internal/auditoria"
	"mpztools/internal/config"
	"mpztools/internal/db"
)

// go run cmd/historico/main.go -modulo=prazos -limite=20
func main() {
	modulo := flag.String("modulo", "prazos", "Módulo a consultar: prazos | cadastro | atributos")
	limite := flag.Int("limite", 10, "Quantidade de execuções")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não configurada")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}
	defer pool.Close()

	consulta := &auditoria.Consulta{DB: pool}
	processos, err := consulta.UltimosProcessos(ctx, *modulo, *limite)
	if err != nil {
		log.Fatalf("Erro ao consultar histórico: %v", err)
	}

	if len(processos) == 0 {
		log.Printf("Nenhuma execução registrada para o módulo %s", *modulo)
		return
	}
	for _, p := range processos {
		fmt.Printf("%s  %s  ok=%d erro=%d  %s\n",
			p.ExecutadoEm.Format("02/01/2006 15:04"), p.Modulo, p.TotalOK, p.TotalErro, p.Detalhe)
	}
}
