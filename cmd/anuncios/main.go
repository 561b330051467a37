package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"mpztools/internal/api"
	"mpztools/internal/cache"
	"mpztools/internal/config"
	"mpztools/internal/conta"
	"mpztools/internal/observability"
	"mpztools/internal/tabela"
)

// go run cmd/anuncios/main.go -acao=itens -ids=MLB1,MLB2
// go run cmd/anuncios/main.go -acao=prazo -id=MLB1 -dias=5
// go run cmd/anuncios/main.go -acao=prazos -arquivo=prazos.xlsx
// go run cmd/anuncios/main.go -acao=excluir -id=MLB1
// go run cmd/anuncios/main.go -acao=fotos -produto=123
// go run cmd/anuncios/main.go -acao=etiqueta -ids=789 -formato=PDF
// go run cmd/anuncios/main.go -acao=rastreio -pedido=456
func main() {
	acao := flag.String("acao", "", "itens | prazo | prazos | excluir | fotos | etiqueta | pedidos | rastreio")
	id := flag.String("id", "", "ID do anúncio")
	idsArg := flag.String("ids", "", "IDs separados por vírgula")
	dias := flag.Int("dias", 0, "Prazo em dias")
	arquivo := flag.String("arquivo", "", "Planilha com colunas ITEM_ID e DIAS")
	produto := flag.String("produto", "", "ID do produto no AnyMarket")
	pedido := flag.String("pedido", "", "Número do pedido")
	formato := flag.String("formato", "PDF", "Formato da etiqueta: PDF ou ZPL")
	verificar := flag.Bool("verificar", false, "Confirmar exclusão com um GET final")
	flag.Parse()

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)
	logger := logrus.New()

	gerente, err := conta.NovoGerente(cfg.DataDir, "", logger)
	if err != nil {
		log.Fatalf("Erro ao abrir o gerente de contas: %v", err)
	}

	ml := api.NovoMercadoLivre(conta.URLMercadoLivre, gerente, logger)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("REDIS_URL inválida: %v", err)
		}
		ml.Cache = &cache.Itens{Client: redis.NewClient(opt)}
	}
	any := api.NovoAnyMarket("https://api.anymarket.com.br", cfg.AnymarketToken, logger)
	inteli := api.NovoIntelipost("https://api.intelipost.com.br", cfg.IntelipostKey, logger)

	ctx := context.Background()
	switch *acao {
	case "itens":
		lote := ml.BuscarItens(ctx, separar(*idsArg))
		imprimirLote(lote)
	case "prazo":
		r := ml.AtualizarPrazo(ctx, *id, *dias)
		imprimir(r)
	case "prazos":
		t, err := tabela.LerArquivo(*arquivo)
		if err != nil {
			log.Fatalf("Erro ao ler a planilha de prazos: %v", err)
		}
		if err := t.ExigirColunas("ITEM_ID", "DIAS"); err != nil {
			log.Fatalf("Planilha de prazos: %v", err)
		}
		prazos := map[string]int{}
		for i := range t.Linhas {
			prazos[t.Valor(i, "ITEM_ID")] = t.Inteiro(i, "DIAS")
		}
		imprimirLote(ml.AtualizarPrazos(ctx, prazos))
	case "excluir":
		imprimir(ml.ExcluirAnuncio(ctx, *id, *verificar))
	case "fotos":
		imprimir(any.ListarFotos(ctx, *produto))
	case "etiqueta":
		if strings.EqualFold(*formato, "ZPL") {
			imprimir(any.GerarEtiquetaZPL(ctx, separar(*idsArg)))
		} else {
			imprimir(any.GerarEtiquetaPDF(ctx, separar(*idsArg)))
		}
	case "pedidos":
		imprimir(any.ListarPedidos(ctx, "", 50))
	case "rastreio":
		imprimir(inteli.RastrearPedido(ctx, *pedido))
	default:
		log.Fatalf("Ação desconhecida: %s", *acao)
	}
}

func separar(s string) []string {
	var ids []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func imprimir(r api.Resultado) {
	if r.OK {
		fmt.Printf("OK %d\n%s\n", r.Status, r.Payload)
		return
	}
	log.Fatalf("Falha %d: %s", r.Status, r.Erro)
}

func imprimirLote(l *api.Lote) {
	for _, item := range l.Itens {
		situacao := "OK"
		if !item.OK {
			situacao = "ERRO " + item.Erro
		}
		fmt.Printf("%s  %d  %s\n", item.ID, item.Status, situacao)
	}
	fmt.Printf("Total: %d ok, %d com erro\n", l.TotalOK, l.TotalErro)
}
