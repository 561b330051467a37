package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"

	"mpztools/internal/config"
	"mpztools/internal/conta"
)

// go run cmd/contas/main.go -acao=add -nome="Loja principal" -client-id=... -client-secret=...
// go run cmd/contas/main.go -acao=tokens -id=<uuid> -access=... -refresh=...
// go run cmd/contas/main.go -acao=atual -id=<uuid>
// go run cmd/contas/main.go -acao=listar
func main() {
	acao := flag.String("acao", "listar", "add | tokens | renovar | atual | remover | listar | validar")
	nome := flag.String("nome", "", "Nome da conta")
	id := flag.String("id", "", "ID da conta")
	clientID := flag.String("client-id", "", "Client ID da aplicação")
	clientSecret := flag.String("client-secret", "", "Client secret da aplicação")
	access := flag.String("access", "", "Access token manual")
	refresh := flag.String("refresh", "", "Refresh token manual")
	flag.Parse()

	cfg := config.Load()
	gerente, err := conta.NovoGerente(cfg.DataDir, "", logrus.New())
	if err != nil {
		log.Fatalf("Erro ao abrir o gerente de contas: %v", err)
	}

	ctx := context.Background()
	switch *acao {
	case "add":
		c, err := gerente.AdicionarConta(ctx, *nome, *clientID, *clientSecret)
		if err != nil {
			log.Fatalf("Erro ao adicionar conta: %v", err)
		}
		log.Printf("Conta %s criada (%s), estado %s", c.Nome, c.ID, c.Estado)
	case "tokens":
		if err := gerente.DefinirTokensManuais(ctx, *id, *access, *refresh); err != nil {
			log.Fatalf("Erro ao definir tokens: %v", err)
		}
		log.Println("Tokens gravados")
	case "renovar":
		c, err := gerente.Atualizar(ctx, *id)
		if err != nil {
			log.Fatalf("Erro ao renovar token: %v", err)
		}
		log.Printf("Token da conta %s renovado", c.Nome)
	case "atual":
		if err := gerente.SelecionarAtual(*id); err != nil {
			log.Fatalf("Erro ao selecionar conta: %v", err)
		}
		log.Printf("Conta %s agora é a corrente", *id)
	case "remover":
		if err := gerente.Remover(*id); err != nil {
			log.Fatalf("Erro ao remover conta: %v", err)
		}
		log.Println("Conta removida")
	case "validar":
		token, err := gerente.TokenValido(ctx, *id)
		if err != nil {
			log.Fatalf("Sem token válido: %v", err)
		}
		log.Printf("Token válido (%d caracteres)", len(token))
	case "listar":
		contas, err := gerente.Contas()
		if err != nil {
			log.Fatalf("Erro ao listar contas: %v", err)
		}
		for _, c := range contas {
			marcador := " "
			if c.IsCurrent {
				marcador = "*"
			}
			fmt.Printf("%s %s  %-20s  %s  %s\n", marcador, c.ID, c.Nome, c.Nickname, c.Estado)
		}
	default:
		log.Fatalf("Ação desconhecida: %s", *acao)
	}
}
