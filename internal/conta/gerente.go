package conta

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"mpztools/internal/observability"
)

// Gerente administra as identidades OAuth do Mercado Livre: enrolamento,
// seleção da conta corrente, refresh e o ponto único de obtenção de bearer
// válido para os clientes de API.
type Gerente struct {
	loja   *Loja
	oauth  *clienteOAuth
	logger *logrus.Logger
	grupo  singleflight.Group
	agora  func() time.Time
}

func NovoGerente(dir, baseURL string, logger *logrus.Logger) (*Gerente, error) {
	loja, err := NovaLoja(dir)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = URLMercadoLivre
	}
	return &Gerente{
		loja:   loja,
		oauth:  novoClienteOAuth(baseURL),
		logger: logger,
		agora:  time.Now,
	}, nil
}

// AdicionarConta enrola uma aplicação nova. Tenta o bootstrap por
// client_credentials; se falhar, a conta fica em pending_tokens aguardando
// tokens manuais.
func (g *Gerente) AdicionarConta(ctx context.Context, nome, clientID, clientSecret string) (*Conta, error) {
	c := &Conta{
		ID:           uuid.New().String(),
		Nome:         nome,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Estado:       EstadoPendente,
	}

	tok, err := g.oauth.TokenTeste(ctx, clientID, clientSecret)
	if err != nil {
		g.logger.WithError(err).WithField("conta", nome).Warn("Bootstrap client_credentials falhou; conta fica pendente")
	} else {
		g.aplicarToken(c, tok)
		if u, _, err := g.oauth.UsuarioAtual(ctx, c.AccessToken); err == nil {
			c.Nickname = u.Nickname
			c.UserID = u.ID
		}
	}

	err = g.loja.Alterar(func(doc *Documento) error {
		doc.MercadoLivre[c.ID] = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Primeira conta enrolada vira a corrente.
	if atual, _ := g.loja.ContaAtual(); atual == "" {
		if err := g.SelecionarAtual(c.ID); err != nil {
			return nil, err
		}
		c.IsCurrent = true
	}
	return c, nil
}

// DefinirTokensManuais grava tokens obtidos fora do sistema e revalida a
// identidade via /users/me.
func (g *Gerente) DefinirTokensManuais(ctx context.Context, id, accessToken, refreshToken string) error {
	return g.loja.Alterar(func(doc *Documento) error {
		c, ok := doc.MercadoLivre[id]
		if !ok {
			return ErrContaNaoEncontrada
		}
		c.AccessToken = accessToken
		c.RefreshToken = refreshToken
		c.ExpiresAt = nil
		c.Estado = EstadoAtivo
		if u, _, err := g.oauth.UsuarioAtual(ctx, accessToken); err == nil {
			c.Nickname = u.Nickname
			c.UserID = u.ID
		}
		return nil
	})
}

// TokenValido devolve um bearer utilizável para a conta (a corrente, se id
// vazio). Token dentro da validade é devolvido direto; expirado dispara um
// refresh único mesmo sob chamadas concorrentes (single-flight).
func (g *Gerente) TokenValido(ctx context.Context, id string) (string, error) {
	c, err := g.buscar(id)
	if err != nil {
		return "", err
	}

	if !c.Expirada(g.agora()) {
		if c.ExpiresAt != nil {
			return c.AccessToken, nil
		}
		// Validade desconhecida: prova contra /users/me antes de entregar.
		if _, status, err := g.oauth.UsuarioAtual(ctx, c.AccessToken); err == nil {
			return c.AccessToken, nil
		} else if status != http.StatusUnauthorized && status != http.StatusForbidden {
			return "", fmt.Errorf("%w: %v", ErrTokenIndisponivel, err)
		}
	}

	renovada, err := g.renovarUnica(ctx, c.ID)
	if err != nil {
		return "", err
	}
	return renovada.AccessToken, nil
}

// Atualizar força um refresh da conta, fora do caminho single-flight.
func (g *Gerente) Atualizar(ctx context.Context, id string) (*Conta, error) {
	return g.renovarUnica(ctx, id)
}

// renovarUnica garante no máximo um refresh em voo por conta; chamadas
// concorrentes aguardam e compartilham o resultado.
func (g *Gerente) renovarUnica(ctx context.Context, id string) (*Conta, error) {
	v, err, _ := g.grupo.Do(id, func() (interface{}, error) {
		return g.renovar(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Conta), nil
}

func (g *Gerente) renovar(ctx context.Context, id string) (*Conta, error) {
	var renovada *Conta
	err := g.loja.Alterar(func(doc *Documento) error {
		c, ok := doc.MercadoLivre[id]
		if !ok {
			return ErrContaNaoEncontrada
		}
		if c.RefreshToken == "" {
			c.Estado = EstadoRevogado
			return fmt.Errorf("%w: conta %s sem refresh token", ErrTokenIndisponivel, id)
		}

		c.Estado = EstadoAtualizando
		tok, err := g.oauth.RenovarToken(ctx, c.ClientID, c.ClientSecret, c.RefreshToken)
		if err != nil {
			c.Estado = EstadoExpirado
			return fmt.Errorf("%w: %v", ErrTokenIndisponivel, err)
		}
		g.aplicarToken(c, tok)
		observability.TokensAtualizados.Inc()
		g.logger.WithField("conta", c.Nome).Info("Token renovado com sucesso")
		renovada = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renovada, nil
}

// aplicarToken grava o par novo preservando o refresh token anterior quando a
// resposta vem sem um.
func (g *Gerente) aplicarToken(c *Conta, tok *respostaToken) {
	c.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		c.RefreshToken = tok.RefreshToken
	}
	if tok.ExpiresIn > 0 {
		exp := g.agora().Add(time.Duration(tok.ExpiresIn) * time.Second)
		c.ExpiresAt = &exp
	} else {
		c.ExpiresAt = nil
	}
	c.Estado = EstadoAtivo
}

// Remover apaga uma conta; a conta corrente nunca pode ser removida.
func (g *Gerente) Remover(id string) error {
	atual, err := g.loja.ContaAtual()
	if err != nil {
		return err
	}
	if id == atual {
		return ErrContaAtual
	}
	return g.loja.Alterar(func(doc *Documento) error {
		if _, ok := doc.MercadoLivre[id]; !ok {
			return ErrContaNaoEncontrada
		}
		delete(doc.MercadoLivre, id)
		return nil
	})
}

// SelecionarAtual aponta a conta corrente e mantém o invariante de no máximo
// um is_current verdadeiro no documento.
func (g *Gerente) SelecionarAtual(id string) error {
	err := g.loja.Alterar(func(doc *Documento) error {
		if _, ok := doc.MercadoLivre[id]; !ok {
			return ErrContaNaoEncontrada
		}
		for cid, c := range doc.MercadoLivre {
			c.IsCurrent = cid == id
		}
		return nil
	})
	if err != nil {
		return err
	}
	return g.loja.DefinirContaAtual(id)
}

// Contas lista as contas em ordem estável de nome.
func (g *Gerente) Contas() ([]Conta, error) {
	doc, err := g.loja.Carregar()
	if err != nil {
		return nil, err
	}
	var contas []Conta
	for _, c := range doc.MercadoLivre {
		contas = append(contas, *c)
	}
	sort.Slice(contas, func(i, j int) bool { return contas[i].Nome < contas[j].Nome })
	return contas, nil
}

func (g *Gerente) buscar(id string) (*Conta, error) {
	if id == "" {
		atual, err := g.loja.ContaAtual()
		if err != nil {
			return nil, err
		}
		if atual == "" {
			return nil, ErrSemContaAtual
		}
		id = atual
	}
	doc, err := g.loja.Carregar()
	if err != nil {
		return nil, err
	}
	c, ok := doc.MercadoLivre[id]
	if !ok {
		return nil, ErrContaNaoEncontrada
	}
	return c, nil
}
