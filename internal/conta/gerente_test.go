package conta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// servidorML simula o endpoint de OAuth e de identidade, contando as chamadas
// que chegam de verdade na rede.
type servidorML struct {
	*httptest.Server
	posts      atomic.Int32
	sondas     atomic.Int32
	atraso     time.Duration
	semRefresh bool
	statusMe   int
}

func novoServidorML(t *testing.T) *servidorML {
	t.Helper()
	s := &servidorML{statusMe: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/oauth/token":
			n := s.posts.Add(1)
			if s.atraso > 0 {
				time.Sleep(s.atraso)
			}
			resp := map[string]interface{}{
				"access_token": fmt.Sprintf("token-%d", n),
				"expires_in":   21600,
				"token_type":   "Bearer",
			}
			if !s.semRefresh {
				resp["refresh_token"] = fmt.Sprintf("refresh-%d", n)
			}
			json.NewEncoder(w).Encode(resp)
		case r.Method == http.MethodGet && r.URL.Path == "/users/me":
			s.sondas.Add(1)
			if s.statusMe != http.StatusOK {
				w.WriteHeader(s.statusMe)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 123, "nickname": "LOJA_TESTE"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func novoGerenteTeste(t *testing.T, srv *servidorML) *Gerente {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	g, err := NovoGerente(t.TempDir(), srv.URL, logger)
	require.NoError(t, err)
	return g
}

// semear grava uma conta direto no documento e a seleciona como corrente.
func semear(t *testing.T, g *Gerente, c *Conta) {
	t.Helper()
	require.NoError(t, g.loja.Alterar(func(doc *Documento) error {
		doc.MercadoLivre[c.ID] = c
		return nil
	}))
	require.NoError(t, g.SelecionarAtual(c.ID))
}

func contaExpirada(id string) *Conta {
	passado := time.Now().Add(-time.Hour)
	return &Conta{
		ID:           id,
		Nome:         "Loja " + id,
		ClientID:     "cid",
		ClientSecret: "secreto",
		AccessToken:  "token-velho",
		RefreshToken: "refresh-velho",
		ExpiresAt:    &passado,
		Estado:       EstadoAtivo,
	}
}

func TestTokenValidoRenovaUmaVezEDepoisUsaCache(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	semear(t, g, contaExpirada("c1"))

	tok, err := g.TokenValido(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.EqualValues(t, 1, srv.posts.Load())

	// Segunda chamada usa o token recém gravado, sem tocar na rede.
	tok, err = g.TokenValido(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.EqualValues(t, 1, srv.posts.Load())
	assert.EqualValues(t, 0, srv.sondas.Load())
}

func TestTokenValidoSingleFlight(t *testing.T) {
	srv := novoServidorML(t)
	srv.atraso = 150 * time.Millisecond
	g := novoGerenteTeste(t, srv)
	semear(t, g, contaExpirada("c1"))

	const n = 8
	var (
		largada sync.WaitGroup
		fim     sync.WaitGroup
	)
	largada.Add(1)
	tokens := make([]string, n)
	erros := make([]error, n)
	for i := 0; i < n; i++ {
		fim.Add(1)
		go func(i int) {
			defer fim.Done()
			largada.Wait()
			tokens[i], erros[i] = g.TokenValido(context.Background(), "c1")
		}(i)
	}
	largada.Done()
	fim.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, erros[i])
		assert.Equal(t, "token-1", tokens[i])
	}
	assert.EqualValues(t, 1, srv.posts.Load())
}

func TestRefreshPreservaRefreshTokenAntigo(t *testing.T) {
	srv := novoServidorML(t)
	srv.semRefresh = true
	g := novoGerenteTeste(t, srv)
	semear(t, g, contaExpirada("c1"))

	renovada, err := g.Atualizar(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", renovada.AccessToken)
	assert.Equal(t, "refresh-velho", renovada.RefreshToken)
	assert.Equal(t, EstadoAtivo, renovada.Estado)
}

func TestTokenFrescoNaoTocaNaRede(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	c := contaExpirada("c1")
	futuro := time.Now().Add(time.Hour)
	c.AccessToken = "token-fresco"
	c.ExpiresAt = &futuro
	semear(t, g, c)

	tok, err := g.TokenValido(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "token-fresco", tok)
	assert.EqualValues(t, 0, srv.posts.Load())
	assert.EqualValues(t, 0, srv.sondas.Load())
}

func TestValidadeDesconhecidaProvaAntesDeEntregar(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	c := contaExpirada("c1")
	c.ExpiresAt = nil
	semear(t, g, c)

	tok, err := g.TokenValido(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "token-velho", tok)
	assert.EqualValues(t, 1, srv.sondas.Load())
	assert.EqualValues(t, 0, srv.posts.Load())
}

func TestValidadeDesconhecidaRejeitadaDisparaRefresh(t *testing.T) {
	srv := novoServidorML(t)
	srv.statusMe = http.StatusUnauthorized
	g := novoGerenteTeste(t, srv)
	c := contaExpirada("c1")
	c.ExpiresAt = nil
	semear(t, g, c)

	tok, err := g.TokenValido(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.EqualValues(t, 1, srv.posts.Load())
}

func TestContaSemRefreshTokenFicaRevogada(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	c := contaExpirada("c1")
	c.RefreshToken = ""
	semear(t, g, c)

	_, err := g.TokenValido(context.Background(), "c1")
	require.ErrorIs(t, err, ErrTokenIndisponivel)
	assert.EqualValues(t, 0, srv.posts.Load())
}

func TestAdicionarContaComBootstrap(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)

	c, err := g.AdicionarConta(context.Background(), "Loja Nova", "cid", "secreto")
	require.NoError(t, err)
	assert.Equal(t, EstadoAtivo, c.Estado)
	assert.Equal(t, "LOJA_TESTE", c.Nickname)
	assert.True(t, c.IsCurrent, "primeira conta vira a corrente")

	atual, err := g.loja.ContaAtual()
	require.NoError(t, err)
	assert.Equal(t, c.ID, atual)
}

func TestRemoverContaAtual(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	semear(t, g, contaExpirada("c1"))

	assert.ErrorIs(t, g.Remover("c1"), ErrContaAtual)
	assert.ErrorIs(t, g.Remover("nao-existe"), ErrContaNaoEncontrada)
}

func TestSelecionarAtualMantemUmUnicoIsCurrent(t *testing.T) {
	srv := novoServidorML(t)
	g := novoGerenteTeste(t, srv)
	semear(t, g, contaExpirada("c1"))
	semear(t, g, contaExpirada("c2"))

	require.NoError(t, g.SelecionarAtual("c2"))

	contas, err := g.Contas()
	require.NoError(t, err)
	require.Len(t, contas, 2)
	correntes := 0
	for _, c := range contas {
		if c.IsCurrent {
			correntes++
			assert.Equal(t, "c2", c.ID)
		}
	}
	assert.Equal(t, 1, correntes)
}

func TestDocumentoPreservaSecoesDesconhecidas(t *testing.T) {
	dir := t.TempDir()
	original := `{
  "mercadolivre_accounts": {},
  "anymarket": {"token": "tok-any"},
  "secao_futura": {"campo": "valor"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contas.json"), []byte(original), 0o600))

	loja, err := NovaLoja(dir)
	require.NoError(t, err)
	require.NoError(t, loja.Alterar(func(doc *Documento) error {
		doc.MercadoLivre["c1"] = contaExpirada("c1")
		return nil
	}))

	b, err := os.ReadFile(filepath.Join(dir, "contas.json"))
	require.NoError(t, err)
	var bruto map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &bruto))

	assert.JSONEq(t, `{"campo": "valor"}`, string(bruto["secao_futura"]))
	assert.JSONEq(t, `{"token": "tok-any"}`, string(bruto["anymarket"]))
	assert.Contains(t, string(bruto["mercadolivre_accounts"]), `"account_id": "c1"`)
}
