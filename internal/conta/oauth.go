package conta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const URLMercadoLivre = "https://api.mercadolibre.com"

// clienteOAuth fala com o endpoint de OAuth e de identidade do Mercado Livre.
// As sondas de autenticação usam timeout curto de 10 s.
type clienteOAuth struct {
	baseURL string
	http    *http.Client
}

func novoClienteOAuth(baseURL string) *clienteOAuth {
	return &clienteOAuth{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type respostaToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type respostaUsuario struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

func (c *clienteOAuth) token(ctx context.Context, form url.Values) (*respostaToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na chamada de token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth/token retornou status %d", resp.StatusCode)
	}
	var tok respostaToken
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}
	return &tok, nil
}

// TokenTeste é o bootstrap por client_credentials, usado quando não há fluxo
// de authorization_code disponível.
func (c *clienteOAuth) TokenTeste(ctx context.Context, clientID, clientSecret string) (*respostaToken, error) {
	return c.token(ctx, url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	})
}

func (c *clienteOAuth) TokenPorCodigo(ctx context.Context, clientID, clientSecret, codigo, redirectURI string) (*respostaToken, error) {
	return c.token(ctx, url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {codigo},
		"redirect_uri":  {redirectURI},
	})
}

func (c *clienteOAuth) RenovarToken(ctx context.Context, clientID, clientSecret, refreshToken string) (*respostaToken, error) {
	return c.token(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"refresh_token": {refreshToken},
	})
}

// UsuarioAtual sonda GET /users/me; serve de prova de validade do token.
func (c *clienteOAuth) UsuarioAtual(ctx context.Context, accessToken string) (*respostaUsuario, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("erro na sonda /users/me: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("/users/me retornou status %d", resp.StatusCode)
	}
	var u respostaUsuario
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("erro ao decodificar /users/me: %w", err)
	}
	return &u, resp.StatusCode, nil
}
