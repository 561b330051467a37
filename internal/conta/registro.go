package conta

import (
	"errors"
	"time"
)

// Estados do ciclo de vida de uma conta. "revoked" é terminal até alguém
// fornecer tokens novos.
const (
	EstadoPendente    = "pending_tokens"
	EstadoAtivo       = "active"
	EstadoAtualizando = "refreshing"
	EstadoExpirado    = "expired"
	EstadoRevogado    = "revoked"
)

var (
	ErrContaNaoEncontrada = errors.New("conta não encontrada")
	ErrContaAtual         = errors.New("a conta atual não pode ser removida")
	ErrSemContaAtual      = errors.New("nenhuma conta selecionada como atual")
	ErrTokenIndisponivel  = errors.New("não foi possível obter um token válido")
)

// Conta é uma identidade OAuth do Mercado Livre.
type Conta struct {
	ID           string     `json:"account_id"`
	Nome         string     `json:"name"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"client_secret"`
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Nickname     string     `json:"user_nickname,omitempty"`
	UserID       int64      `json:"user_id,omitempty"`
	IsCurrent    bool       `json:"is_current"`
	Estado       string     `json:"estado"`
}

// Expirada considera uma margem de segurança de um minuto.
func (c *Conta) Expirada(agora time.Time) bool {
	if c.AccessToken == "" {
		return true
	}
	if c.ExpiresAt == nil {
		return false
	}
	return !agora.Add(time.Minute).Before(*c.ExpiresAt)
}
