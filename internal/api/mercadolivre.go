package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mpztools/internal/cache"
)

// FonteToken é o ponto único de obtenção de bearer; conta.Gerente implementa.
type FonteToken interface {
	TokenValido(ctx context.Context, id string) (string, error)
}

// tokenFixo adapta um bearer injetado diretamente (testes e scripts avulsos).
type tokenFixo string

func (t tokenFixo) TokenValido(context.Context, string) (string, error) { return string(t), nil }

const tamanhoLoteItens = 20

// MercadoLivre é o cliente fino da API de anúncios.
type MercadoLivre struct {
	BaseURL string
	Fonte   FonteToken
	Cache   *cache.Itens
	Logger  *logrus.Logger

	http *http.Client

	// Esperas do contrato: 0,5 s entre lotes de leitura, 2 s entre as fases
	// da exclusão e 5 s antes da única retentativa em 409.
	EsperaLote     time.Duration
	EsperaFases    time.Duration
	EsperaConflito time.Duration
}

func NovoMercadoLivre(baseURL string, fonte FonteToken, logger *logrus.Logger) *MercadoLivre {
	return &MercadoLivre{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Fonte:          fonte,
		Logger:         logger,
		http:           &http.Client{Timeout: 30 * time.Second},
		EsperaLote:     500 * time.Millisecond,
		EsperaFases:    2 * time.Second,
		EsperaConflito: 5 * time.Second,
	}
}

// NovoMercadoLivreComBearer cria o cliente com um token fixo, sem gerente.
func NovoMercadoLivreComBearer(baseURL, bearer string, logger *logrus.Logger) *MercadoLivre {
	return NovoMercadoLivre(baseURL, tokenFixo(bearer), logger)
}

func (m *MercadoLivre) chamar(ctx context.Context, metodo, caminho string, corpo interface{}) Resultado {
	token, err := m.Fonte.TokenValido(ctx, "")
	if err != nil {
		return falha(http.StatusUnauthorized, fmt.Errorf("sem token válido: %w", err))
	}

	var leitor io.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		if err != nil {
			return falha(0, err)
		}
		leitor = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, m.BaseURL+caminho, leitor)
	if err != nil {
		return falha(0, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.http.Do(req)
	if err != nil {
		contarChamada("mercadolivre", 0)
		return falha(0, err)
	}
	defer resp.Body.Close()
	contarChamada("mercadolivre", resp.StatusCode)

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return falha(resp.StatusCode, fmt.Errorf("mercadolivre retornou status %d", resp.StatusCode))
	}
	return sucesso(resp.StatusCode, payload)
}

// itemMultiget é a casca de cada entrada do GET /items?ids=...
type itemMultiget struct {
	Code int             `json:"code"`
	Body json.RawMessage `json:"body"`
}

// BuscarItens lê anúncios em massa, em lotes de até 20 IDs com 0,5 s entre
// lotes. Payloads já vistos saem do cache sem tocar a API.
func (m *MercadoLivre) BuscarItens(ctx context.Context, ids []string) *Lote {
	lote := &Lote{}

	var pendentes []string
	for _, id := range ids {
		if payload, ok := m.Cache.Get(ctx, id); ok {
			lote.adicionar(id, sucesso(http.StatusOK, payload))
			continue
		}
		pendentes = append(pendentes, id)
	}

	for i := 0; i < len(pendentes); i += tamanhoLoteItens {
		if i > 0 {
			m.esperar(ctx, m.EsperaLote)
		}
		fim := i + tamanhoLoteItens
		if fim > len(pendentes) {
			fim = len(pendentes)
		}
		grupo := pendentes[i:fim]

		r := m.chamar(ctx, http.MethodGet, "/items?ids="+url.QueryEscape(strings.Join(grupo, ",")), nil)
		if !r.OK {
			for _, id := range grupo {
				lote.adicionar(id, r)
			}
			continue
		}

		var itens []itemMultiget
		if err := json.Unmarshal(r.Payload, &itens); err != nil {
			for _, id := range grupo {
				lote.adicionar(id, falha(r.Status, fmt.Errorf("resposta de multiget ilegível: %w", err)))
			}
			continue
		}
		for j, id := range grupo {
			if j >= len(itens) {
				lote.adicionar(id, falha(r.Status, fmt.Errorf("item %s ausente na resposta", id)))
				continue
			}
			if itens[j].Code != http.StatusOK {
				lote.adicionar(id, falha(itens[j].Code, fmt.Errorf("item %s retornou status %d", id, itens[j].Code)))
				continue
			}
			m.Cache.Set(ctx, id, itens[j].Body)
			lote.adicionar(id, sucesso(itens[j].Code, itens[j].Body))
		}
	}
	return lote
}

// AtualizarPrazo grava o manufacturing time do anúncio em dias.
func (m *MercadoLivre) AtualizarPrazo(ctx context.Context, id string, dias int) Resultado {
	corpo := map[string]interface{}{
		"sale_terms": []map[string]string{
			{"id": "MANUFACTURING_TIME", "value_name": fmt.Sprintf("%d dias", dias)},
		},
	}
	return m.chamar(ctx, http.MethodPut, "/items/"+id, corpo)
}

// AtualizarPrazos aplica prazos por anúncio em ordem estável de ID.
func (m *MercadoLivre) AtualizarPrazos(ctx context.Context, prazos map[string]int) *Lote {
	ids := make([]string, 0, len(prazos))
	for id := range prazos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lote := &Lote{}
	for _, id := range ids {
		lote.adicionar(id, m.AtualizarPrazo(ctx, id, prazos[id]))
	}
	return lote
}

// ExcluirAnuncio executa a exclusão em duas fases: fecha o anúncio, espera
// 2 s e marca deleted. Um 409 na segunda fase ganha uma única retentativa
// após 5 s. Com verificar=true, confirma por GET no fim.
func (m *MercadoLivre) ExcluirAnuncio(ctx context.Context, id string, verificar bool) Resultado {
	if r := m.chamar(ctx, http.MethodPut, "/items/"+id, map[string]string{"status": "closed"}); !r.OK {
		return r
	}
	m.esperar(ctx, m.EsperaFases)

	r := m.chamar(ctx, http.MethodPut, "/items/"+id, map[string]bool{"deleted": true})
	if r.Status == http.StatusConflict {
		m.Logger.WithField("item", id).Warn("Conflito ao excluir anúncio; retentando uma vez")
		m.esperar(ctx, m.EsperaConflito)
		r = m.chamar(ctx, http.MethodPut, "/items/"+id, map[string]bool{"deleted": true})
	}
	if !r.OK || !verificar {
		return r
	}
	return m.chamar(ctx, http.MethodGet, "/items/"+id, nil)
}

func (m *MercadoLivre) esperar(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
