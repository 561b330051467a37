package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AnyMarket cobre catálogo de fotos, etiquetas de expedição e listagem de
// pedidos. A listagem de fotos é a única chamada com timeout estendido (60 s).
type AnyMarket struct {
	BaseURL string
	Token   string
	Logger  *logrus.Logger

	http      *http.Client
	httpFotos *http.Client
}

func NovoAnyMarket(baseURL, token string, logger *logrus.Logger) *AnyMarket {
	return &AnyMarket{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Token:     token,
		Logger:    logger,
		http:      &http.Client{Timeout: 30 * time.Second},
		httpFotos: &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *AnyMarket) chamar(ctx context.Context, cliente *http.Client, metodo, caminho string, corpo interface{}) Resultado {
	var leitor io.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		if err != nil {
			return falha(0, err)
		}
		leitor = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, a.BaseURL+caminho, leitor)
	if err != nil {
		return falha(0, err)
	}
	req.Header.Set("gumgaToken", a.Token)
	req.Header.Set("Accept", "application/json")
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cliente.Do(req)
	if err != nil {
		contarChamada("anymarket", 0)
		return falha(0, err)
	}
	defer resp.Body.Close()
	contarChamada("anymarket", resp.StatusCode)

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return falha(resp.StatusCode, fmt.Errorf("anymarket retornou status %d", resp.StatusCode))
	}
	return sucesso(resp.StatusCode, payload)
}

func (a *AnyMarket) ListarFotos(ctx context.Context, produtoID string) Resultado {
	return a.chamar(ctx, a.httpFotos, http.MethodGet, "/products/"+produtoID+"/photos", nil)
}

func (a *AnyMarket) ExcluirFoto(ctx context.Context, produtoID, fotoID string) Resultado {
	return a.chamar(ctx, a.http, http.MethodDelete, "/products/"+produtoID+"/photos/"+fotoID, nil)
}

// AtualizarFoto regrava metadados de uma foto (ordem, principal).
func (a *AnyMarket) AtualizarFoto(ctx context.Context, produtoID, fotoID string, corpo interface{}) Resultado {
	return a.chamar(ctx, a.http, http.MethodPut, "/products/"+produtoID+"/photos/"+fotoID, corpo)
}

// ExcluirFotos remove várias fotos de um produto, com resultado por item.
func (a *AnyMarket) ExcluirFotos(ctx context.Context, produtoID string, fotoIDs []string) *Lote {
	lote := &Lote{}
	for _, id := range fotoIDs {
		lote.adicionar(id, a.ExcluirFoto(ctx, produtoID, id))
	}
	return lote
}

type pedidoEtiqueta struct {
	ID string `json:"id"`
}

func (a *AnyMarket) GerarEtiquetaPDF(ctx context.Context, pedidoIDs []string) Resultado {
	corpo := make([]pedidoEtiqueta, len(pedidoIDs))
	for i, id := range pedidoIDs {
		corpo[i] = pedidoEtiqueta{ID: id}
	}
	return a.chamar(ctx, a.http, http.MethodPost, "/v2/printtag/PDF", corpo)
}

func (a *AnyMarket) GerarEtiquetaZPL(ctx context.Context, pedidoIDs []string) Resultado {
	corpo := make([]pedidoEtiqueta, len(pedidoIDs))
	for i, id := range pedidoIDs {
		corpo[i] = pedidoEtiqueta{ID: id}
	}
	return a.chamar(ctx, a.http, http.MethodPost, "/v2/printtag/ZPL2?file=TXT", corpo)
}

// ListarPedidos busca pedidos criados a partir da data informada.
func (a *AnyMarket) ListarPedidos(ctx context.Context, criadoApos string, limite int) Resultado {
	params := url.Values{}
	if criadoApos != "" {
		params.Set("createdAfter", criadoApos)
	}
	if limite > 0 {
		params.Set("limit", fmt.Sprint(limite))
	}
	caminho := "/v2/orders"
	if len(params) > 0 {
		caminho += "?" + params.Encode()
	}
	return a.chamar(ctx, a.http, http.MethodGet, caminho, nil)
}
