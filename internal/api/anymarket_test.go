package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoAnyTeste(t *testing.T, handler http.HandlerFunc) *AnyMarket {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NovoAnyMarket(srv.URL, "gumga-teste", loggerTeste())
}

func TestAnyMarketEnviaGumgaToken(t *testing.T) {
	m := novoAnyTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gumga-teste", r.Header.Get("gumgaToken"))
		assert.Equal(t, "/products/55/photos", r.URL.Path)
		w.Write([]byte(`[]`))
	})

	r := m.ListarFotos(context.Background(), "55")
	assert.True(t, r.OK)
}

func TestGerarEtiquetaZPLCorpo(t *testing.T) {
	var corpo []map[string]string
	m := novoAnyTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/printtag/ZPL2", r.URL.Path)
		assert.Equal(t, "TXT", r.URL.Query().Get("file"))
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &corpo))
		w.Write([]byte(`{}`))
	})

	r := m.GerarEtiquetaZPL(context.Background(), []string{"111", "222"})
	require.True(t, r.OK)
	assert.Equal(t, []map[string]string{{"id": "111"}, {"id": "222"}}, corpo)
}

func TestExcluirFotosAgregaPorItem(t *testing.T) {
	m := novoAnyTeste(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products/55/photos/2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	lote := m.ExcluirFotos(context.Background(), "55", []string{"1", "2", "3"})
	assert.Equal(t, 2, lote.TotalOK)
	assert.Equal(t, 1, lote.TotalErro)
}

func TestListarPedidosParametros(t *testing.T) {
	m := novoAnyTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/orders", r.URL.Path)
		assert.Equal(t, "2026-08-01T00:00:00Z", r.URL.Query().Get("createdAfter"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"content":[]}`))
	})

	r := m.ListarPedidos(context.Background(), "2026-08-01T00:00:00Z", 50)
	assert.True(t, r.OK)
}

func TestIntelipostRastreio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chave-teste", r.Header.Get("api-key"))
		assert.Equal(t, "/api/v1/shipment_order/PED-9", r.URL.Path)
		w.Write([]byte(`{"status":"OK"}`))
	}))
	t.Cleanup(srv.Close)

	i := NovoIntelipost(srv.URL, "chave-teste", loggerTeste())
	r := i.RastrearPedido(context.Background(), "PED-9")
	assert.True(t, r.OK)
	assert.Contains(t, string(r.Payload), "OK")
}
