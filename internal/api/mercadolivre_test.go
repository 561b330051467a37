package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerTeste() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// novoMLTeste devolve o cliente apontado para o servidor falso, com todas as
// esperas zeradas para o teste não dormir.
func novoMLTeste(t *testing.T, handler http.HandlerFunc) *MercadoLivre {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := NovoMercadoLivreComBearer(srv.URL, "tok-teste", loggerTeste())
	m.EsperaLote = 0
	m.EsperaFases = 0
	m.EsperaConflito = 0
	return m
}

func responderMultiget(w http.ResponseWriter, ids []string) {
	itens := make([]itemMultiget, len(ids))
	for i, id := range ids {
		itens[i] = itemMultiget{
			Code: http.StatusOK,
			Body: json.RawMessage(fmt.Sprintf(`{"id":%q}`, id)),
		}
	}
	json.NewEncoder(w).Encode(itens)
}

func TestBuscarItensEmLotesDeVinte(t *testing.T) {
	var chamadas []int
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-teste", r.Header.Get("Authorization"))
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		chamadas = append(chamadas, len(ids))
		responderMultiget(w, ids)
	})

	ids := make([]string, 25)
	for i := range ids {
		ids[i] = fmt.Sprintf("MLB%03d", i)
	}

	lote := m.BuscarItens(context.Background(), ids)
	assert.Equal(t, 25, lote.TotalOK)
	assert.Equal(t, 0, lote.TotalErro)
	assert.Equal(t, []int{20, 5}, chamadas)
}

func TestBuscarItensPropagaErroPorItem(t *testing.T) {
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		itens := make([]itemMultiget, len(ids))
		for i, id := range ids {
			itens[i] = itemMultiget{Code: http.StatusOK, Body: json.RawMessage(fmt.Sprintf(`{"id":%q}`, id))}
		}
		itens[1].Code = http.StatusNotFound
		itens[1].Body = nil
		json.NewEncoder(w).Encode(itens)
	})

	lote := m.BuscarItens(context.Background(), []string{"MLB1", "MLB2", "MLB3"})
	assert.Equal(t, 2, lote.TotalOK)
	assert.Equal(t, 1, lote.TotalErro)
	require.Len(t, lote.Itens, 3)
	assert.False(t, lote.Itens[1].OK)
	assert.Equal(t, http.StatusNotFound, lote.Itens[1].Status)
}

func TestAtualizarPrazoCorpo(t *testing.T) {
	var corpo map[string]interface{}
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/items/MLB1", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &corpo))
		w.Write([]byte(`{}`))
	})

	r := m.AtualizarPrazo(context.Background(), "MLB1", 7)
	require.True(t, r.OK)

	termos, ok := corpo["sale_terms"].([]interface{})
	require.True(t, ok)
	require.Len(t, termos, 1)
	termo := termos[0].(map[string]interface{})
	assert.Equal(t, "MANUFACTURING_TIME", termo["id"])
	assert.Equal(t, "7 dias", termo["value_name"])
}

func TestAtualizarPrazosOrdemEContadores(t *testing.T) {
	var ordem []string
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/items/")
		ordem = append(ordem, id)
		if id == "MLB2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	})

	lote := m.AtualizarPrazos(context.Background(), map[string]int{
		"MLB3": 5, "MLB1": 3, "MLB2": 8,
	})
	assert.Equal(t, []string{"MLB1", "MLB2", "MLB3"}, ordem)
	assert.Equal(t, 2, lote.TotalOK)
	assert.Equal(t, 1, lote.TotalErro)
}

// corpoExclusao distingue as duas fases pelo corpo do PUT.
func corpoExclusao(r *http.Request) string {
	b, _ := io.ReadAll(r.Body)
	if strings.Contains(string(b), "closed") {
		return "closed"
	}
	return "deleted"
}

func TestExcluirAnuncioRetentaUmaVezEm409(t *testing.T) {
	fases := map[string]int{}
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		fase := corpoExclusao(r)
		fases[fase]++
		if fase == "deleted" && fases[fase] == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.Write([]byte(`{}`))
	})

	r := m.ExcluirAnuncio(context.Background(), "MLB1", false)
	assert.True(t, r.OK)
	assert.Equal(t, 1, fases["closed"])
	assert.Equal(t, 2, fases["deleted"], "um 409 ganha exatamente uma retentativa")
}

func TestExcluirAnuncioDesisteNoSegundo409(t *testing.T) {
	fases := map[string]int{}
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		fase := corpoExclusao(r)
		fases[fase]++
		if fase == "deleted" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.Write([]byte(`{}`))
	})

	r := m.ExcluirAnuncio(context.Background(), "MLB1", false)
	assert.False(t, r.OK)
	assert.Equal(t, http.StatusConflict, r.Status)
	assert.Equal(t, 2, fases["deleted"])
}

func TestExcluirAnuncioParaSeFechamentoFalha(t *testing.T) {
	total := 0
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		total++
		w.WriteHeader(http.StatusForbidden)
	})

	r := m.ExcluirAnuncio(context.Background(), "MLB1", false)
	assert.False(t, r.OK)
	assert.Equal(t, http.StatusForbidden, r.Status)
	assert.Equal(t, 1, total, "a segunda fase não roda se o fechamento falhou")
}

func TestExcluirAnuncioVerifica(t *testing.T) {
	var gets int
	m := novoMLTeste(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		w.Write([]byte(`{"status":"closed"}`))
	})

	r := m.ExcluirAnuncio(context.Background(), "MLB1", true)
	assert.True(t, r.OK)
	assert.Equal(t, 1, gets)
	assert.Contains(t, string(r.Payload), "closed")
}
