package api

import (
	"encoding/json"
	"fmt"
	"time"

	"mpztools/internal/observability"
)

// Resultado é o retorno uniforme de toda chamada a marketplace: nunca é
// lançado erro para cima, o chamador inspeciona OK e Status.
type Resultado struct {
	OK        bool            `json:"ok"`
	Status    int             `json:"status_code"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Erro      string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type ItemLote struct {
	ID string `json:"id"`
	Resultado
}

// Lote agrega resultados por item de uma operação em massa.
type Lote struct {
	Itens     []ItemLote `json:"itens"`
	TotalOK   int        `json:"total_ok"`
	TotalErro int        `json:"total_err"`
}

func (l *Lote) adicionar(id string, r Resultado) {
	l.Itens = append(l.Itens, ItemLote{ID: id, Resultado: r})
	if r.OK {
		l.TotalOK++
	} else {
		l.TotalErro++
	}
}

func sucesso(status int, payload []byte) Resultado {
	return Resultado{OK: true, Status: status, Payload: payload, Timestamp: time.Now()}
}

func falha(status int, err error) Resultado {
	r := Resultado{Status: status, Timestamp: time.Now()}
	if err != nil {
		r.Erro = err.Error()
	} else {
		r.Erro = fmt.Sprintf("status %d", status)
	}
	return r
}

func contarChamada(destino string, status int) {
	classe := "erro_rede"
	if status > 0 {
		classe = fmt.Sprintf("%dxx", status/100)
	}
	observability.ChamadasAPI.WithLabelValues(destino, classe).Inc()
}
