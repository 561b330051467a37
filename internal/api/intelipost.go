package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Intelipost consulta o rastreio de expedições.
type Intelipost struct {
	BaseURL string
	APIKey  string
	Logger  *logrus.Logger

	http *http.Client
}

func NovoIntelipost(baseURL, apiKey string, logger *logrus.Logger) *Intelipost {
	return &Intelipost{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Logger:  logger,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (i *Intelipost) RastrearPedido(ctx context.Context, numeroPedido string) Resultado {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.BaseURL+"/api/v1/shipment_order/"+numeroPedido, nil)
	if err != nil {
		return falha(0, err)
	}
	req.Header.Set("api-key", i.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := i.http.Do(req)
	if err != nil {
		contarChamada("intelipost", 0)
		return falha(0, err)
	}
	defer resp.Body.Close()
	contarChamada("intelipost", resp.StatusCode)

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return falha(resp.StatusCode, fmt.Errorf("intelipost retornou status %d", resp.StatusCode))
	}
	return sucesso(resp.StatusCode, payload)
}
