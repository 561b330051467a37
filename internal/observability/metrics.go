package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LinhasProcessadas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linhas_processadas_total",
			Help: "Total de linhas processadas por módulo",
		},
		[]string{"modulo"},
	)
	DivergenciasEncontradas = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "divergencias_prazo_total",
			Help: "Total de divergências de prazo encontradas",
		},
	)
	TokensAtualizados = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_atualizados_total",
			Help: "Total de refreshes de token OAuth realizados",
		},
	)
	ChamadasAPI = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chamadas_api_total",
			Help: "Total de chamadas às APIs dos marketplaces por destino e classe de status",
		},
		[]string{"destino", "classe"},
	)
)

func Start(port string) {
	prometheus.MustRegister(LinhasProcessadas, DivergenciasEncontradas, TokensAtualizados, ChamadasAPI)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
