package modelo

import "time"

// Processo registra a execução de um job (um por módulo: prazos, cadastro, atributos...).
type Processo struct {
	ID          string
	Modulo      string
	TotalOK     int
	TotalErro   int
	Detalhe     string
	ExecutadoEm time.Time
}

type ItemProcessado struct {
	ID         string
	ProcessoID string
	Chave      string
	Situacao   string
	Motivo     string
}

// Situações possíveis de uma linha dentro de um job. Erro em uma linha não
// derruba o job; o agregado conta cada situação.
const (
	LinhaOK       = "ok"
	LinhaIgnorada = "ignorada"
	LinhaFalhou   = "falhou"
)

type ResultadoLinha struct {
	Chave    string
	Situacao string
	Motivo   string
}

func LinhaProcessada(chave string) ResultadoLinha {
	return ResultadoLinha{Chave: chave, Situacao: LinhaOK}
}

func LinhaDescartada(chave, motivo string) ResultadoLinha {
	return ResultadoLinha{Chave: chave, Situacao: LinhaIgnorada, Motivo: motivo}
}

func LinhaComErro(chave, motivo string) ResultadoLinha {
	return ResultadoLinha{Chave: chave, Situacao: LinhaFalhou, Motivo: motivo}
}
