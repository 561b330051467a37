package auditoria

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"mpztools/internal/modelo"
)

// Repositorio grava o rastro de auditoria dos jobs: um registro de processo
// por execução e um item processado por linha relevante.
type Repositorio struct {
	DB *sql.DB
}

func (r *Repositorio) RegistrarProcesso(modulo, detalhe string, totalOK, totalErro int) (string, error) {
	id := uuid.New().String()
	_, err := r.DB.Exec(`
		INSERT INTO processo (id, modulo, total_ok, total_erro, detalhe, executado_em)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, modulo, totalOK, totalErro, detalhe, time.Now())
	return id, err
}

func (r *Repositorio) RegistrarItens(processoID string, itens []modelo.ResultadoLinha) error {
	for _, item := range itens {
		_, err := r.DB.Exec(`
			INSERT INTO item_processado (id, processo_id, chave, situacao, motivo)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), processoID, item.Chave, item.Situacao, item.Motivo)
		if err != nil {
			return err
		}
	}
	return nil
}
