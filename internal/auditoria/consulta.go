package auditoria

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mpztools/internal/modelo"
)

// Consulta lê o histórico de processos pelo pool pgx.
type Consulta struct {
	DB *pgxpool.Pool
}

func (c *Consulta) UltimosProcessos(ctx context.Context, modulo string, limite int) ([]modelo.Processo, error) {
	rows, err := c.DB.Query(ctx, `
		SELECT id, modulo, total_ok, total_erro, detalhe, executado_em
		FROM processo
		WHERE modulo = $1
		ORDER BY executado_em DESC
		LIMIT $2
	`, modulo, limite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processos []modelo.Processo
	for rows.Next() {
		var p modelo.Processo
		if err := rows.Scan(&p.ID, &p.Modulo, &p.TotalOK, &p.TotalErro, &p.Detalhe, &p.ExecutadoEm); err != nil {
			return nil, err
		}
		processos = append(processos, p)
	}
	return processos, rows.Err()
}
