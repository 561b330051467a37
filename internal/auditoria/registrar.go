package auditoria

import (
	"fmt"

	"mpztools/internal/db"
	"mpztools/internal/modelo"
)

// Registrar grava processo e itens numa conexão própria. Auditoria é melhor
// esforço: com dbURL vazia não faz nada, e o chamador decide se o erro vira
// apenas um aviso.
func Registrar(dbURL, modulo, detalhe string, totalOK, totalErro int, itens []modelo.ResultadoLinha) error {
	if dbURL == "" {
		return nil
	}
	conn, err := db.New(dbURL)
	if err != nil {
		return fmt.Errorf("erro ao conectar para auditoria: %w", err)
	}
	defer conn.Close()

	repo := &Repositorio{DB: conn}
	processoID, err := repo.RegistrarProcesso(modulo, detalhe, totalOK, totalErro)
	if err != nil {
		return fmt.Errorf("erro ao registrar processo: %w", err)
	}
	if len(itens) > 0 {
		if err := repo.RegistrarItens(processoID, itens); err != nil {
			return fmt.Errorf("erro ao registrar itens do processo %s: %w", processoID, err)
		}
	}
	return nil
}
