package conta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	arquivoContas = "contas.json"
	arquivoAtual  = "current_ml_account.json"

	chaveMercadoLivre = "mercadolivre_accounts"
	chaveAnymarket    = "anymarket"
	chaveIntelipost   = "intelipost"
)

// Loja persiste as contas num único documento JSON em disco, particionado por
// provedor. Toda escrita é leitura-modificação-gravação do arquivo inteiro,
// serializada por um lock de arquivo; seções desconhecidas do documento são
// preservadas intactas.
type Loja struct {
	dir   string
	trava *flock.Flock
}

// Documento é o conteúdo decodificado do arquivo de contas.
type Documento struct {
	MercadoLivre map[string]*Conta
	Anymarket    struct {
		Token string `json:"token"`
	}
	Intelipost struct {
		APIKey string `json:"api_key"`
	}

	// Seções que esta versão não conhece, regravadas como estavam.
	extras map[string]json.RawMessage
}

func NovaLoja(dir string) (*Loja, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de contas: %w", err)
	}
	return &Loja{
		dir:   dir,
		trava: flock.New(filepath.Join(dir, arquivoContas+".lock")),
	}, nil
}

// Alterar executa fn sobre o documento atual e regrava o arquivo, tudo sob o
// lock. fn devolvendo erro cancela a gravação.
func (l *Loja) Alterar(fn func(doc *Documento) error) error {
	if err := l.trava.Lock(); err != nil {
		return fmt.Errorf("erro ao obter lock do arquivo de contas: %w", err)
	}
	defer l.trava.Unlock()

	doc, err := l.carregar()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return l.gravar(doc)
}

// Carregar lê o documento sob o lock, sem modificar nada.
func (l *Loja) Carregar() (*Documento, error) {
	if err := l.trava.Lock(); err != nil {
		return nil, fmt.Errorf("erro ao obter lock do arquivo de contas: %w", err)
	}
	defer l.trava.Unlock()
	return l.carregar()
}

func (l *Loja) carregar() (*Documento, error) {
	doc := &Documento{
		MercadoLivre: map[string]*Conta{},
		extras:       map[string]json.RawMessage{},
	}

	b, err := os.ReadFile(filepath.Join(l.dir, arquivoContas))
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de contas: %w", err)
	}

	bruto := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &bruto); err != nil {
		return nil, fmt.Errorf("arquivo de contas corrompido: %w", err)
	}

	for chave, valor := range bruto {
		switch chave {
		case chaveMercadoLivre:
			if err := json.Unmarshal(valor, &doc.MercadoLivre); err != nil {
				return nil, fmt.Errorf("seção %s inválida: %w", chave, err)
			}
		case chaveAnymarket:
			if err := json.Unmarshal(valor, &doc.Anymarket); err != nil {
				return nil, fmt.Errorf("seção %s inválida: %w", chave, err)
			}
		case chaveIntelipost:
			if err := json.Unmarshal(valor, &doc.Intelipost); err != nil {
				return nil, fmt.Errorf("seção %s inválida: %w", chave, err)
			}
		default:
			doc.extras[chave] = valor
		}
	}
	return doc, nil
}

func (l *Loja) gravar(doc *Documento) error {
	bruto := map[string]json.RawMessage{}
	for chave, valor := range doc.extras {
		bruto[chave] = valor
	}

	var err error
	if bruto[chaveMercadoLivre], err = json.Marshal(doc.MercadoLivre); err != nil {
		return err
	}
	if bruto[chaveAnymarket], err = json.Marshal(doc.Anymarket); err != nil {
		return err
	}
	if bruto[chaveIntelipost], err = json.Marshal(doc.Intelipost); err != nil {
		return err
	}

	b, err := json.MarshalIndent(bruto, "", "  ")
	if err != nil {
		return err
	}

	caminho := filepath.Join(l.dir, arquivoContas)
	temp := caminho + ".tmp"
	if err := os.WriteFile(temp, b, 0o600); err != nil {
		return fmt.Errorf("erro ao gravar arquivo de contas: %w", err)
	}
	if err := os.Rename(temp, caminho); err != nil {
		os.Remove(temp)
		return fmt.Errorf("erro ao gravar arquivo de contas: %w", err)
	}
	return nil
}

type ponteiroAtual struct {
	CurrentAccountID string `json:"current_account_id"`
}

// ContaAtual lê o ponteiro de conta corrente; vazio quando nunca selecionada.
func (l *Loja) ContaAtual() (string, error) {
	b, err := os.ReadFile(filepath.Join(l.dir, arquivoAtual))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("erro ao ler conta atual: %w", err)
	}
	var p ponteiroAtual
	if err := json.Unmarshal(b, &p); err != nil {
		return "", fmt.Errorf("ponteiro de conta atual corrompido: %w", err)
	}
	return p.CurrentAccountID, nil
}

func (l *Loja) DefinirContaAtual(id string) error {
	b, err := json.MarshalIndent(ponteiroAtual{CurrentAccountID: id}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.dir, arquivoAtual), b, 0o600)
}
