package merchant

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrInvalidMerchant = errors.New("Invalid merchant ID")

type Config struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Currency  string `yaml:"currency"`
	MaxAmount int64  `yaml:"maxAmount"`
}

// LimitError reports an amount above a merchant's ceiling.
type LimitError struct {
	Merchant Config
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("Amount exceeds maximum limit of %d %s for %s",
		e.Merchant.MaxAmount, e.Merchant.Currency, e.Merchant.Name)
}

// Registry is a read-only lookup of merchant configuration.
type Registry struct {
	configs map[string]Config
}

func NewRegistry(configs ...Config) *Registry {
	r := &Registry{configs: make(map[string]Config, len(configs))}
	for _, c := range configs {
		r.configs[c.ID] = c
	}
	return r
}

func Defaults() []Config {
	return []Config{
		{ID: "MERCHANT_001", Name: "Banco Estado", Currency: "CLP", MaxAmount: 1_000_000},
		{ID: "MERCHANT_002", Name: "Banco Santander", Currency: "CLP", MaxAmount: 2_000_000},
		{ID: "MERCHANT_003", Name: "Banco de Chile", Currency: "CLP", MaxAmount: 1_500_000},
		{ID: "MERCHANT_004", Name: "Banco BCI", Currency: "CLP", MaxAmount: 1_800_000},
		{ID: "MERCHANT_005", Name: "Banco Itaú", Currency: "CLP", MaxAmount: 2_500_000},
	}
}

func DefaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

// Load reads a YAML list of merchants.
func Load(r io.Reader) (*Registry, error) {
	var configs []Config
	if err := yaml.NewDecoder(r).Decode(&configs); err != nil {
		return nil, fmt.Errorf("decode merchants: %w", err)
	}
	for i, c := range configs {
		if c.ID == "" {
			return nil, fmt.Errorf("merchant at position %d has no id", i)
		}
		if c.MaxAmount <= 0 {
			return nil, fmt.Errorf("merchant %s: maxAmount must be positive", c.ID)
		}
	}
	return NewRegistry(configs...), nil
}

func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func (r *Registry) IsValid(id string) bool {
	_, ok := r.configs[id]
	return ok
}

func (r *Registry) ConfigFor(id string) (Config, bool) {
	c, ok := r.configs[id]
	return c, ok
}

// ValidateAmount returns ErrInvalidMerchant for an unknown id and a
// *LimitError when amount is above the merchant's ceiling.
func (r *Registry) ValidateAmount(id string, amount int64) error {
	c, ok := r.configs[id]
	if !ok {
		return ErrInvalidMerchant
	}
	if amount > c.MaxAmount {
		return &LimitError{Merchant: c}
	}
	return nil
}

// IDs returns the registered merchant ids in lexical order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
