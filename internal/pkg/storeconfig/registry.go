package storeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrStoreNotFound = errors.New("store not found")

// Store holds the per-tenant credentials and settings for one shop alias.
type Store struct {
	Alias        string                       `yaml:"alias"`
	Origins      []string                     `yaml:"origins"`
	Commerce     CommerceSettings             `yaml:"commerce"`
	Subscription SubscriptionPlatformSettings `yaml:"subscription"`
}

type CommerceSettings struct {
	Domain      string `yaml:"domain"`
	APIVersion  string `yaml:"api_version"`
	AccessToken string `yaml:"access_token"`
	// Variant of the $1 virtual product used to encode the compensation amount as a quantity.
	CompensationVariantID string `yaml:"compensation_variant_id"`
	// Metafield on the one-time product that points at its subscription counterpart.
	LinkField string `yaml:"link_field"`
}

type SubscriptionPlatformSettings struct {
	Endpoint string `yaml:"endpoint"`
	APIToken string `yaml:"api_token"`
}

type file struct {
	Stores []Store `yaml:"stores"`
}

type Registry struct {
	byAlias  map[string]Store
	byOrigin map[string]string
	aliases  []string
}

func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stores file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse stores file: %w", err)
	}
	return NewRegistry(f.Stores...)
}

func NewRegistry(stores ...Store) (*Registry, error) {
	r := &Registry{
		byAlias:  make(map[string]Store, len(stores)),
		byOrigin: make(map[string]string),
	}
	for _, s := range stores {
		if s.Alias == "" {
			return nil, errors.New("store alias is required")
		}
		if _, dup := r.byAlias[s.Alias]; dup {
			return nil, fmt.Errorf("duplicate store alias %q", s.Alias)
		}
		if s.Commerce.CompensationVariantID == "" {
			return nil, fmt.Errorf("store %q: compensation_variant_id is required", s.Alias)
		}
		if s.Commerce.APIVersion == "" {
			s.Commerce.APIVersion = "2024-10"
		}
		if s.Commerce.LinkField == "" {
			s.Commerce.LinkField = "custom.subscription_product"
		}
		r.byAlias[s.Alias] = s
		r.aliases = append(r.aliases, s.Alias)
		for _, o := range s.Origins {
			r.byOrigin[normalizeOrigin(o)] = s.Alias
		}
	}
	return r, nil
}

func (r *Registry) ByAlias(alias string) (Store, error) {
	s, ok := r.byAlias[alias]
	if !ok {
		return Store{}, fmt.Errorf("%w: %s", ErrStoreNotFound, alias)
	}
	return s, nil
}

func (r *Registry) ByOrigin(origin string) (Store, error) {
	alias, ok := r.byOrigin[normalizeOrigin(origin)]
	if !ok {
		return Store{}, fmt.Errorf("%w: origin %s", ErrStoreNotFound, origin)
	}
	return r.byAlias[alias], nil
}

func (r *Registry) Aliases() []string {
	out := make([]string, len(r.aliases))
	copy(out, r.aliases)
	return out
}

// Origins lists every configured origin, for the CORS allow-list.
func (r *Registry) Origins() []string {
	var out []string
	for _, alias := range r.aliases {
		out = append(out, r.byAlias[alias].Origins...)
	}
	return out
}

func normalizeOrigin(o string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
}
