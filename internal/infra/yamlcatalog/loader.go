package yamlcatalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// DefaultYAML returns the embedded default catalog document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Default builds the embedded catalog.
func Default() (*catalog.Catalog, error) {
	return Parse("<embedded>", defaultCatalog)
}

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.CatalogLoader = (*Loader)(nil)

// LoadCatalog reads a catalog file. An empty path selects the embedded default.
func (l *Loader) LoadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlcatalog.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes a catalog document. Unknown keys are rejected.
func Parse(path string, b []byte) (*catalog.Catalog, error) {
	var yc yamlCatalog

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.OpError{
			Op:   "yamlcatalog.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	products, recs, err := mapAndValidate(path, yc)
	if err != nil {
		return nil, err
	}

	c, err := catalog.New(products, recs)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) && oe.Path == "" {
			oe.Path = path
		}
		return nil, err
	}
	return c, nil
}

type yamlCatalog struct {
	Products        []yamlProduct       `yaml:"products"`
	Recommendations map[string][]string `yaml:"recommendations"`
}

type yamlProduct struct {
	ID        string    `yaml:"id"`
	Category  string    `yaml:"category"`
	Title     string    `yaml:"title"`
	Subtitle  string    `yaml:"subtitle"`
	Price     yamlPrice `yaml:"price"`
	Flags     yamlFlags `yaml:"flags"`
	Role      string    `yaml:"role"`
	Tier      string    `yaml:"tier"`
	Variant   string    `yaml:"variant"`
	Audiences []string  `yaml:"audiences"`
}

type yamlPrice struct {
	Single     string `yaml:"single"`
	Couple     string `yaml:"couple"`
	Family     string `yaml:"family"`
	ExtraChild string `yaml:"extra_child"`
	Display    string `yaml:"display"`
}

type yamlFlags struct {
	Bundle       bool `yaml:"bundle"`
	Addon        bool `yaml:"addon"`
	Recurring    bool `yaml:"recurring"`
	Standalone   bool `yaml:"standalone"`
	ContactSales bool `yaml:"contact_sales"`
}

func mapAndValidate(path string, yc yamlCatalog) ([]domain.Product, map[domain.Audience][]domain.ProductID, error) {
	if len(yc.Products) == 0 {
		return nil, nil, invalidField(path, "products", "at least one product is required")
	}
	if yc.Recommendations == nil {
		return nil, nil, invalidField(path, "recommendations", "recommendation table is required")
	}

	products := make([]domain.Product, 0, len(yc.Products))
	for i, p := range yc.Products {
		fieldPrefix := fmt.Sprintf("products[%d]", i)

		if strings.TrimSpace(p.Title) == "" {
			return nil, nil, invalidField(path, fieldPrefix+".title", "title key is required")
		}

		audiences := make([]domain.Audience, 0, len(p.Audiences))
		for j, a := range p.Audiences {
			aud, ok := domain.ParseAudience(a)
			if !ok {
				return nil, nil, invalidField(path, fmt.Sprintf("%s.audiences[%d]", fieldPrefix, j), fmt.Sprintf("unknown audience %q", a))
			}
			audiences = append(audiences, aud)
		}

		products = append(products, domain.Product{
			ID:       domain.ProductID(strings.TrimSpace(p.ID)),
			Category: domain.Category(strings.ToLower(strings.TrimSpace(p.Category))),
			Text:     domain.TextRefs{Title: p.Title, Subtitle: p.Subtitle},
			Price: domain.Price{
				Single:     strings.TrimSpace(p.Price.Single),
				Couple:     strings.TrimSpace(p.Price.Couple),
				Family:     strings.TrimSpace(p.Price.Family),
				ExtraChild: strings.TrimSpace(p.Price.ExtraChild),
				Display:    p.Price.Display,
			},
			Flags: domain.Flags{
				Bundle:       p.Flags.Bundle,
				Addon:        p.Flags.Addon,
				Recurring:    p.Flags.Recurring,
				Standalone:   p.Flags.Standalone,
				ContactSales: p.Flags.ContactSales,
			},
			Role:              domain.Role(strings.TrimSpace(p.Role)),
			SuitableAudiences: audiences,
			Tier:              domain.BundleTier(strings.ToLower(strings.TrimSpace(p.Tier))),
			Variant:           domain.Variant(strings.ToLower(strings.TrimSpace(p.Variant))),
		})
	}

	recs := make(map[domain.Audience][]domain.ProductID, len(yc.Recommendations))
	for k, ids := range yc.Recommendations {
		aud, ok := domain.ParseAudience(k)
		if !ok {
			return nil, nil, invalidField(path, "recommendations."+k, "unknown audience")
		}
		list := make([]domain.ProductID, 0, len(ids))
		for _, id := range ids {
			list = append(list, domain.ProductID(strings.TrimSpace(id)))
		}
		recs[aud] = list
	}

	return products, recs, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlcatalog.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
