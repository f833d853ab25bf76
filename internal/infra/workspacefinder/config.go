package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
	"gopkg.in/yaml.v3"
)

// ConfigLoader reads onboard.yaml from a workspace root.
type ConfigLoader struct{}

func NewConfigLoader() *ConfigLoader { return &ConfigLoader{} }

var _ ports.ConfigLoader = (*ConfigLoader)(nil)

func (ConfigLoader) LoadConfig(root string) (domain.Config, error) { return LoadConfig(root) }

// LoadConfig loads onboard.yaml from the workspace root and applies defaults.
// A relative catalog path is resolved against the root.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	o := y.Onboard
	if c := strings.TrimSpace(o.Catalog); c != "" {
		if !filepath.IsAbs(c) {
			c = filepath.Join(root, c)
		}
		cfg.CatalogPath = c
	}
	if o.Routes.Checkout != "" {
		cfg.Routes.Checkout = o.Routes.Checkout
	}
	if o.Routes.ContactSales != "" {
		cfg.Routes.ContactSales = o.Routes.ContactSales
	}
	if o.Handoffs.Dir != "" {
		cfg.Handoffs.Dir = o.Handoffs.Dir
	}
	if o.Handoffs.Masking != nil {
		cfg.Handoffs.Masking = *o.Handoffs.Masking
	}
	if o.Handoffs.Index != nil {
		cfg.Handoffs.Index = *o.Handoffs.Index
	}
	cfg.Leads.SubmitURL = strings.TrimSpace(o.Leads.SubmitURL)
	if o.Leads.Timeout != "" {
		d, err := time.ParseDuration(o.Leads.Timeout)
		if err != nil || d <= 0 {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("field onboard.leads.timeout: invalid duration %q", o.Leads.Timeout),
			}
		}
		cfg.Leads.Timeout = d
	}

	return cfg, nil
}

type yamlConfig struct {
	Onboard struct {
		Catalog string `yaml:"catalog"`

		Routes struct {
			Checkout     string `yaml:"checkout"`
			ContactSales string `yaml:"contact_sales"`
		} `yaml:"routes"`

		Handoffs struct {
			Dir     string `yaml:"dir"`
			Masking *bool  `yaml:"masking"`
			Index   *bool  `yaml:"index"`
		} `yaml:"handoffs"`

		Leads struct {
			SubmitURL string `yaml:"submit_url"`
			Timeout   string `yaml:"timeout"`
		} `yaml:"leads"`
	} `yaml:"onboard"`
}
