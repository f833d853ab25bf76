package domain

import "time"

// Config represents the onboard configuration loaded from onboard.yaml.
type Config struct {
	CatalogPath string
	Routes      RoutesConfig
	Handoffs    HandoffsConfig
	Leads       LeadsConfig
}

type RoutesConfig struct {
	Checkout     string
	ContactSales string
}

type HandoffsConfig struct {
	Dir     string
	Masking bool
	Index   bool
}

type LeadsConfig struct {
	SubmitURL string
	Timeout   time.Duration
}

// DefaultConfig provides sane defaults if onboard.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Routes: RoutesConfig{
			Checkout:     "/checkout",
			ContactSales: "/contact-sales",
		},
		Handoffs: HandoffsConfig{
			Dir:     "handoffs",
			Masking: true,
			Index:   true,
		},
		Leads: LeadsConfig{
			Timeout: 10 * time.Second,
		},
	}
}
