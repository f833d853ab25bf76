package catalog

import "github.com/ellytic/onboard/internal/domain"

func bundle(id string, tier domain.BundleTier, v domain.Variant, price string) domain.Product {
	p := domain.Price{Display: "€" + price + " incl. VAT"}
	if v == domain.VariantCouple {
		p.Couple = price
	} else {
		p.Single = price
	}
	return domain.Product{
		ID:       domain.ProductID(id),
		Category: domain.CategoryTranslytic,
		Price:    p,
		Flags:    domain.Flags{Bundle: true},
		Role:     domain.RoleBase,
		Tier:     tier,
		Variant:  v,
	}
}

func fixtureProducts() []domain.Product {
	return []domain.Product{
		bundle("starter_single", domain.TierStarter, domain.VariantSingle, "299"),
		bundle("starter_couple", domain.TierStarter, domain.VariantCouple, "575"),
		bundle("full_single", domain.TierFull, domain.VariantSingle, "475"),
		bundle("full_couple", domain.TierFull, domain.VariantCouple, "925"),
		{
			ID:       "addon_bank_couple",
			Category: domain.CategoryTranslytic,
			Price:    domain.Price{Single: "175", Couple: "325", Display: "€175 (Single) / €325 (Couple)"},
			Flags:    domain.Flags{Addon: true},
			Role:     domain.RoleAddon,
			Variant:  domain.VariantCouple,
		},
		{
			ID:       "annual_e9_single",
			Category: domain.CategoryTaxlytic,
			Price:    domain.Price{Single: "24.90", Couple: "49.90", Family: "59.90", ExtraChild: "10", Display: "€24.90 (Single)"},
			Flags:    domain.Flags{Recurring: true, Standalone: true},
			Role:     domain.RoleRecurring,
			Variant:  domain.VariantSingle,
		},
		{
			ID:       "due_diligence",
			Category: domain.CategoryTaxlytic,
			Price:    domain.Price{Display: "Price on request (€)"},
			Flags:    domain.Flags{Standalone: true},
			Role:     domain.RoleStandalone,
		},
		{
			ID:                "e2e_purchase",
			Category:          domain.CategoryHomelytic,
			Price:             domain.Price{Display: "Price on request (€)"},
			Flags:             domain.Flags{Standalone: true},
			Role:              domain.RoleStandalone,
			SuitableAudiences: []domain.Audience{domain.AudienceHomeBuyers, domain.AudienceInvestors},
		},
		{
			ID:       StandaloneTranslation,
			Category: domain.CategoryTranslytic,
			Price:    domain.Price{Display: "€45 → €30 (1–10 docs volume)"},
			Flags:    domain.Flags{Standalone: true},
			Role:     domain.RoleStandalone,
		},
	}
}

func fixtureRecs() map[domain.Audience][]domain.ProductID {
	return map[domain.Audience][]domain.ProductID{
		domain.AudienceHomeBuyers:    {"starter_single", "full_single", "addon_bank_couple"},
		domain.AudienceDiasporaHeirs: {"annual_e9_single"},
		domain.AudienceExpats:        {"starter_single", "annual_e9_single"},
		domain.AudienceHomeOwners:    {"annual_e9_single"},
		domain.AudienceInvestors:     {"full_single", "annual_e9_single"},
		domain.AudienceProfessionals: {},
	}
}

func mustFixture(t interface {
	Helper()
	Fatalf(string, ...any)
}) *Catalog {
	t.Helper()
	c, err := New(fixtureProducts(), fixtureRecs())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
