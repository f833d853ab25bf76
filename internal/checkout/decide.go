// Package checkout decides where a user goes once the product selection is made.
package checkout

import (
	"strings"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
)

// TranslationBundle is the checkout bundle value for a standalone translation order.
const TranslationBundle = "translation"

// MissingSelection is surfaced when nothing has been chosen.
const MissingSelection = "select at least one product"

// Decide routes a selection. The order of the checks is significant: an empty
// selection blocks, professionals always go to sales, an unknown id or a
// second core bundle blocks, any product without a self-service path sends
// the whole selection to sales, and only then is the direct checkout used.
func Decide(a domain.WizardAnswers, cat *catalog.Catalog) domain.Decision {
	professional := a.Audience == domain.AudienceProfessionals

	if (professional && len(a.Professionals.Interests) == 0) ||
		(!professional && len(a.SelectedProducts) == 0) {
		return blocked(MissingSelection)
	}

	if professional {
		tags := make([]string, 0, len(a.Professionals.Interests))
		for _, i := range a.Professionals.Interests {
			tags = append(tags, string(i))
		}
		return domain.Decision{
			Kind: domain.DecisionContactSales,
			Context: map[string]string{
				domain.CtxAudience:  string(a.Audience),
				domain.CtxInterests: strings.Join(tags, ","),
			},
		}
	}

	var (
		bundle      string
		translation bool
		addons      []string
		needsSales  bool
	)
	for _, id := range a.SelectedProducts {
		p, ok := cat.ProductByID(id)
		if !ok {
			return blocked("unknown product " + string(id))
		}
		if p.Flags.Bundle && bundle != "" && bundle != string(id) {
			return blocked("choose one core bundle, not both " + bundle + " and " + string(id))
		}
		if p.Fulfillment == domain.FulfillContactSales {
			needsSales = true
			if p.Flags.Bundle {
				bundle = string(p.ID)
			}
			continue
		}
		switch {
		case p.Flags.Bundle:
			bundle = string(p.ID)
		case p.ID == catalog.StandaloneTranslation:
			translation = true
		default:
			addons = append(addons, string(p.ID))
		}
	}

	if needsSales {
		ids := make([]string, 0, len(a.SelectedProducts))
		for _, id := range a.SelectedProducts {
			ids = append(ids, string(id))
		}
		return domain.Decision{
			Kind: domain.DecisionContactSales,
			Context: map[string]string{
				domain.CtxAudience: string(a.Audience),
				domain.CtxProducts: strings.Join(ids, ","),
				domain.CtxSource:   domain.SourceWizardProducts,
			},
		}
	}

	ctx := map[string]string{}
	switch {
	case bundle != "":
		ctx[domain.CtxBundle] = bundle
		if translation {
			addons = append(addons, string(catalog.StandaloneTranslation))
		}
	case translation:
		ctx[domain.CtxBundle] = TranslationBundle
	}
	if len(addons) > 0 {
		ctx[domain.CtxAddons] = strings.Join(addons, ",")
	}
	return domain.Decision{Kind: domain.DecisionDirectCheckout, Context: ctx}
}

// Final routes the user out of the review step. Unmet review requirements block
// the hand-off and are reported as missing items.
func Final(a domain.WizardAnswers, cat *catalog.Catalog, missing []string) domain.Decision {
	d := Decide(a, cat)
	if d.Kind != domain.DecisionDirectCheckout || len(missing) == 0 {
		return d
	}
	return domain.Decision{
		Kind:    domain.DecisionBlocked,
		Context: map[string]string{},
		Missing: append([]string(nil), missing...),
	}
}

func blocked(missing ...string) domain.Decision {
	return domain.Decision{
		Kind:    domain.DecisionBlocked,
		Context: map[string]string{},
		Missing: missing,
	}
}
