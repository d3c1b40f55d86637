/*
Package quote implements the pricing engine.

Compute is a pure function from a validated LED spec list and a price table to
an itemized, VAT-inclusive breakdown. All monetary values are integer won;
the only rounding happens once, when VAT is applied to the subtotal.
*/
package quote

import (
	"fmt"
	"math"

	"github.com/ledscape/intake/pkg/config"
	"github.com/ledscape/intake/pkg/domain"
)

// Compute builds a quote for one or more LED walls.
//
// It returns domain.ErrNoSpecs for an empty list and domain.ErrInconsistentSpec
// if any spec does not decompose into whole 500mm modules; the latter means a
// validator let bad data through and is fatal to the request, never rounded
// away.
func Compute(specs []domain.LEDSpec, pricing config.Pricing) (domain.Quote, error) {
	if len(specs) == 0 {
		return domain.Quote{}, domain.ErrNoSpecs
	}

	var q domain.Quote
	for i, spec := range specs {
		if !spec.Exact() {
			return domain.Quote{}, fmt.Errorf("spec %d (%dx%d): %w",
				i+1, spec.WidthMM, spec.HeightMM, domain.ErrInconsistentSpec)
		}
		q.TotalModules += spec.ModuleCount()
		q.AreaSQM += spec.AreaSQM()

		if spec.NeedOperator {
			q.Operator += spec.OperatorDays * pricing.OperatorDailyRate
		}
	}

	q.PowerKW = float64(q.TotalModules) * pricing.PowerKWPerModule

	q.Modules = q.TotalModules * pricing.ModuleUnitPrice
	// Stage height deliberately does not enter the structure price; only
	// the wall footprint does.
	q.Structure = int(math.Round(q.AreaSQM * float64(pricing.StructureRateSQM)))
	q.Controller = config.TierPrice(pricing.ControllerTiers, q.TotalModules)
	q.Power = config.TierPrice(pricing.PowerTiers, q.TotalModules)
	q.Installation = config.TierPrice(pricing.InstallationTiers, q.TotalModules)
	q.Transport = config.TierPrice(pricing.TransportTiers, q.TotalModules)

	q.Subtotal = q.Modules + q.Structure + q.Controller + q.Power +
		q.Installation + q.Operator + q.Transport

	// VAT once on the subtotal, not per line item, so rounding never drifts.
	q.VAT = int(math.Round(float64(q.Subtotal) * pricing.VATRate))
	q.Total = q.Subtotal + q.VAT

	return q, nil
}
