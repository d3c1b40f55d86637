package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledscape/intake/pkg/config"
	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/quote"
)

func pricing() config.Pricing {
	return config.Default().Pricing
}

func TestCompute_SingleWall(t *testing.T) {
	specs := []domain.LEDSpec{{WidthMM: 6000, HeightMM: 3000}}

	q, err := quote.Compute(specs, pricing())
	require.NoError(t, err)

	assert.Equal(t, 72, q.TotalModules)
	assert.InDelta(t, 18.0, q.AreaSQM, 1e-9)
	assert.Equal(t, 72*pricing().ModuleUnitPrice, q.Modules)
	assert.Equal(t, 18*pricing().StructureRateSQM, q.Structure)
	assert.Equal(t, config.TierPrice(pricing().ControllerTiers, 72), q.Controller)
	assert.Equal(t, 0, q.Operator)

	wantSubtotal := q.Modules + q.Structure + q.Controller + q.Power + q.Installation + q.Transport
	assert.Equal(t, wantSubtotal, q.Subtotal)
	assert.Equal(t, q.Subtotal+q.VAT, q.Total)
}

func TestCompute_MultipleWallsTransportTier(t *testing.T) {
	// 40 + 12 + 4 = 56 modules, well inside the <=200 flat transport band.
	specs := []domain.LEDSpec{
		{WidthMM: 4000, HeightMM: 2500},
		{WidthMM: 2000, HeightMM: 1500},
		{WidthMM: 1000, HeightMM: 1000},
	}

	q, err := quote.Compute(specs, pricing())
	require.NoError(t, err)

	assert.Equal(t, 56, q.TotalModules)
	assert.Equal(t, config.TierPrice(pricing().TransportTiers, 200), q.Transport,
		"56 modules should price at the <=200 flat tier")
}

func TestCompute_OperatorCost(t *testing.T) {
	specs := []domain.LEDSpec{
		{WidthMM: 2000, HeightMM: 1500, NeedOperator: true, OperatorDays: 3},
		{WidthMM: 1000, HeightMM: 1000},
	}

	q, err := quote.Compute(specs, pricing())
	require.NoError(t, err)
	assert.Equal(t, 3*pricing().OperatorDailyRate, q.Operator)
}

func TestCompute_StageHeightDoesNotAffectPrice(t *testing.T) {
	flat := []domain.LEDSpec{{WidthMM: 4000, HeightMM: 2500}}
	raised := []domain.LEDSpec{{WidthMM: 4000, HeightMM: 2500, StageHeight: 1500}}

	a, err := quote.Compute(flat, pricing())
	require.NoError(t, err)
	b, err := quote.Compute(raised, pricing())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompute_Deterministic(t *testing.T) {
	specs := []domain.LEDSpec{
		{WidthMM: 4000, HeightMM: 2500, NeedOperator: true, OperatorDays: 2},
		{WidthMM: 2000, HeightMM: 1500},
	}

	a, err := quote.Compute(specs, pricing())
	require.NoError(t, err)
	b, err := quote.Compute(specs, pricing())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompute_MonotonicInModuleCount(t *testing.T) {
	prev := -1
	for modules := 1; modules <= 500; modules++ {
		specs := []domain.LEDSpec{{WidthMM: 500, HeightMM: modules * 500}}
		q, err := quote.Compute(specs, pricing())
		require.NoError(t, err)
		require.Equal(t, modules, q.TotalModules)
		require.GreaterOrEqual(t, q.Total, prev, "total decreased at %d modules", modules)
		prev = q.Total
	}
}

func TestCompute_EmptySpecs(t *testing.T) {
	_, err := quote.Compute(nil, pricing())
	assert.ErrorIs(t, err, domain.ErrNoSpecs)
}

func TestCompute_InconsistentSpecIsFatal(t *testing.T) {
	specs := []domain.LEDSpec{{WidthMM: 6100, HeightMM: 3000}}
	_, err := quote.Compute(specs, pricing())
	assert.ErrorIs(t, err, domain.ErrInconsistentSpec)
}

func TestCompute_VATAppliedOnceToSubtotal(t *testing.T) {
	specs := []domain.LEDSpec{{WidthMM: 3500, HeightMM: 2000}}
	p := pricing()

	q, err := quote.Compute(specs, p)
	require.NoError(t, err)

	assert.Equal(t, q.Modules+q.Structure+q.Controller+q.Power+q.Installation+q.Operator+q.Transport, q.Subtotal)
	assert.Equal(t, q.Subtotal+q.VAT, q.Total)
}

func TestWon(t *testing.T) {
	assert.Equal(t, "0", quote.Won(0))
	assert.Equal(t, "999", quote.Won(999))
	assert.Equal(t, "1,000", quote.Won(1000))
	assert.Equal(t, "12,345,678", quote.Won(12345678))
	assert.Equal(t, "-1,234", quote.Won(-1234))
}

func TestRenderText(t *testing.T) {
	specs := []domain.LEDSpec{{WidthMM: 6000, HeightMM: 3000, NeedOperator: true, OperatorDays: 2}}
	q, err := quote.Compute(specs, pricing())
	require.NoError(t, err)

	text := quote.RenderText(specs, q)
	assert.Contains(t, text, "6000x3000mm (72 modules)")
	assert.Contains(t, text, "operator 2 day(s)")
	assert.Contains(t, text, "VAT included")
	assert.Contains(t, text, quote.Won(q.Total))
}
