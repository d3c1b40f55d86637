package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledscape/intake/pkg/config"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}

func TestTierPrice(t *testing.T) {
	tiers := []config.Tier{
		{MaxModules: 200, Price: 400_000},
		{MaxModules: 400, Price: 800_000},
		{Price: 1_500_000},
	}

	assert.Equal(t, 400_000, config.TierPrice(tiers, 1))
	assert.Equal(t, 400_000, config.TierPrice(tiers, 200))
	assert.Equal(t, 800_000, config.TierPrice(tiers, 201))
	assert.Equal(t, 1_500_000, config.TierPrice(tiers, 1000))
	assert.Equal(t, 0, config.TierPrice(nil, 10))
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.yaml")
	content := []byte("pricing:\n  module_unit_price: 90000\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90_000, cfg.Pricing.ModuleUnitPrice)
	// Untouched fields keep defaults.
	assert.Equal(t, config.Default().Pricing.VATRate, cfg.Pricing.VATRate)
	assert.NotEmpty(t, cfg.Vocabulary.ResetKeywords)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBrokenTiers(t *testing.T) {
	cfg := config.Default()
	cfg.Pricing.TransportTiers = []config.Tier{
		{MaxModules: 200, Price: 400_000},
		{MaxModules: 100, Price: 800_000}, // thresholds must increase
		{Price: 1_500_000},
	}
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Pricing.TransportTiers = []config.Tier{
		{MaxModules: 200, Price: 400_000}, // no open-ended top band
	}
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Pricing.TransportTiers = []config.Tier{
		{MaxModules: 200, Price: 800_000},
		{Price: 400_000}, // prices must not decrease
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownServiceLabel(t *testing.T) {
	cfg := config.Default()
	cfg.Vocabulary.ServiceLabels["lease"] = "leasing"
	assert.Error(t, cfg.Validate())
}
