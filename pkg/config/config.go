/*
Package config holds the read-only configuration surface of the intake
assistant: the price table the quote engine consumes and the keyword
vocabularies the conversation router matches against.

Both are loaded once at process start. Broken configuration fails loudly at
load time; it never surfaces mid-conversation.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier is one band of a tiered cost component. The band applies while the
// total module count is at most MaxModules; a zero MaxModules marks the
// open-ended top band.
type Tier struct {
	MaxModules int `yaml:"max_modules"`
	Price      int `yaml:"price"`
}

// Pricing is the fixed price table, in won.
type Pricing struct {
	ModuleUnitPrice   int     `yaml:"module_unit_price"`
	StructureRateSQM  int     `yaml:"structure_rate_per_sqm"`
	OperatorDailyRate int     `yaml:"operator_daily_rate"`
	VATRate           float64 `yaml:"vat_rate"`

	// PowerKWPerModule converts module count to the displayed power
	// requirement; the power line item itself uses PowerTiers.
	PowerKWPerModule float64 `yaml:"power_kw_per_module"`

	ControllerTiers   []Tier `yaml:"controller_tiers"`
	PowerTiers        []Tier `yaml:"power_tiers"`
	InstallationTiers []Tier `yaml:"installation_tiers"`
	TransportTiers    []Tier `yaml:"transport_tiers"`
}

// TierPrice resolves a tiered cost for the given total module count.
func TierPrice(tiers []Tier, totalModules int) int {
	for _, t := range tiers {
		if t.MaxModules > 0 && totalModules <= t.MaxModules {
			return t.Price
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1].Price
	}
	return 0
}

// Vocabulary maps user phrasing to the router's fixed intents and canonical
// field values. Matching is case-insensitive substring-or-exact.
type Vocabulary struct {
	ResetKeywords   []string `yaml:"reset_keywords"`
	ModifyKeywords  []string `yaml:"modify_keywords"`
	BackKeywords    []string `yaml:"back_keywords"`
	ConfirmKeywords []string `yaml:"confirm_keywords"`
	DeclineKeywords []string `yaml:"decline_keywords"`

	// ServiceLabels maps button labels to canonical service types
	// (install, rental, membership).
	ServiceLabels map[string]string `yaml:"service_labels"`
}

// Config is the full configuration surface.
type Config struct {
	Pricing    Pricing    `yaml:"pricing"`
	Vocabulary Vocabulary `yaml:"vocabulary"`
}

// Default returns the compiled-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Pricing: Pricing{
			ModuleUnitPrice:   80_000,
			StructureRateSQM:  30_000,
			OperatorDailyRate: 250_000,
			VATRate:           0.1,
			PowerKWPerModule:  0.15,
			ControllerTiers: []Tier{
				{MaxModules: 50, Price: 300_000},
				{MaxModules: 150, Price: 600_000},
				{MaxModules: 300, Price: 1_200_000},
				{Price: 2_000_000},
			},
			PowerTiers: []Tier{
				{MaxModules: 50, Price: 200_000},
				{MaxModules: 150, Price: 450_000},
				{MaxModules: 300, Price: 800_000},
				{Price: 1_400_000},
			},
			InstallationTiers: []Tier{
				{MaxModules: 50, Price: 500_000},
				{MaxModules: 150, Price: 1_000_000},
				{MaxModules: 300, Price: 1_800_000},
				{Price: 3_000_000},
			},
			TransportTiers: []Tier{
				{MaxModules: 200, Price: 400_000},
				{MaxModules: 400, Price: 800_000},
				{Price: 1_500_000},
			},
		},
		Vocabulary: Vocabulary{
			ResetKeywords:   []string{"start over", "restart", "reset", "처음부터", "처음으로"},
			ModifyKeywords:  []string{"modify", "change my answer", "edit", "수정"},
			BackKeywords:    []string{"go back", "previous", "undo", "이전"},
			ConfirmKeywords: []string{"yes", "confirm", "ok", "네", "예", "확인"},
			DeclineKeywords: []string{"no", "not yet", "아니오", "아니요"},
			ServiceLabels: map[string]string{
				"led installation": "install",
				"installation":     "install",
				"설치":               "install",
				"led rental":       "rental",
				"rental":           "rental",
				"렌탈":               "rental",
				"membership":       "membership",
				"멤버십":              "membership",
			},
		},
	}
}

// Load reads a YAML configuration file. Fields omitted from the file keep
// their default values, so a partial override (say, pricing only) is valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants the quote engine and router rely on.
func (c *Config) Validate() error {
	p := c.Pricing
	if p.ModuleUnitPrice <= 0 {
		return fmt.Errorf("pricing: module_unit_price must be positive")
	}
	if p.StructureRateSQM <= 0 {
		return fmt.Errorf("pricing: structure_rate_per_sqm must be positive")
	}
	if p.OperatorDailyRate <= 0 {
		return fmt.Errorf("pricing: operator_daily_rate must be positive")
	}
	if p.VATRate < 0 || p.VATRate >= 1 {
		return fmt.Errorf("pricing: vat_rate must be in [0, 1)")
	}
	if p.PowerKWPerModule <= 0 {
		return fmt.Errorf("pricing: power_kw_per_module must be positive")
	}

	if err := validateTiers(p.ControllerTiers); err != nil {
		return fmt.Errorf("pricing: controller_tiers: %v", err)
	}
	if err := validateTiers(p.PowerTiers); err != nil {
		return fmt.Errorf("pricing: power_tiers: %v", err)
	}
	if err := validateTiers(p.InstallationTiers); err != nil {
		return fmt.Errorf("pricing: installation_tiers: %v", err)
	}
	if err := validateTiers(p.TransportTiers); err != nil {
		return fmt.Errorf("pricing: transport_tiers: %v", err)
	}

	v := c.Vocabulary
	if len(v.ResetKeywords) == 0 || len(v.ModifyKeywords) == 0 || len(v.ConfirmKeywords) == 0 {
		return fmt.Errorf("vocabulary: reset, modify and confirm keyword sets must not be empty")
	}
	if len(v.ServiceLabels) == 0 {
		return fmt.Errorf("vocabulary: service_labels must not be empty")
	}
	for label, svc := range v.ServiceLabels {
		switch svc {
		case "install", "rental", "membership":
		default:
			return fmt.Errorf("vocabulary: service_labels[%q] maps to unknown service %q", label, svc)
		}
	}
	return nil
}

// validateTiers enforces a closed top band, increasing thresholds and
// non-decreasing prices, which keeps quote totals monotonic in module count.
func validateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("tier table must not be empty")
	}
	prevMax, prevPrice := 0, 0
	for i, t := range tiers {
		if t.Price < prevPrice {
			return fmt.Errorf("tier %d price %d is below the previous band", i, t.Price)
		}
		if t.MaxModules == 0 {
			if i != len(tiers)-1 {
				return fmt.Errorf("tier %d: only the last band may be open-ended", i)
			}
			return nil
		}
		if t.MaxModules <= prevMax {
			return fmt.Errorf("tier %d max_modules %d does not increase", i, t.MaxModules)
		}
		prevMax, prevPrice = t.MaxModules, t.Price
	}
	return fmt.Errorf("last tier must be open-ended (max_modules omitted)")
}
