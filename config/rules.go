package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ruleFile is the on-disk layout of the classification rule table.
type ruleFile struct {
	Rules valueobject.RuleTable `yaml:"rules"`
}

// LoadRuleTable reads the ordered rule table from a YAML file.
// A missing file yields the built-in table.
func LoadRuleTable(path string) (valueobject.RuleTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || path == "" {
		return valueobject.DefaultRuleTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rule table %q: %w", path, err)
	}
	return ParseRuleTable(data)
}

// ParseRuleTable decodes a YAML rule table and validates every entry.
func ParseRuleTable(data []byte) (valueobject.RuleTable, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domainerror.NewClassificationError(
			domainerror.ErrCodeInvalidRuleTable,
			"could not parse rule table",
			errors.Join(domainerror.ErrInvalidRuleTable, err),
		)
	}

	for i, rule := range file.Rules {
		if strings.TrimSpace(rule.Keyword) == "" || rule.Category == "" {
			return nil, domainerror.NewClassificationError(
				domainerror.ErrCodeInvalidRuleTable,
				fmt.Sprintf("rule %d needs a keyword and a category", i+1),
				domainerror.ErrInvalidRuleTable,
			)
		}
	}
	if len(file.Rules) == 0 {
		return valueobject.DefaultRuleTable(), nil
	}
	return file.Rules, nil
}

// LoadPricingTable applies the configured overrides to the default freight pricing.
func LoadPricingTable(cfg QuoteConfig) (valueobject.PricingTable, error) {
	table := valueobject.DefaultPricingTable()
	if cfg.WeightFactor != "" {
		factor, err := decimal.NewFromString(cfg.WeightFactor)
		if err != nil || factor.IsNegative() {
			return table, fmt.Errorf("invalid QUOTE_WEIGHT_FACTOR %q", cfg.WeightFactor)
		}
		table.WeightFactor = factor
	}
	if cfg.Minimum != "" {
		minimum, err := decimal.NewFromString(cfg.Minimum)
		if err != nil || minimum.IsNegative() {
			return table, fmt.Errorf("invalid QUOTE_MINIMUM %q", cfg.Minimum)
		}
		table.Minimum = minimum
	}
	return table, nil
}
