package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file (YAML, or JSON as a YAML subset)
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates an in-memory scenario file.
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if !config.Granularity.IsValid() {
		return &domain.ValidationError{Field: "granularity", Reason: fmt.Sprintf("unknown granularity %q", string(config.Granularity))}
	}
	if config.FiscalYearStart != 0 && (config.FiscalYearStart < 1900 || config.FiscalYearStart > 2200) {
		return &domain.ValidationError{Field: "fiscal_year_start", Reason: "must be a four-digit year"}
	}

	if len(config.Scenarios) == 0 {
		return &domain.ValidationError{Field: "scenarios", Reason: "no scenarios provided"}
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(config, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		key := strings.ToLower(strings.TrimSpace(scenario.Name))
		if seen[key] {
			return &domain.ValidationError{Field: "name", Reason: fmt.Sprintf("duplicate scenario name %q", scenario.Name)}
		}
		seen[key] = true
	}

	return nil
}

// validateScenario validates a single scenario against the calculator's preconditions
func (ip *InputParser) validateScenario(config *domain.Configuration, scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "scenario name is required"}
	}
	return scenario.CalculatorInputs(config).Validate()
}

// SaveConfiguration writes a configuration as YAML.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example scenario file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	caseMgmtReduced := decimal.NewFromInt(40)

	return &domain.Configuration{
		Granularity:     domain.GranularityYearly,
		FiscalYearStart: 2026,
		Scenarios: []domain.Scenario{
			{
				Name:              "Benefits Claims System",
				Description:       "COBOL claims processing rebuilt in one year; post-rebuild cost defaults to 10% of current",
				CurrentAnnualCost: decimal.NewFromInt(100),
				RebuildDuration:   1,
				AnalysisHorizon:   5,
			},
			{
				Name:              "Case Management Platform",
				Description:       "Larger system with a two-year rebuild and a 16% steady-state cost",
				CurrentAnnualCost: decimal.NewFromInt(250),
				ReducedAnnualCost: &caseMgmtReduced,
				RebuildDuration:   2,
				AnalysisHorizon:   8,
			},
			{
				Name:              "Grants Portal (monthly)",
				Description:       "Eighteen-month rebuild tracked month by month",
				CurrentAnnualCost: decimal.NewFromInt(60),
				RebuildDuration:   18,
				AnalysisHorizon:   60,
				Granularity:       domain.GranularityMonthly,
			},
		},
	}
}
