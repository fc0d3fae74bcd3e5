// Package config assembles runtime configuration from environment variables
// and an optional YAML policy file. Environment covers deployment wiring
// (addresses, credentials); the policy file covers jurisdictional rules
// (minimum age, restricted groups) so compliance staff can edit it without
// touching the deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRestrictedGroups is the built-in restriction list, used when the
// policy file does not override it.
var DefaultRestrictedGroups = []string{
	"Tobacco",
	"chewing/pouches",
	"Cigarette",
	"Cigar/Cigarillo",
	"Smoking Accessories",
	"Vapor + Accessories",
	"Alcohol",
	"Tall Cans Beer/Seltzer",
	"6 Pack Beer/Seltzer",
	"Case Beer/Seltzer",
	"Wine",
}

// DefaultMinimumAge applies when the policy file does not set one.
const DefaultMinimumAge = 21

// Server captures deployment-level configuration.
type Server struct {
	Addr            string
	Environment     string
	ErplyBaseURL    string
	ErplyClientCode string
	ErplySessionKey string
	PollInterval    time.Duration
	OverridePINHash string
	PolicyFile      string
}

// Policy captures the jurisdictional verification rules.
type Policy struct {
	MinimumAge       int      `yaml:"minimum_age"`
	RestrictedGroups []string `yaml:"restricted_groups"`
	// Birth-year plausibility window for heuristic credential parsing,
	// expressed as years back from the current date.
	MaxYearsBack int `yaml:"max_years_back"`
	MinYearsBack int `yaml:"min_years_back"`
}

// DefaultPolicy returns the built-in policy matching the shipped defaults.
func DefaultPolicy() Policy {
	return Policy{
		MinimumAge:       DefaultMinimumAge,
		RestrictedGroups: DefaultRestrictedGroups,
		MaxYearsBack:     100,
		MinYearsBack:     10,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("AGEGATE_ADDR")
	if addr == "" {
		addr = "127.0.0.1:7411"
	}

	environment := os.Getenv("AGEGATE_ENV")
	if environment == "" {
		environment = "development"
	}

	pollInterval := 2 * time.Second
	if raw := os.Getenv("AGEGATE_POLL_INTERVAL"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			pollInterval = duration
		}
	}

	return Server{
		Addr:            addr,
		Environment:     environment,
		ErplyBaseURL:    os.Getenv("AGEGATE_ERPLY_BASE_URL"),
		ErplyClientCode: os.Getenv("AGEGATE_ERPLY_CLIENT_CODE"),
		ErplySessionKey: os.Getenv("AGEGATE_ERPLY_SESSION_KEY"),
		PollInterval:    pollInterval,
		OverridePINHash: os.Getenv("AGEGATE_OVERRIDE_PIN_HASH"),
		PolicyFile:      os.Getenv("AGEGATE_POLICY_FILE"),
	}
}

// LoadPolicy reads the policy file at path, overlaying it on the defaults.
// An empty path returns the defaults. Fields left unset in the file keep
// their default values.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file %s: %w", path, err)
	}

	var overlay Policy
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	if overlay.MinimumAge > 0 {
		policy.MinimumAge = overlay.MinimumAge
	}
	if len(overlay.RestrictedGroups) > 0 {
		policy.RestrictedGroups = overlay.RestrictedGroups
	}
	if overlay.MaxYearsBack > 0 {
		policy.MaxYearsBack = overlay.MaxYearsBack
	}
	if overlay.MinYearsBack > 0 {
		policy.MinYearsBack = overlay.MinYearsBack
	}

	if policy.MinYearsBack >= policy.MaxYearsBack {
		return Policy{}, fmt.Errorf("policy file %s: min_years_back must be below max_years_back", path)
	}

	return policy, nil
}
