package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/tui"
	logger "github.com/sirupsen/logrus"
)

// ToolKinds lists the tool kinds the quality aggregator understands.
var ToolKinds = []string{"style", "lint", "security", "types", "format", "tests"}

// ManifestFormats lists the supported remote manifest formats.
var ManifestFormats = []string{"json", "yaml", "toml", "raw", "regex"}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Theme", "Lint Tools").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a loaded configuration.
type Validator struct {
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate() []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateTheme()
	v.validateTools()
	v.validateRates()
	v.validateUpdate()
	v.validateChat()

	return v.validations
}

func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) fail(category, format string, args ...any) {
	v.addValidation(category, false, fmt.Sprintf(format, args...), false)
}

func (v *Validator) warn(category, format string, args ...any) {
	v.addValidation(category, false, fmt.Sprintf(format, args...), true)
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme == "" || tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", true, "theme is valid", false)
		return
	}
	v.fail("Theme", "unknown theme %q (available: %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", "))
}

func (v *Validator) validateTools() {
	seen := map[string]bool{}
	for i, tool := range v.cfg.Lint.Tools {
		label := tool.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		switch {
		case tool.Name == "":
			v.fail("Lint Tools", "tool %s: name is required", label)
		case seen[tool.Name]:
			v.fail("Lint Tools", "tool %s: duplicate name", label)
		}
		seen[tool.Name] = true

		if strings.TrimSpace(tool.Command) == "" {
			v.fail("Lint Tools", "tool %s: command is required", label)
		}
		if !slices.Contains(ToolKinds, tool.Kind) {
			v.fail("Lint Tools", "tool %s: unknown kind %q (expected one of %s)", label, tool.Kind, strings.Join(ToolKinds, ", "))
		}
		if tool.Findings != "" && tool.Findings != "exit" && tool.Findings != "output" {
			v.fail("Lint Tools", "tool %s: findings must be \"exit\" or \"output\", got %q", label, tool.Findings)
		}
		if tool.Timeout != "" {
			if d, err := time.ParseDuration(tool.Timeout); err != nil || d <= 0 {
				v.fail("Lint Tools", "tool %s: invalid timeout %q", label, tool.Timeout)
			}
		}
	}
	if len(v.cfg.Lint.Tools) == 0 {
		v.addValidation("Lint Tools", true, "using built-in tools", false)
	}
}

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

func (v *Validator) validateRates() {
	r := v.cfg.Rates
	v.checkURL("Rates", "rates.fiat_url", r.FiatURL)
	v.checkURL("Rates", "rates.crypto_url", r.CryptoURL)
	if !currencyCode.MatchString(r.Home) {
		v.fail("Rates", "rates.home must be a three-letter currency code, got %q", r.Home)
	}
	for _, c := range r.Currencies {
		if !currencyCode.MatchString(c) {
			v.fail("Rates", "rates.currencies: invalid code %q", c)
		}
	}
	if len(r.Coins) == 0 {
		v.warn("Rates", "rates.coins is empty, crypto prices will not be shown")
	}
}

func (v *Validator) validateUpdate() {
	u := v.cfg.Update
	v.checkURL("Update", "update.repo", u.Repo)
	v.checkURL("Update", "update.manifest.url", u.Manifest.URL)
	if !slices.Contains(ManifestFormats, u.Manifest.Format) {
		v.fail("Update", "update.manifest.format %q is not supported (expected one of %s)", u.Manifest.Format, strings.Join(ManifestFormats, ", "))
	}
	if u.Manifest.Format == "regex" {
		if u.Manifest.Pattern == "" {
			v.fail("Update", "update.manifest.pattern is required for the regex format")
		} else if _, err := regexp.Compile(u.Manifest.Pattern); err != nil {
			v.fail("Update", "update.manifest.pattern: %v", err)
		}
	}
	if len(u.Install) == 0 {
		v.fail("Update", "update.install must name a command")
	}
}

func (v *Validator) validateChat() {
	if len(v.cfg.Chat.Models) == 0 {
		v.fail("Chat", "chat.models must list at least one model")
	}
	if v.cfg.Chat.Timeout != "" {
		if d, err := time.ParseDuration(v.cfg.Chat.Timeout); err != nil || d <= 0 {
			v.fail("Chat", "invalid chat.timeout %q", v.cfg.Chat.Timeout)
		}
	}
	if v.cfg.Chat.APIKey != "" {
		v.warn("Chat", "chat.api_key is stored in the config file; prefer GEMINI_API_KEY")
	}
}

func (v *Validator) checkURL(category, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.fail(category, "%s is not a valid http(s) URL: %q", field, raw)
	}
}

// Validate checks the configuration, logs warnings and returns the
// joined errors, if any.
func (c *Config) Validate() error {
	var errs []error
	for _, r := range NewValidator(c).Validate() {
		switch {
		case r.Passed:
		case r.Warning:
			logger.WithField("category", r.Category).Warn(r.Message)
		default:
			errs = append(errs, fmt.Errorf("%s: %s", strings.ToLower(r.Category), r.Message))
		}
	}
	return errors.Join(errs...)
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
