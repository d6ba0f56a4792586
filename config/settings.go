// Package config provides configuration structures for the ATS scanner.
// It defines matcher settings, server options, document storage access and logging.
package config

import (
	"strconv"
	"strings"
)

// MatcherSettings controls how resumes are compared with job descriptions.
//
// Stopwords replaces the built-in English list when non-empty; ExtraStopwords
// is always added on top of whichever list is in effect. The thresholds are
// pointers so that an explicit 0 survives ApplyDefaults.
type MatcherSettings struct {
	Stopwords             []string `mapstructure:"stopwords" json:"stopwords"`                             // Replacement stopword list (empty = built-in list)
	ExtraStopwords        []string `mapstructure:"extra_stopwords" json:"extra_stopwords"`                 // Additional stopwords, e.g. company names
	MinTermLength         int      `mapstructure:"min_term_length" json:"min_term_length"`                 // Shortest vectorizer term in runes (e.g., 2)
	FoldDiacritics        bool     `mapstructure:"fold_diacritics" json:"fold_diacritics"`                 // Strip accents before tokenizing ("résumé" -> "resume")
	StrongMatchThreshold  *float64 `mapstructure:"strong_match_threshold" json:"strong_match_threshold"`   // Percentage at or above which a match is strong
	PartialMatchThreshold *float64 `mapstructure:"partial_match_threshold" json:"partial_match_threshold"` // Percentage at or above which a match is partial
	DisplayLimit          int      `mapstructure:"display_limit" json:"display_limit"`                     // Missing keywords shown by the API and CLI
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Port         string `mapstructure:"port" json:"port"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" json:"max_body_bytes"` // Request body limit, uploads included
	Mode         string `mapstructure:"mode" json:"mode"`                     // gin mode: "debug", "release" or "test"
}

// StorageSettings configures access to s3:// document sources.
// Endpoint is only needed for S3 compatible stores such as R2 or MinIO.
type StorageSettings struct {
	Region          string `mapstructure:"region" json:"region"`
	Endpoint        string `mapstructure:"endpoint" json:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id" json:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"-"`
	UsePathStyle    bool   `mapstructure:"use_path_style" json:"use_path_style"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// Settings is the complete application configuration.
type Settings struct {
	Matcher MatcherSettings `mapstructure:"matcher" json:"matcher"`
	Server  ServerSettings  `mapstructure:"server" json:"server"`
	Storage StorageSettings `mapstructure:"storage" json:"storage"`
	Log     LogSettings     `mapstructure:"log" json:"log"`
}

const (
	defaultStrongMatchThreshold  = 75.0
	defaultPartialMatchThreshold = 50.0
)

// Threshold returns a pointer to v for the MatcherSettings threshold fields.
func Threshold(v float64) *float64 {
	return &v
}

// Strong returns the strong match threshold, or the default when unset.
func (m MatcherSettings) Strong() float64 {
	if m.StrongMatchThreshold == nil {
		return defaultStrongMatchThreshold
	}
	return *m.StrongMatchThreshold
}

// Partial returns the partial match threshold, or the default when unset.
func (m MatcherSettings) Partial() float64 {
	if m.PartialMatchThreshold == nil {
		return defaultPartialMatchThreshold
	}
	return *m.PartialMatchThreshold
}

// Default returns settings with every default applied.
func Default() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}

// Validate checks the settings and returns a description of every problem found.
func (settings *Settings) Validate() []string {
	var problems []string

	m := settings.Matcher
	problems = append(problems, checkDuplicates("matcher.stopwords", m.Stopwords)...)
	problems = append(problems, checkDuplicates("matcher.extra_stopwords", m.ExtraStopwords)...)
	problems = append(problems, checkBlank("matcher.stopwords", m.Stopwords)...)
	problems = append(problems, checkBlank("matcher.extra_stopwords", m.ExtraStopwords)...)

	if m.MinTermLength < 1 {
		problems = append(problems, "matcher.min_term_length must be at least 1")
	}
	strong, partial := m.Strong(), m.Partial()
	if strong < 0 || strong > 100 {
		problems = append(problems, "matcher.strong_match_threshold must be between 0 and 100")
	}
	if partial < 0 || partial > 100 {
		problems = append(problems, "matcher.partial_match_threshold must be between 0 and 100")
	}
	if partial > strong {
		problems = append(problems, "matcher.partial_match_threshold cannot exceed matcher.strong_match_threshold")
	}
	if m.DisplayLimit < 0 {
		problems = append(problems, "matcher.display_limit cannot be negative")
	}

	if strings.TrimSpace(settings.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	} else if p, err := strconv.Atoi(settings.Server.Port); err != nil || p < 1 || p > 65535 {
		problems = append(problems, "Invalid server.port '"+settings.Server.Port+"' (must be 1-65535)")
	}
	if settings.Server.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be positive")
	}
	switch settings.Server.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, "Invalid server.mode '"+settings.Server.Mode+"' (must be 'debug', 'release' or 'test')")
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		key := strings.ToLower(value)
		if seen[key] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[key] = true
	}

	return errors
}

func checkBlank(fieldName string, values []string) []string {
	var errors []string
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			errors = append(errors, "Empty or whitespace-only value found in "+fieldName)
		}
	}
	return errors
}

// ApplyDefaults applies default values to the settings
func (settings *Settings) ApplyDefaults() {
	m := &settings.Matcher
	if m.MinTermLength == 0 {
		m.MinTermLength = 2
	}
	if m.StrongMatchThreshold == nil {
		m.StrongMatchThreshold = Threshold(defaultStrongMatchThreshold)
	}
	if m.PartialMatchThreshold == nil {
		m.PartialMatchThreshold = Threshold(defaultPartialMatchThreshold)
	}
	if m.DisplayLimit == 0 {
		m.DisplayLimit = 15
	}

	// Initialize empty slices if nil to keep JSON output stable
	if m.Stopwords == nil {
		m.Stopwords = []string{}
	}
	if m.ExtraStopwords == nil {
		m.ExtraStopwords = []string{}
	}

	if settings.Server.Port == "" {
		settings.Server.Port = "8080"
	}
	if settings.Server.MaxBodyBytes == 0 {
		settings.Server.MaxBodyBytes = 10 << 20 // 10MB
	}
	if settings.Server.Mode == "" {
		settings.Server.Mode = "release"
	}

	if settings.Storage.Region == "" {
		settings.Storage.Region = "us-east-1"
	}
}
