package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"depsort/internal/format"
	"depsort/internal/match"
	"depsort/internal/sorter"
)

// FileNames are the sidecar config files looked up in the working directory,
// in order of preference.
var FileNames = []string{"tomlfmt.toml", ".tomlfmt.toml"}

// Config is the single explicit configuration of a run.
type Config struct {
	TableOrder  []string
	Grouped     bool
	CRLF        *bool // nil: keep the convention of each input
	NoFormat    bool
	CheckFormat bool

	CaseInsensitive bool
	TieBreak        match.TieBreak
	SplitKinds      bool

	Format format.Options

	// File is the sidecar file that was read, empty when none.
	File string
}

// fileConfig is the on-disk shape of tomlfmt.toml.
type fileConfig struct {
	TableOrder             []string `mapstructure:"table_order"`
	Grouped                bool     `mapstructure:"grouped"`
	NoFormat               bool     `mapstructure:"no_format"`
	CheckFormat            bool     `mapstructure:"check_format"`
	CaseInsensitive        bool     `mapstructure:"case_insensitive"`
	TieBreak               string   `mapstructure:"tie_break"`
	SplitKinds             bool     `mapstructure:"split_kinds"`
	IndentCount            int      `mapstructure:"indent_count"`
	SpaceAroundEq          bool     `mapstructure:"space_around_eq"`
	CompactArrays          bool     `mapstructure:"compact_arrays"`
	CompactInlineTables    bool     `mapstructure:"compact_inline_tables"`
	TrailingNewline        bool     `mapstructure:"trailing_newline"`
	AllowedBlankLines      int      `mapstructure:"allowed_blank_lines"`
	AlwaysTrailingComma    bool     `mapstructure:"always_trailing_comma"`
	MultilineTrailingComma bool     `mapstructure:"multiline_trailing_comma"`
	MaxArrayLineLen        int      `mapstructure:"max_array_line_len"`
}

// Default returns the configuration used without a sidecar file or flags.
func Default() Config {
	return Config{
		TableOrder: append([]string(nil), sorter.DefaultTableOrder...),
		TieBreak:   match.TieOriginal,
		Format:     format.DefaultOptions(),
	}
}

// flagKeys binds command-line flags to config keys.
var flagKeys = map[string]string{
	"order":            "table_order",
	"grouped":          "grouped",
	"no-format":        "no_format",
	"check-format":     "check_format",
	"case-insensitive": "case_insensitive",
	"tie-break":        "tie_break",
	"split-kinds":      "split_kinds",
}

// Load reads the sidecar file in dir, if any, and applies flags that were
// set explicitly. Precedence: flag > file > default. flags may be nil.
func Load(dir string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	cfg := Default()
	path, err := findFile(dir)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &Error{File: path, Message: err.Error()}
		}
		cfg.File = path
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, &Error{File: path, Message: err.Error()}
	}
	if err := cfg.apply(fc); err != nil {
		if path != "" && !flagChanged(flags, "tie-break") {
			err.File = path
		}
		return Config{}, err
	}

	switch {
	case flagChanged(flags, "crlf"):
		on, err := flags.GetBool("crlf")
		if err != nil {
			return Config{}, err
		}
		cfg.CRLF = &on
	case v.InConfig("crlf"):
		on := v.GetBool("crlf")
		cfg.CRLF = &on
	}
	cfg.Format.CRLF = cfg.CRLF
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("table_order", d.TableOrder)
	v.SetDefault("grouped", d.Grouped)
	v.SetDefault("no_format", d.NoFormat)
	v.SetDefault("check_format", d.CheckFormat)
	v.SetDefault("case_insensitive", d.CaseInsensitive)
	v.SetDefault("tie_break", d.TieBreak.String())
	v.SetDefault("split_kinds", d.SplitKinds)
	v.SetDefault("indent_count", d.Format.IndentCount)
	v.SetDefault("space_around_eq", d.Format.SpaceAroundEq)
	v.SetDefault("compact_arrays", d.Format.CompactArrays)
	v.SetDefault("compact_inline_tables", d.Format.CompactInlineTables)
	v.SetDefault("trailing_newline", d.Format.TrailingNewline)
	v.SetDefault("allowed_blank_lines", d.Format.AllowedBlankLines)
	v.SetDefault("always_trailing_comma", d.Format.AlwaysTrailingComma)
	v.SetDefault("multiline_trailing_comma", d.Format.MultilineTrailingComma)
	v.SetDefault("max_array_line_len", d.Format.MaxArrayLineLen)
}

func (c *Config) apply(fc fileConfig) *Error {
	c.TableOrder = splitList(fc.TableOrder)
	c.Grouped = fc.Grouped
	c.NoFormat = fc.NoFormat
	c.CheckFormat = fc.CheckFormat
	c.CaseInsensitive = fc.CaseInsensitive
	c.SplitKinds = fc.SplitKinds

	tb, ok := match.ParseTieBreak(fc.TieBreak)
	if !ok {
		return &Error{Field: "tie_break", Message: fmt.Sprintf("unknown value %q (want original or case-sensitive)", fc.TieBreak)}
	}
	c.TieBreak = tb

	if fc.IndentCount < 0 {
		return &Error{Field: "indent_count", Message: "must not be negative"}
	}
	if fc.AllowedBlankLines < 0 {
		return &Error{Field: "allowed_blank_lines", Message: "must not be negative"}
	}
	c.Format = format.Options{
		IndentCount:            fc.IndentCount,
		SpaceAroundEq:          fc.SpaceAroundEq,
		CompactArrays:          fc.CompactArrays,
		CompactInlineTables:    fc.CompactInlineTables,
		TrailingNewline:        fc.TrailingNewline,
		AllowedBlankLines:      fc.AllowedBlankLines,
		AlwaysTrailingComma:    fc.AlwaysTrailingComma,
		MultilineTrailingComma: fc.MultilineTrailingComma,
		MaxArrayLineLen:        fc.MaxArrayLineLen,
	}
	return nil
}

// splitList accepts both ["a", "b"] and a single "a,b" item.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func findFile(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", nil
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	return flags != nil && flags.Lookup(name) != nil && flags.Changed(name)
}

// Matcher builds the Cargo matcher described by the config.
func (c Config) Matcher() match.Matcher {
	return match.Cargo{
		Lexical: match.Lexical{
			CaseInsensitive: c.CaseInsensitive,
			TieBreak:        c.TieBreak,
		},
		SplitByKind: c.SplitKinds,
	}
}

// SortOptions returns the sorter settings.
func (c Config) SortOptions() sorter.Options {
	return sorter.Options{Grouped: c.Grouped, TableOrder: c.TableOrder}
}

// FormatOptions returns the formatter settings with the resolved CRLF policy.
func (c Config) FormatOptions() format.Options {
	opt := c.Format
	opt.CRLF = c.CRLF
	return opt
}

// FormatEnabled reports whether formatting runs at all.
func (c Config) FormatEnabled() bool {
	return !c.NoFormat || c.CheckFormat
}

// Error is an invalid configuration value.
type Error struct {
	File    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("config error")
	if e.File != "" {
		b.WriteString(" in " + e.File)
	}
	if e.Field != "" {
		b.WriteString(" in field '" + e.Field + "'")
	}
	b.WriteString(": " + e.Message)
	return b.String()
}
