package config

import "github.com/phrazzld/scry-notes/internal/parser"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Parser ParserConfig `mapstructure:"parser" validate:"required"`
	Batch  BatchConfig  `mapstructure:"batch"  validate:"required"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// ParserConfig holds the separators and cloze conversions used to find cards
// in notes. Separators other than the single-line ones may be empty, which
// disables that card kind.
type ParserConfig struct {
	SingleLineSeparator         string `mapstructure:"single_line_separator"          validate:"required"`
	SingleLineReversedSeparator string `mapstructure:"single_line_reversed_separator" validate:"required,nefield=SingleLineSeparator"`
	MultiLineSeparator          string `mapstructure:"multi_line_separator"`
	MultiLineReversedSeparator  string `mapstructure:"multi_line_reversed_separator"`
	FileSeparator               string `mapstructure:"file_separator"`
	HeadingSeparator            string `mapstructure:"heading_separator"`

	ConvertHighlightsToClozes    bool `mapstructure:"convert_highlights_to_clozes"`
	ConvertBoldTextToClozes      bool `mapstructure:"convert_bold_text_to_clozes"`
	ConvertCurlyBracketsToClozes bool `mapstructure:"convert_curly_brackets_to_clozes"`
}

// BatchConfig controls extraction over many notes.
type BatchConfig struct {
	Workers   int      `mapstructure:"workers"    validate:"gte=1,lte=64"`
	QueueSize int      `mapstructure:"queue_size" validate:"gte=1"`
	Tags      []string `mapstructure:"tags"       validate:"dive,required"`
}

// Options converts the loaded parser settings into scanner options.
func (c ParserConfig) Options() parser.Options {
	return parser.Options{
		SingleLineSeparator:          c.SingleLineSeparator,
		SingleLineReversedSeparator:  c.SingleLineReversedSeparator,
		MultiLineSeparator:           c.MultiLineSeparator,
		MultiLineReversedSeparator:   c.MultiLineReversedSeparator,
		FileSeparator:                c.FileSeparator,
		HeadingSeparator:             c.HeadingSeparator,
		ConvertHighlightsToClozes:    c.ConvertHighlightsToClozes,
		ConvertBoldTextToClozes:      c.ConvertBoldTextToClozes,
		ConvertCurlyBracketsToClozes: c.ConvertCurlyBracketsToClozes,
	}
}
