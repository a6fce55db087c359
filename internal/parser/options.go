package parser

// Default separators, matching a fresh vault.
const (
	DefaultSingleLineSeparator         = "::"
	DefaultSingleLineReversedSeparator = ":::"
	DefaultMultiLineSeparator          = "?"
	DefaultMultiLineReversedSeparator  = "??"
	DefaultFileSeparator               = "%%file%%"
	DefaultHeadingSeparator            = "%%heading%%"
)

// Options configures the separators and cloze conversions used by Parse.
// An empty separator never matches.
type Options struct {
	SingleLineSeparator         string
	SingleLineReversedSeparator string
	MultiLineSeparator          string
	MultiLineReversedSeparator  string
	FileSeparator               string
	HeadingSeparator            string

	ConvertHighlightsToClozes    bool
	ConvertBoldTextToClozes      bool
	ConvertCurlyBracketsToClozes bool
}

// DefaultOptions returns the separators a fresh vault uses.
func DefaultOptions() Options {
	return Options{
		SingleLineSeparator:          DefaultSingleLineSeparator,
		SingleLineReversedSeparator:  DefaultSingleLineReversedSeparator,
		MultiLineSeparator:           DefaultMultiLineSeparator,
		MultiLineReversedSeparator:   DefaultMultiLineReversedSeparator,
		FileSeparator:                DefaultFileSeparator,
		HeadingSeparator:             DefaultHeadingSeparator,
		ConvertHighlightsToClozes:    true,
		ConvertBoldTextToClozes:      true,
		ConvertCurlyBracketsToClozes: false,
	}
}
