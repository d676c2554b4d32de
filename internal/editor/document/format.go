package document

import "fmt"

// Format is a bitmask of inline text marks.
type Format uint16

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
	FormatHighlight
	FormatLowercase
	FormatUppercase
	FormatCapitalize
)

var formatNames = map[string]Format{
	"bold":          FormatBold,
	"italic":        FormatItalic,
	"strikethrough": FormatStrikethrough,
	"underline":     FormatUnderline,
	"code":          FormatCode,
	"subscript":     FormatSubscript,
	"superscript":   FormatSuperscript,
	"highlight":     FormatHighlight,
	"lowercase":     FormatLowercase,
	"uppercase":     FormatUppercase,
	"capitalize":    FormatCapitalize,
}

// ParseFormat maps a mark name such as "bold" to its Format bit.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown text format %q", name)
	}
	return f, nil
}

// Has reports whether every bit of m is set.
func (f Format) Has(m Format) bool { return f&m == m && m != 0 }

// Toggle flips the bits of m. Subscript and superscript are mutually
// exclusive, as are the three case transforms.
func (f Format) Toggle(m Format) Format {
	next := f ^ m
	if next.Has(m) {
		switch m {
		case FormatSubscript:
			next &^= FormatSuperscript
		case FormatSuperscript:
			next &^= FormatSubscript
		case FormatLowercase:
			next &^= FormatUppercase | FormatCapitalize
		case FormatUppercase:
			next &^= FormatLowercase | FormatCapitalize
		case FormatCapitalize:
			next &^= FormatLowercase | FormatUppercase
		}
	}
	return next
}
