// Package pretty renders a damaged sequence and its repair as an ASCII
// alignment block.
package pretty

import (
	"fmt"
	"strings"
	"unicode"
)

// Options control the ASCII rendering.
type Options struct {
	// Residues per row. If <=0, use default (60).
	Width int

	// Glyphs on the match row.
	ExactGlyph   string // same symbol, default "|"
	PartialGlyph string // same base, case restored, default "¦"
	ChangedGlyph string // substituted or filled, default " "
}

// DefaultOptions is the look used by the pretty output format.
var DefaultOptions = Options{
	Width:        60,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	ChangedGlyph: " ",
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.ExactGlyph == "" {
		o.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if o.PartialGlyph == "" {
		o.PartialGlyph = DefaultOptions.PartialGlyph
	}
	if o.ChangedGlyph == "" {
		o.ChangedGlyph = DefaultOptions.ChangedGlyph
	}
	return o
}

// matchLine marks each aligned position of in against out.
func matchLine(in, out []rune, opt Options) string {
	n := min(len(in), len(out))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		switch {
		case in[i] == out[i]:
			b.WriteString(opt.ExactGlyph)
		case unicode.ToUpper(in[i]) == out[i]:
			b.WriteString(opt.PartialGlyph)
		default:
			b.WriteString(opt.ChangedGlyph)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render prints the block for one repair: a summary line, then rows of
// input, match bars and repaired sequence with 1-based offsets, then a blank line.
func Render(name, input, repaired string, opt Options) string {
	opt = opt.withDefaults()
	in, out := []rune(input), []rune(repaired)

	changed := 0
	for i := 0; i < min(len(in), len(out)); i++ {
		if in[i] != out[i] {
			changed++
		}
	}
	if name == "" {
		name = "sequence"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s  length=%d  changed=%d\n", linePrefix, name, len(out), changed)

	total := max(len(in), len(out))
	numW := len(fmt.Sprint(total))
	pad := strings.Repeat(" ", 4+numW+1)
	for off := 0; off < total; off += opt.Width {
		end := off + opt.Width
		inRow := in[min(off, len(in)):min(end, len(in))]
		outRow := out[min(off, len(out)):min(end, len(out))]
		fmt.Fprintf(&b, "%sin  %*d %s\n", linePrefix, numW, off+1, string(inRow))
		fmt.Fprintf(&b, "%s%s%s\n", linePrefix, pad, matchLine(inRow, outRow, opt))
		fmt.Fprintf(&b, "%sout %*d %s\n", linePrefix, numW, off+1, string(outRow))
	}
	b.WriteByte('\n')
	return b.String()
}
