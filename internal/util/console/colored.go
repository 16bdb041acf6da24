// Package console renders chat components for a terminal.
package console

import (
	"strings"

	"github.com/gookit/color"
	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec/legacy"
)

// Ansi renders c with terminal colors.
func Ansi(c component.Component) (string, error) {
	b := new(strings.Builder)
	if err := (&legacy.Legacy{}).Marshal(b, c); err != nil {
		return "", err
	}
	return AnsiFromLegacy(b.String()), nil
}

// Plain renders c without any formatting.
func Plain(c component.Component) (string, error) {
	b := new(strings.Builder)
	if err := (&legacy.Legacy{}).Marshal(b, c); err != nil {
		return "", err
	}
	return StripLegacy(b.String()), nil
}

// AnsiFromLegacy converts legacy formatting codes in s to ansi escapes.
// Formats stack until reset by a color code or §r.
func AnsiFromLegacy(s string) string {
	return convertLegacy(s, true)
}

// StripLegacy removes legacy formatting codes from s.
func StripLegacy(s string) string {
	return convertLegacy(s, false)
}

func convertLegacy(s string, ansi bool) string {
	b := new(strings.Builder)
	var (
		code   bool
		styles []color.Color
	)
	for _, r := range s {
		if r == legacy.DefaultChar && !code {
			code = true
			continue
		}
		if code {
			code = false
			c, ok := codes[r]
			switch {
			case r == 'r' || !ok:
				styles = nil
			case c < color.FgBlack:
				styles = append(styles, c) // format
			default:
				styles = []color.Color{c}
			}
			continue
		}
		if !ansi || len(styles) == 0 {
			b.WriteRune(r)
			continue
		}
		b.WriteString(color.RenderCode(color.Colors2code(styles...), string(r)))
	}
	return b.String()
}

var codes = map[rune]color.Color{
	'0': color.Black,
	'1': color.Blue,
	'2': color.Green,
	'3': color.Cyan,
	'4': color.Red,
	'5': color.Magenta,
	'6': color.Yellow,
	'7': color.White,
	'8': color.Gray,
	'9': color.LightCyan,
	'a': color.LightGreen,
	'b': color.LightBlue,
	'c': color.LightRed,
	'd': color.LightMagenta,
	'e': color.LightYellow,
	'f': color.LightWhite,
	'k': color.OpConcealed,
	'l': color.OpBold,
	'm': color.OpStrikethrough,
	'n': color.OpUnderscore,
	'o': color.OpItalic,
}
