package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

var (
	rgbPattern   = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	classPattern = regexp.MustCompile(`^-?[_a-zA-Z]+[_a-zA-Z0-9-]*$`)
)

// IsColorClass reports whether s is a CSS class identifier rather than a
// color value.
func IsColorClass(s string) bool {
	return classPattern.MatchString(s) && !strings.HasPrefix(s, "#")
}

// NormalizeColor converts a CSS color in rgb() or hex notation to the
// canonical "rgb(r, g, b)" form. It reports false for anything else.
func NormalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	var c colorful.Color
	switch {
	case strings.HasPrefix(s, "#"):
		parsed, err := colorful.Hex(s)
		if err != nil {
			return "", false
		}
		c = parsed
	default:
		m := rgbPattern.FindStringSubmatch(s)
		if m == nil {
			return "", false
		}
		var ch [3]float64
		for i := range ch {
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				return "", false
			}
			ch[i] = float64(v) / 255
		}
		c = colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), true
}

// CanonicalColor returns the form a text color value is stored in: the
// normalized rgb() string for style colors, the value itself for classes.
func CanonicalColor(s string) string {
	if n, ok := NormalizeColor(s); ok {
		return n
	}
	return s
}

// CountCharacters counts user-perceived characters (grapheme clusters).
func CountCharacters(text string) int {
	return uniseg.GraphemeClusterCount(text)
}
