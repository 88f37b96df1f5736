package models

import (
	"strconv"
	"strings"
)

var colorNames = map[string]string{
	"rojo":     "red",
	"azul":     "blue",
	"verde":    "green",
	"negro":    "black",
	"blanco":   "white",
	"gris":     "gray",
	"amarillo": "yellow",
	"naranja":  "orange",
	"morado":   "purple",
	"rosa":     "pink",
	"dorado":   "gold",
	"plata":    "silver",
}

// ColorName translates a Spanish color name to English. Unknown names are
// returned unchanged.
func ColorName(c string) string {
	if en, ok := colorNames[strings.ToLower(strings.TrimSpace(c))]; ok {
		return en
	}
	return c
}

// FormatAmount renders n with comma thousands separators and a "$" prefix.
func FormatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
