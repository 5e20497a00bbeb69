package inventory

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix toma el número inicial del texto ("12 cajas" -> "12").
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxQuantityExponent fuera de este rango el valor no cabe en un float64.
const maxQuantityExponent = 400

// ParseQuantity convierte el texto ingresado en una cantidad de entrada/salida.
// Se usa el número inicial del texto; texto no numérico o fuera del rango de float64
// se convierte en cero y los valores negativos se recortan a cero. Nunca devuelve error.
func ParseQuantity(raw string) decimal.Decimal {
	match := numericPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return ClampQuantity(decimal.NewFromFloat(f))
}

// NormalizeQuantity acota una cantidad leída del almacén igual que ParseQuantity:
// negativos y valores fuera del rango de float64 quedan en cero.
func NormalizeQuantity(q decimal.Decimal) decimal.Decimal {
	if e := q.Exponent(); e > maxQuantityExponent || e < -maxQuantityExponent {
		return decimal.Zero
	}
	f, _ := q.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return ClampQuantity(decimal.NewFromFloat(f))
}

// ClampQuantity recorta a cero una cantidad negativa.
func ClampQuantity(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}
