// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package formatting

import (
	"math"
	"strconv"
)

var compactUnits = []string{"", "K", "M", "B", "T"}

// CompactNumber renders [n] in short compact notation: 1234 -> "1.2K",
// 12345 -> "12K", 1500000 -> "1.5M". Values below 100 of their unit keep
// two significant digits, larger ones are rounded to an integer.
func CompactNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	unit := 0
	for n >= 1000 && unit < len(compactUnits)-1 {
		n /= 1000
		unit++
	}
	v := roundCompact(n)
	if v >= 1000 && unit < len(compactUnits)-1 {
		v = roundCompact(v / 1000)
		unit++
	}
	if v == 0 {
		sign = ""
	}
	return sign + strconv.FormatFloat(v, 'f', -1, 64) + compactUnits[unit]
}

// FormatFloat prints [n] with the shortest representation that round trips.
func FormatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func roundCompact(x float64) float64 {
	if x == 0 || x >= 100 {
		return math.Round(x)
	}
	digits := int(math.Floor(math.Log10(x))) + 1
	decimals := 2 - digits
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
