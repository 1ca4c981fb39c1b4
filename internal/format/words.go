package format

import (
	"fmt"
	"math"
	"strings"
)

// AmountInWords spells a monetary amount out in Portuguese, the way
// contract pay clauses require: 1250.40 ->
// "UM MIL DUZENTOS E CINQUENTA REAIS E QUARENTA CENTAVOS".
func AmountInWords(v float64) string {
	if v < 0 {
		v = -v
	}

	cents := int64(math.Round(v * 100))
	reais := cents / 100
	cents = cents % 100

	var parts []string
	switch {
	case reais == 0 && cents == 0:
		return "ZERO REAL"
	case reais == 1:
		parts = append(parts, "UM REAL")
	case reais > 1:
		// Whole millions take the partitive: "dois milhões DE reais".
		currency := " reais"
		if reais%1_000_000 == 0 {
			currency = " de reais"
		}
		parts = append(parts, numberInWords(reais)+currency)
	}

	switch {
	case cents == 1:
		parts = append(parts, "UM CENTAVO")
	case cents > 1:
		parts = append(parts, numberInWords(cents)+" CENTAVOS")
	}

	return strings.ToUpper(strings.Join(parts, " E "))
}

var (
	units    = [...]string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	teens    = [...]string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	tens     = [...]string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	hundreds = [...]string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// numberInWords handles values up to the millions, which covers any
// amount a contract pay field can carry.
func numberInWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n >= 1_000_000_000 {
		return fmt.Sprintf("%d", n)
	}

	var parts []string

	millions := n / 1_000_000
	n = n % 1_000_000
	if millions == 1 {
		parts = append(parts, "um milhão")
	} else if millions > 1 {
		parts = append(parts, hundredsInWords(millions)+" milhões")
	}

	thousands := n / 1000
	n = n % 1000
	if thousands == 1 {
		parts = append(parts, "um mil")
	} else if thousands > 1 {
		parts = append(parts, hundredsInWords(thousands)+" mil")
	}

	if n > 0 {
		parts = append(parts, hundredsInWords(n))
	}

	return strings.Join(parts, " ")
}

func hundredsInWords(n int64) string {
	if n == 100 {
		return "cem"
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest >= 10 && rest < 20:
		parts = append(parts, teens[rest-10])
	case rest >= 20:
		parts = append(parts, tens[rest/10])
		if u := rest % 10; u > 0 {
			parts = append(parts, units[u])
		}
	case rest > 0:
		parts = append(parts, units[rest])
	}

	return strings.Join(parts, " e ")
}
