// Package currency holds the static reference table of supported ISO
// currencies.  The platform never converts between currencies; the table
// is consulted by the pricing layer for display formatting only (symbol
// and number of decimal places).  Internal monetary arithmetic is done
// with decimals regardless of the display precision.
package currency

import "strings"

// Currency describes one entry in the reference table.
//
// Fields:
//  Code          – ISO 4217 code, e.g. "USD".
//  Symbol        – display symbol, e.g. "$".
//  Name          – human readable currency name.
//  DecimalPlaces – digits shown after the decimal point (0 for JPY-like
//                  currencies, 2 otherwise).
type Currency struct {
	Code          string `json:"code"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimal_places"`
}

// table lists every currency the platform accepts for facility pricing.
// Zero-decimal currencies follow ISO 4217 minor unit conventions.
var table = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2},
	{Code: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2},
	{Code: "GBP", Symbol: "£", Name: "British Pound", DecimalPlaces: 2},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", DecimalPlaces: 0},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won", DecimalPlaces: 0},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah", DecimalPlaces: 0},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong", DecimalPlaces: 0},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", DecimalPlaces: 2},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", DecimalPlaces: 2},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", DecimalPlaces: 2},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", DecimalPlaces: 2},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", DecimalPlaces: 2},
	{Code: "PKR", Symbol: "₨", Name: "Pakistani Rupee", DecimalPlaces: 2},
	{Code: "BDT", Symbol: "৳", Name: "Bangladeshi Taka", DecimalPlaces: 2},
	{Code: "LKR", Symbol: "₨", Name: "Sri Lankan Rupee", DecimalPlaces: 2},
	{Code: "NPR", Symbol: "₨", Name: "Nepalese Rupee", DecimalPlaces: 2},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht", DecimalPlaces: 2},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", DecimalPlaces: 2},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", DecimalPlaces: 2},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso", DecimalPlaces: 2},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", DecimalPlaces: 2},
	{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal", DecimalPlaces: 2},
	{Code: "QAR", Symbol: "﷼", Name: "Qatari Riyal", DecimalPlaces: 2},
	{Code: "KWD", Symbol: "د.ك", Name: "Kuwaiti Dinar", DecimalPlaces: 2},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira", DecimalPlaces: 2},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble", DecimalPlaces: 2},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real", DecimalPlaces: 2},
	{Code: "MXN", Symbol: "Mex$", Name: "Mexican Peso", DecimalPlaces: 2},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand", DecimalPlaces: 2},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", DecimalPlaces: 2},
	{Code: "EGP", Symbol: "E£", Name: "Egyptian Pound", DecimalPlaces: 2},
	{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira", DecimalPlaces: 2},
}

// index maps upper-case codes to table entries for O(1) lookup.
var index = func() map[string]Currency {
	m := make(map[string]Currency, len(table))
	for _, c := range table {
		m[c.Code] = c
	}
	return m
}()

// Lookup returns the currency for the given code (case-insensitive).  The
// boolean is false when the code is not in the reference table.
func Lookup(code string) (Currency, bool) {
	c, ok := index[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// LookupOrDefault returns the currency for code, falling back to USD when
// the code is unknown.  Pricing endpoints use this so an unrecognised
// code degrades to a sane display format rather than an error.
func LookupOrDefault(code string) Currency {
	if c, ok := Lookup(code); ok {
		return c
	}
	return index["USD"]
}

// All returns the full reference table in declaration order.  Used by the
// public catalog endpoint.
func All() []Currency {
	out := make([]Currency, len(table))
	copy(out, table)
	return out
}
