package models

import "strings"

type CurrencyInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var Currencies = []CurrencyInfo{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	{Code: "ZAR", Name: "South African Rand", Symbol: "R"},
	{Code: "DKK", Name: "Danish Krone", Symbol: "kr"},
	{Code: "PLN", Name: "Polish Zloty", Symbol: "zł"},
	{Code: "TWD", Name: "New Taiwan Dollar", Symbol: "NT$"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp"},
	{Code: "HUF", Name: "Hungarian Forint", Symbol: "Ft"},
	{Code: "CZK", Name: "Czech Koruna", Symbol: "Kč"},
	{Code: "ILS", Name: "Israeli New Shekel", Symbol: "₪"},
}

var currencyByCode = func() map[string]CurrencyInfo {
	m := make(map[string]CurrencyInfo, len(Currencies))
	for _, c := range Currencies {
		m[c.Code] = c
	}
	return m
}()

// LookupCurrency is case-insensitive.
func LookupCurrency(code string) (CurrencyInfo, bool) {
	c, ok := currencyByCode[strings.ToUpper(code)]
	return c, ok
}
