package stripekit

// Currency is a three-letter ISO 4217 code, lowercase as Stripe sends it.
// Amounts are always integer minor units of their currency.
type Currency string

const (
	CurrencyAED Currency = "aed"
	CurrencyAUD Currency = "aud"
	CurrencyBGN Currency = "bgn"
	CurrencyBRL Currency = "brl"
	CurrencyCAD Currency = "cad"
	CurrencyCHF Currency = "chf"
	CurrencyCNY Currency = "cny"
	CurrencyCZK Currency = "czk"
	CurrencyDKK Currency = "dkk"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyHKD Currency = "hkd"
	CurrencyHUF Currency = "huf"
	CurrencyIDR Currency = "idr"
	CurrencyILS Currency = "ils"
	CurrencyINR Currency = "inr"
	CurrencyJPY Currency = "jpy"
	CurrencyKRW Currency = "krw"
	CurrencyMXN Currency = "mxn"
	CurrencyMYR Currency = "myr"
	CurrencyNOK Currency = "nok"
	CurrencyNZD Currency = "nzd"
	CurrencyPHP Currency = "php"
	CurrencyPLN Currency = "pln"
	CurrencyRON Currency = "ron"
	CurrencySEK Currency = "sek"
	CurrencySGD Currency = "sgd"
	CurrencyTHB Currency = "thb"
	CurrencyTRY Currency = "try"
	CurrencyUSD Currency = "usd"
	CurrencyVND Currency = "vnd"
	CurrencyZAR Currency = "zar"
)
