package signup

import (
	"net/url"
	"strings"
)

// PaymentLinks builds the pay-now redirect for a submitted signup.
type PaymentLinks struct {
	VenmoHandle  string
	PaypalHandle string
}

func (p PaymentLinks) URL(method string, amount float64, playerName string) string {
	note := encodeURIComponent("League Signup: " + playerName)
	if method == PaymentVenmo {
		return "https://venmo.com/" + p.VenmoHandle + "?txn=pay&amount=" + FormatAmount(amount) + "&note=" + note
	}
	return "https://paypal.me/" + p.PaypalHandle + "/" + FormatAmount(amount) + "?currencyCode=USD&note=" + note
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes like the browser function of the same name,
// which leaves !'()* alone and encodes spaces as %20.
func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
