package httpapi

import (
	"net"
	"net/http"
	"strings"
)

const unknownCountry = "ZZ"

var (
	clientIPHeaders      = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}
	clientCountryHeaders = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

// requestClient is where a request came from, as reported by the edge
// proxy headers with the socket address as fallback.
type requestClient struct {
	IP      string
	Country string
}

func clientFromRequest(r *http.Request) requestClient {
	out := requestClient{Country: unknownCountry}
	for _, header := range clientIPHeaders {
		if ip := normalizeIP(r.Header.Get(header)); ip != "" {
			out.IP = ip
			break
		}
	}
	if out.IP == "" {
		out.IP = normalizeIP(r.RemoteAddr)
	}
	for _, header := range clientCountryHeaders {
		if code := normalizeCountry(r.Header.Get(header)); code != "" {
			out.Country = code
			break
		}
	}
	return out
}

// normalizeIP takes the first hop of a forwarded list and strips the port.
func normalizeIP(raw string) string {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}

func normalizeCountry(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}
