package valueobjects

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrInvalidWebsite = errors.New("invalid website url")
)

// WebsiteURL é um value object para URLs http(s) absolutas
type WebsiteURL struct {
	value string
	host  string
}

// NewWebsiteURL normaliza e valida uma URL. Entradas sem esquema
// ("example.com") recebem https://.
func NewWebsiteURL(raw string) (WebsiteURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return WebsiteURL{}, ErrInvalidWebsite
	}

	if !strings.HasPrefix(strings.ToLower(raw), "http://") && !strings.HasPrefix(strings.ToLower(raw), "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return WebsiteURL{}, ErrInvalidWebsite
	}

	host := u.Hostname()
	if host == "" || strings.ContainsAny(host, " \t") {
		return WebsiteURL{}, ErrInvalidWebsite
	}

	return WebsiteURL{value: u.String(), host: strings.ToLower(host)}, nil
}

// String retorna a URL normalizada
func (w WebsiteURL) String() string {
	return w.value
}

// Host retorna o hostname em minúsculas, sem porta
func (w WebsiteURL) Host() string {
	return w.host
}

// DisplayName deriva um nome legível a partir do host
// ("https://www.Nykaa.com/about" -> "nykaa.com")
func (w WebsiteURL) DisplayName() string {
	return strings.TrimPrefix(w.host, "www.")
}

// IsZero indica se o value object não foi inicializado
func (w WebsiteURL) IsZero() bool {
	return w.value == ""
}
