package ports

import (
	"context"
	"time"
)

// FetchOptions ajusta uma busca de página
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
}

// Page é a resposta crua de um site
type Page struct {
	URL    string
	Status int
	HTML   string
}

// OK indica resposta 2xx
func (p *Page) OK() bool {
	return p.Status >= 200 && p.Status < 300
}

// PageFetcher busca o HTML de uma URL. Erros de rede são devolvidos como
// erro; respostas não-2xx voltam em Page.Status para o chamador decidir.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (*Page, error)
}
