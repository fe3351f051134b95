package ports

import "context"

// GenerateOptions ajusta uma chamada ao gerador de texto
type GenerateOptions struct {
	// ForceJSON pede ao modelo um documento JSON sem texto ao redor
	ForceJSON bool
}

// TextGenerator é o gateway de texto generativo: prompt in, texto out.
// Não faz retry; erros são devolvidos ao chamador.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
