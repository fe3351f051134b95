package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/handlers/middleware"
)

const fallbackLanguage = "en"

// T traduz key no idioma da requisição.
// Uso: dto.T(c, "error.upstream.detail", map[string]interface{}{"Source": "llm"})
// Sem o middleware de i18n a própria chave é devolvida.
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service, ok := middleware.Translator(c)
	if !ok {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang, ok := middleware.Language(c); ok && lang != "" {
		return lang
	}
	return fallbackLanguage
}
