package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware escolhe o idioma das mensagens de erro e das respostas traduzidas.
// Não confundir com o idioma de conteúdo do usuário, que fica no perfil.
type I18nMiddleware struct {
	i18nService *i18n.Service
	supported   []string
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	supported := i18nService.GetSupportedLanguages()
	sort.Strings(supported)

	return &I18nMiddleware{
		i18nService: i18nService,
		supported:   supported,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header, respeitando os pesos q
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

type weightedLanguage struct {
	tag    string
	weight float64
}

// parseAcceptLanguage devolve o idioma suportado de maior peso
// Exemplo: "fr;q=0.4,pt;q=0.9,en;q=0.8" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if strings.TrimSpace(acceptLang) == "" {
		return ""
	}

	var candidates []weightedLanguage
	for _, part := range strings.Split(acceptLang, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}

		weight := 1.0
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(q, 64)
			if err != nil {
				continue
			}
			weight = parsed
		}
		if weight <= 0 {
			continue
		}

		candidates = append(candidates, weightedLanguage{tag: tag, weight: weight})
	}

	// empate mantém a ordem do header
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	for _, candidate := range candidates {
		if lang := m.resolve(candidate.tag); lang != "" {
			return lang
		}
	}
	return ""
}

// resolve casa uma tag com os locales disponíveis: exata (sem diferenciar
// maiúsculas), depois só o idioma base (es-MX -> es), depois uma variante
// regional do mesmo idioma (pt ou pt-PT -> pt-BR)
func (m *I18nMiddleware) resolve(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	for _, lang := range m.supported {
		if strings.EqualFold(lang, tag) {
			return lang
		}
	}

	base, _, _ := strings.Cut(tag, "-")
	for _, lang := range m.supported {
		if strings.EqualFold(lang, base) {
			return lang
		}
	}
	for _, lang := range m.supported {
		if langBase, _, _ := strings.Cut(lang, "-"); strings.EqualFold(langBase, base) {
			return lang
		}
	}
	return ""
}

// Language devolve o idioma escolhido para a requisição
func Language(c *gin.Context) (string, bool) {
	lang, ok := c.Get(LanguageContextKey)
	if !ok {
		return "", false
	}
	s, ok := lang.(string)
	return s, ok
}

// Translator devolve o serviço i18n guardado pelo middleware
func Translator(c *gin.Context) (*i18n.Service, bool) {
	service, ok := c.Get(I18nServiceContextKey)
	if !ok {
		return nil, false
	}
	s, ok := service.(*i18n.Service)
	return s, ok
}
