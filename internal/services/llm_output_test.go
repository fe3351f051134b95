package services

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/errors"
)

var _ = Describe("saída do gerador", func() {
	DescribeTable("firstBalanced",
		func(text string, want string, found bool) {
			got, ok := firstBalanced(text, '{', '}')
			Expect(ok).To(Equal(found))
			Expect(got).To(Equal(want))
		},
		Entry("objeto puro", `{"a":1}`, `{"a":1}`, true),
		Entry("com texto ao redor", "Sure!\n```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`, true),
		Entry("chave dentro de string", `{"a":"} not the end"}`, `{"a":"} not the end"}`, true),
		Entry("aspas escapadas", `{"a":"say \"}\""} trailing`, `{"a":"say \"}\""}`, true),
		Entry("dois objetos", `{"a":1} {"b":2}`, `{"a":1}`, true),
		Entry("sem objeto", "no json here", "", false),
		Entry("não fechado", `{"a":1`, "", false),
	)

	It("decodifica o primeiro array", func() {
		var items []string
		Expect(decodeArray(`Here: ["a", "b"] done`, &items)).To(Succeed())
		Expect(items).To(Equal([]string{"a", "b"}))
	})

	It("trata JSON inválido como falha do gateway", func() {
		var v map[string]any
		err := decodeObject(`{"a": nope}`, &v)
		Expect(err).To(MatchError(errors.ErrUpstream))
	})

	It("deduplica palavras-chave sem diferenciar caixa", func() {
		Expect(cleanKeywords([]string{" JSON-LD ", "json-ld", "", "rich   results"})).
			To(Equal([]string{"JSON-LD", "rich results"}))
	})
})
