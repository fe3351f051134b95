package services

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

var _ = Describe("ContentAssistService", func() {
	var (
		topics    *fakeTopicRepo
		users     *fakeUserRepo
		generator *fakeGenerator
		notifier  *recordingNotifier
		service   *ContentAssistService
		owner     *entities.User
		topic     *entities.Topic
		ctx       context.Context
	)

	longDraft := "<p>" + strings.Repeat("Answer engines reward clear factual writing. ", 3) + "</p>"

	BeforeEach(func() {
		topics = &fakeTopicRepo{}
		users = newFakeUserRepo()
		generator = &fakeGenerator{}
		notifier = &recordingNotifier{}
		service = NewContentAssistService(topics, users, generator, notifier, logging.NewNopLogger())

		owner = users.add(&entities.User{Name: "Owner"})
		ctx = asUser(owner.ID)

		topic = entities.NewTopic(owner.ID, "Schema Markup for Answer Engines", "Schema", "", "")
		Expect(topics.Create(ctx, topic)).To(Succeed())
	})

	Describe("GenerateOutline", func() {
		It("remove cercas de código e tags fora da allow-list", func() {
			generator.respond("```html\n<h1>Title</h1><script>alert(1)</script><h2>Intro</h2><p>Body <a href=\"x\">link</a></p>\n```")

			html, err := service.GenerateOutline(ctx, topic.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(html).To(ContainSubstring("<h1>Title</h1>"))
			Expect(html).To(ContainSubstring("<h2>Intro</h2>"))
			Expect(html).NotTo(ContainSubstring("script"))
			Expect(html).NotTo(ContainSubstring("<a"))
			Expect(html).NotTo(ContainSubstring("```"))
			Expect(generator.prompts[0]).To(ContainSubstring(defaultBrandDescription))
		})

		It("usa a descrição da marca no prompt", func() {
			owner.BrandDescription = "Organic skincare for runners"
			Expect(users.Update(ctx, owner)).To(Succeed())
			generator.respond("<h1>x</h1>")

			_, err := service.GenerateOutline(ctx, topic.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(generator.prompts[0]).To(ContainSubstring("Organic skincare for runners"))
		})

		It("trata resposta vazia após sanitizar como falha do gateway", func() {
			generator.respond("<script>only</script>")

			_, err := service.GenerateOutline(ctx, topic.ID)
			Expect(err).To(MatchError(errors.ErrUpstream))
		})

		It("devolve not found para tópico alheio sem chamar o gateway", func() {
			intruder := users.add(&entities.User{Name: "Intruder"})

			_, err := service.GenerateOutline(asUser(intruder.ID), topic.ID)

			Expect(err).To(MatchError(errors.ErrTopicNotFound))
			Expect(generator.calls()).To(BeZero())
		})
	})

	Describe("GenerateEntities", func() {
		It("filtra, deduplica e persiste no máximo oito entidades", func() {
			generator.respond(`Sure! {"entities": ["JSON-LD", "json-ld", "structured data", "a very long four word phrase",
				"rich results", "FAQ schema", "knowledge graph", "entity", "citations", "snippets", "extra one"]}`)

			list, err := service.GenerateEntities(ctx, topic.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(maxEntities))
			Expect(list[0]).To(Equal("JSON-LD"))
			Expect(list).NotTo(ContainElement("json-ld"))
			Expect(list).NotTo(ContainElement("a very long four word phrase"))

			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Entities).To(Equal(list))
		})

		It("mantém a lista anterior quando a saída é malformada", func() {
			_, _ = topics.SetEntities(ctx, topic.ID, owner.ID, []string{"previous"})
			generator.respond(`{"entities": "not a list"}`)

			_, err := service.GenerateEntities(ctx, topic.ID)

			Expect(err).To(MatchError(errors.ErrUpstream))
			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Entities).To(Equal([]string{"previous"}))
		})

		It("não grava nada quando o gateway falha", func() {
			generator.err = errors.Upstream(llmSource, "request failed", nil)

			_, err := service.GenerateEntities(ctx, topic.ID)

			Expect(err).To(MatchError(errors.ErrUpstream))
			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Entities).To(BeEmpty())
		})
	})

	Describe("GenerateSection", func() {
		It("envia as frases exatas e usa a allow-list sem h1", func() {
			generator.respond("<h1>Nope</h1><h2>Section</h2><p>uses <strong>rich results</strong></p>")

			html, err := service.GenerateSection(ctx, topic.ID, []string{" rich results ", "Rich Results", "FAQ schema"})

			Expect(err).NotTo(HaveOccurred())
			Expect(html).NotTo(ContainSubstring("<h1>"))
			Expect(html).To(ContainSubstring("<strong>rich results</strong>"))
			Expect(generator.prompts[0]).To(ContainSubstring("rich results, FAQ schema"))
		})

		It("exige palavras-chave", func() {
			_, err := service.GenerateSection(ctx, topic.ID, []string{" ", ""})

			Expect(err).To(MatchError(errors.ErrKeywordsRequired))
			Expect(generator.calls()).To(BeZero())
		})
	})

	Describe("MaximizeCoverage", func() {
		BeforeEach(func() {
			_, _ = topics.SetEntities(ctx, topic.ID, owner.ID, []string{"factual writing", "JSON-LD"})
		})

		It("rejeita rascunho curto antes do gateway", func() {
			_, err := service.MaximizeCoverage(ctx, topic.ID, "<p>short</p>", []string{"JSON-LD"})

			Expect(err).To(MatchError(errors.ErrDraftTooShort))
			Expect(generator.calls()).To(BeZero())
		})

		It("rejeita cobertura completa antes do gateway", func() {
			draft := longDraft + "<p>We ship JSON-LD everywhere.</p>"

			_, err := service.MaximizeCoverage(ctx, topic.ID, draft, []string{"JSON-LD"})

			Expect(err).To(MatchError(errors.ErrCoverageComplete))
			Expect(generator.calls()).To(BeZero())
		})

		It("devolve o HTML reescrito sem persistir", func() {
			generator.respond("<h2>Rewritten</h2><p>Now with <strong>JSON-LD</strong></p>")

			html, err := service.MaximizeCoverage(ctx, topic.ID, longDraft, []string{"JSON-LD"})

			Expect(err).NotTo(HaveOccurred())
			Expect(html).To(ContainSubstring("<strong>JSON-LD</strong>"))
			Expect(generator.prompts[0]).To(ContainSubstring("JSON-LD"))

			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Content).To(BeEmpty())
		})
	})

	Describe("Coverage", func() {
		It("considera substring sem caixa no texto puro", func() {
			_, _ = topics.SetEntities(ctx, topic.ID, owner.ID, []string{"JSON-LD", "rich results", "knowledge graph"})

			coverage, err := service.Coverage(ctx, topic.ID, "<p>Use <strong>json-ld</strong> for Rich&nbsp;Results and RICH RESULTS.</p>")

			Expect(err).NotTo(HaveOccurred())
			Expect(coverage.Covered).To(ConsistOf("JSON-LD", "rich results"))
			Expect(coverage.Missing).To(ConsistOf("knowledge graph"))
			Expect(coverage.Percent).To(Equal(67))
		})

		It("é zero sem entidades", func() {
			coverage, err := service.Coverage(ctx, topic.ID, longDraft)

			Expect(err).NotTo(HaveOccurred())
			Expect(coverage.Percent).To(BeZero())
		})
	})

	Describe("RequestEdit", func() {
		It("grava o rascunho editado sem mudar o status", func() {
			_, _ = topics.UpdateStatus(ctx, topic.ID, owner.ID, entities.StatusReady)
			generator.respond("<p>Shorter draft</p>")

			html, err := service.RequestEdit(ctx, topic.ID, longDraft, "make it shorter")

			Expect(err).NotTo(HaveOccurred())
			Expect(html).To(Equal("<p>Shorter draft</p>"))

			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Content).To(Equal(html))
			Expect(stored.Status).To(Equal(entities.StatusReady))
			Expect(notifier.reasons()).To(ContainElement(owner.ID + ":" + ReasonTopicContentSaved))
		})

		It("exige instrução", func() {
			_, err := service.RequestEdit(ctx, topic.ID, longDraft, "  ")
			Expect(err).To(MatchError(errors.ErrInstructionRequired))
		})

		It("mantém o rascunho anterior quando o gateway falha", func() {
			_, _ = topics.UpdateContent(ctx, topic.ID, owner.ID, "<p>original</p>")
			generator.err = errors.Upstream(llmSource, "request failed", nil)

			_, err := service.RequestEdit(ctx, topic.ID, "<p>original</p>", "rewrite")

			Expect(err).To(MatchError(errors.ErrUpstream))
			stored, _ := topics.FindByID(ctx, topic.ID, owner.ID)
			Expect(stored.Content).To(Equal("<p>original</p>"))
		})
	})
})
