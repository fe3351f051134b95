package services

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

var _ = Describe("TopicService", func() {
	var (
		topics    *fakeTopicRepo
		users     *fakeUserRepo
		uow       *fakeUnitOfWork
		generator *fakeGenerator
		notifier  *recordingNotifier
		service   *TopicService
		owner     *entities.User
		ctx       context.Context
	)

	BeforeEach(func() {
		topics = &fakeTopicRepo{}
		users = newFakeUserRepo()
		uow = &fakeUnitOfWork{}
		generator = &fakeGenerator{}
		notifier = &recordingNotifier{}
		service = NewTopicService(topics, users, uow, generator, notifier, logging.NewNopLogger())

		owner = users.add(&entities.User{Name: "Owner", Website: "https://owner.example"})
		ctx = asUser(owner.ID)
	})

	Describe("Create", func() {
		It("deriva o core entity e aplica os defaults", func() {
			topic, err := service.Create(ctx, CreateTopicInput{Title: "How to Optimize for ChatGPT Answers"})

			Expect(err).NotTo(HaveOccurred())
			Expect(topic.CoreEntity).To(Equal("How to"))
			Expect(topic.Status).To(Equal(entities.StatusIdea))
			Expect(topic.Priority).To(Equal(entities.PriorityMedium))
			Expect(topic.UserID).To(Equal(owner.ID))
			Expect(notifier.reasons()).To(ConsistOf(owner.ID + ":" + ReasonTopicCreated))
		})

		It("aceita status e prioridade informados", func() {
			topic, err := service.Create(ctx, CreateTopicInput{Title: "Pricing page", Status: "ready", Priority: "HIGH"})

			Expect(err).NotTo(HaveOccurred())
			Expect(topic.Status).To(Equal(entities.StatusReady))
			Expect(topic.Priority).To(Equal(entities.PriorityHigh))
		})

		It("usa General quando o título não tem alfanuméricos", func() {
			topic, err := service.Create(ctx, CreateTopicInput{Title: "?? !!"})

			Expect(err).NotTo(HaveOccurred())
			Expect(topic.CoreEntity).To(Equal(entities.DefaultCoreEntity))
		})

		It("rejeita título vazio sem gravar", func() {
			_, err := service.Create(ctx, CreateTopicInput{Title: "   "})

			Expect(err).To(MatchError(errors.ErrTitleRequired))
			Expect(topics.count(owner.ID)).To(BeZero())
			Expect(notifier.reasons()).To(BeEmpty())
		})

		It("rejeita status desconhecido", func() {
			_, err := service.Create(ctx, CreateTopicInput{Title: "x", Status: "Archived"})
			Expect(err).To(MatchError(errors.ErrInvalidStatus))
		})

		It("exige usuário autenticado", func() {
			_, err := service.Create(context.Background(), CreateTopicInput{Title: "x"})
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})
	})

	Describe("UpdateStatus", func() {
		var topic *entities.Topic

		BeforeEach(func() {
			var err error
			topic, err = service.Create(ctx, CreateTopicInput{Title: "Moving card"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("permite qualquer transição", func() {
			Expect(service.UpdateStatus(ctx, topic.ID, "Published")).To(Succeed())
			Expect(service.UpdateStatus(ctx, topic.ID, "Idea")).To(Succeed())

			stored, err := service.Get(ctx, topic.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(entities.StatusIdea))
		})

		It("rejeita valores fora do conjunto antes de gravar", func() {
			Expect(service.UpdateStatus(ctx, topic.ID, "Done")).To(MatchError(errors.ErrInvalidStatus))

			stored, _ := service.Get(ctx, topic.ID)
			Expect(stored.Status).To(Equal(entities.StatusIdea))
		})

		It("é no-op silencioso para tópico de outro usuário", func() {
			intruder := users.add(&entities.User{Name: "Intruder"})
			before := len(notifier.reasons())

			Expect(service.UpdateStatus(asUser(intruder.ID), topic.ID, "Ready")).To(Succeed())

			stored, _ := service.Get(ctx, topic.ID)
			Expect(stored.Status).To(Equal(entities.StatusIdea))
			Expect(notifier.reasons()).To(HaveLen(before))
		})
	})

	Describe("UpdateContent", func() {
		It("grava exatamente o texto sem mudar o status", func() {
			topic, _ := service.Create(ctx, CreateTopicInput{Title: "Draft", Status: "To Do"})
			draft := "<p>Exact draft text</p>"

			Expect(service.UpdateContent(ctx, topic.ID, draft)).To(Succeed())

			stored, err := service.Get(ctx, topic.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Content).To(Equal(draft))
			Expect(stored.Status).To(Equal(entities.StatusToDo))
		})
	})

	Describe("Delete e Get", func() {
		It("remove o tópico do dono", func() {
			topic, _ := service.Create(ctx, CreateTopicInput{Title: "Temporary"})

			Expect(service.Delete(ctx, topic.ID)).To(Succeed())

			_, err := service.Get(ctx, topic.ID)
			Expect(err).To(MatchError(errors.ErrTopicNotFound))
		})

		It("ignora id ausente ou alheio", func() {
			topic, _ := service.Create(ctx, CreateTopicInput{Title: "Mine"})
			intruder := users.add(&entities.User{Name: "Intruder"})

			Expect(service.Delete(asUser(intruder.ID), topic.ID)).To(Succeed())
			Expect(service.Delete(ctx, "does-not-exist")).To(Succeed())
			Expect(topics.count(owner.ID)).To(Equal(1))

			_, err := service.Get(asUser(intruder.ID), topic.ID)
			Expect(err).To(MatchError(errors.ErrTopicNotFound))
		})
	})

	Describe("Board", func() {
		It("agrupa por status com os mais recentes primeiro", func() {
			first, _ := service.Create(ctx, CreateTopicInput{Title: "First idea"})
			second, _ := service.Create(ctx, CreateTopicInput{Title: "Second idea"})
			ready, _ := service.Create(ctx, CreateTopicInput{Title: "Ready one", Status: "Ready"})

			board, err := service.Board(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(board.Columns).To(HaveLen(len(entities.PipelineStatuses)))
			Expect(board.Columns[0].Status).To(Equal(entities.StatusIdea))
			Expect(board.Columns[0].Topics).To(HaveLen(2))
			Expect(board.Columns[0].Topics[0].ID).To(Equal(second.ID))
			Expect(board.Columns[0].Topics[1].ID).To(Equal(first.ID))
			Expect(board.Columns[3].Topics[0].ID).To(Equal(ready.ID))
			Expect(board.Columns[4].Topics).To(BeEmpty())
		})
	})

	Describe("Brainstorm", func() {
		const fiveTopics = `Here you go:
[
 {"topicName": "AEO basics", "coreEntity": "AEO", "priority": "High"},
 {"topicName": "Schema markup guide", "coreEntity": "Schema", "priority": "medium"},
 {"topicName": "Answer boxes", "coreEntity": "", "priority": "Low"},
 {"topicName": "Entity SEO", "coreEntity": "Entities", "priority": "High"},
 {"topicName": "LLM citations", "coreEntity": "Citations", "priority": "Medium"}
]`

		It("insere exatamente cinco tópicos em uma transação", func() {
			generator.respond(fiveTopics)

			created, err := service.Brainstorm(ctx, "answer engine optimization")

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(brainstormCount))
			Expect(uow.calls).To(Equal(1))
			Expect(topics.count(owner.ID)).To(Equal(brainstormCount))
			Expect(created[1].Priority).To(Equal(entities.PriorityMedium))
			Expect(created[2].CoreEntity).To(Equal("Answer boxes"))
			for _, t := range created {
				Expect(t.Status).To(Equal(entities.StatusIdea))
			}
			Expect(generator.opts[0].ForceJSON).To(BeTrue())
			Expect(generator.prompts[0]).To(ContainSubstring(`"answer engine optimization"`))
			Expect(notifier.reasons()).To(ContainElement(owner.ID + ":" + ReasonTopicsBrainstormed))
		})

		It("não grava nada quando a saída é malformada", func() {
			generator.respond(`[{"topicName": "Only one", "priority": "High"}]`)

			_, err := service.Brainstorm(ctx, "seo")

			Expect(err).To(MatchError(errors.ErrUpstream))
			Expect(topics.count(owner.ID)).To(BeZero())
			Expect(uow.calls).To(BeZero())
		})

		It("rejeita prioridade fora do conjunto", func() {
			generator.respond(`[
 {"topicName": "a", "priority": "High"}, {"topicName": "b", "priority": "Urgent"},
 {"topicName": "c", "priority": "Low"}, {"topicName": "d", "priority": "Low"},
 {"topicName": "e", "priority": "Low"}]`)

			_, err := service.Brainstorm(ctx, "seo")
			Expect(err).To(MatchError(errors.ErrUpstream))
			Expect(topics.count(owner.ID)).To(BeZero())
		})

		It("exige palavra-chave", func() {
			_, err := service.Brainstorm(ctx, " ")
			Expect(err).To(MatchError(errors.ErrKeywordRequired))
			Expect(generator.calls()).To(BeZero())
		})
	})

	Describe("SuggestTopics", func() {
		It("devolve no máximo dez sugestões não vazias", func() {
			generator.respond(`[{"topic": "One", "reason": "r1"}, {"topic": " ", "reason": "skip"}, {"topic": "Two", "reason": "r2"}]`)

			suggestions, err := service.SuggestTopics(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(suggestions).To(Equal([]TopicSuggestion{{Topic: "One", Reason: "r1"}, {Topic: "Two", Reason: "r2"}}))
			Expect(generator.prompts[0]).To(ContainSubstring("https://owner.example"))
			Expect(generator.prompts[0]).To(ContainSubstring("No description provided"))
			Expect(topics.count(owner.ID)).To(BeZero())
		})

		It("exige site configurado", func() {
			noSite := users.add(&entities.User{Name: "No site"})

			_, err := service.SuggestTopics(asUser(noSite.ID))
			Expect(err).To(MatchError(errors.ErrWebsiteNotConfigured))
		})
	})
})
