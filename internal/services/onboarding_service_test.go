package services

import (
	"context"
	errs "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

var _ = Describe("OnboardingService", func() {
	var (
		users       *fakeUserRepo
		competitors *fakeCompetitorRepo
		topics      *fakeTopicRepo
		uow         *fakeUnitOfWork
		notifier    *recordingNotifier
		service     *OnboardingService
		owner       *entities.User
		ctx         context.Context
	)

	BeforeEach(func() {
		users = newFakeUserRepo()
		competitors = &fakeCompetitorRepo{}
		topics = &fakeTopicRepo{}
		uow = &fakeUnitOfWork{}
		notifier = &recordingNotifier{}
		service = NewOnboardingService(users, competitors, topics, uow, notifier, logging.NewNopLogger())

		owner = users.add(&entities.User{Name: "Owner"})
		ctx = asUser(owner.ID)
	})

	Describe("SaveBrand", func() {
		It("normaliza o site e grava a descrição", func() {
			user, err := service.SaveBrand(ctx, "brand.example", "  Running shoes  ")

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Website).To(Equal("https://brand.example"))
			Expect(users.get(owner.ID).BrandDescription).To(Equal("Running shoes"))
			Expect(users.get(owner.ID).OnboardingCompleted).To(BeFalse())
		})

		It("rejeita URL inválida", func() {
			_, err := service.SaveBrand(ctx, "http://", "x")
			Expect(err).To(MatchError(errors.ErrInvalidURL))
		})
	})

	Describe("Complete", func() {
		It("grava perfil, concorrentes e pautas em uma transação", func() {
			user, err := service.Complete(ctx, OnboardingInput{
				Website:          "https://brand.example",
				BrandDescription: "Running shoes",
				Region:           "BR",
				Language:         "pt-BR",
				Topics:           []string{"Best trail shoes 2026", " ", "best trail shoes 2026", "Marathon prep"},
				Competitors: []CompetitorSeed{
					{URL: "https://www.Rival.com/shop"},
					{Name: "Other", URL: "other.io"},
					{},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(uow.calls).To(Equal(1))
			Expect(user.OnboardingCompleted).To(BeTrue())
			Expect(users.get(owner.ID).Region).To(Equal("BR"))

			list, _ := competitors.ListByUser(ctx, owner.ID)
			Expect(list).To(HaveLen(2))
			Expect(list[0].Name).To(Equal("rival.com"))
			Expect(list[1].Name).To(Equal("Other"))

			seeded, _ := topics.ListByUser(ctx, owner.ID, repositories.TopicFilters{})
			Expect(seeded).To(HaveLen(2))
			for _, t := range seeded {
				Expect(t.Status).To(Equal(entities.StatusIdea))
				Expect(t.Priority).To(Equal(entities.PriorityMedium))
			}
			Expect(notifier.reasons()).To(ConsistOf(owner.ID + ":" + ReasonOnboardingSeeded))
		})

		It("aplica região e idioma padrão", func() {
			user, err := service.Complete(ctx, OnboardingInput{Website: "brand.example"})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Region).To(Equal(entities.DefaultRegion))
			Expect(user.Language).To(Equal(entities.DefaultLanguage))
			Expect(notifier.reasons()).To(BeEmpty())
		})

		It("valida todas as URLs antes de gravar", func() {
			_, err := service.Complete(ctx, OnboardingInput{
				Website:     "https://brand.example",
				Topics:      []string{"One"},
				Competitors: []CompetitorSeed{{Name: "Broken", URL: "http://"}},
			})

			Expect(err).To(MatchError(errors.ErrInvalidURL))
			Expect(uow.calls).To(BeZero())
			Expect(topics.count(owner.ID)).To(BeZero())
			Expect(users.get(owner.ID).OnboardingCompleted).To(BeFalse())
		})

		It("propaga falha do repositório", func() {
			competitors.err = errs.New("insert failed")

			_, err := service.Complete(ctx, OnboardingInput{
				Website:     "https://brand.example",
				Competitors: []CompetitorSeed{{URL: "rival.io"}},
			})

			Expect(err).To(MatchError("insert failed"))
			Expect(notifier.reasons()).To(BeEmpty())
		})
	})
})
