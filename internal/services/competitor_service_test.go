package services

import (
	"context"
	errs "errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

const validGapReport = `{
  "scores": {"userScore": 72.4, "compScore": 140, "reasoning": "Competitor has richer headings."},
  "featureComparison": [
    {"feature": "Pricing page", "userStatus": "yes", "compStatus": "Yes"},
    {"feature": "FAQ", "userStatus": "No", "compStatus": "y"},
    {"feature": "Blog", "userStatus": "Yes", "compStatus": "No"},
    {"feature": "Case studies", "userStatus": "no", "compStatus": "true"},
    {"feature": "Docs", "userStatus": "No", "compStatus": "No"},
    {"feature": "Extra row", "userStatus": "No", "compStatus": "No"}
  ],
  "myAdvantages": ["a1", "a2", "a3", "a4"],
  "competitorAdvantages": ["c1", "c2", "c3"],
  "actionPlan": ["s1", "s2", "s3"]
}`

var _ = Describe("CompetitorService", func() {
	var (
		competitors *fakeCompetitorRepo
		users       *fakeUserRepo
		fetcher     *fakeFetcher
		generator   *fakeGenerator
		service     *CompetitorService
		owner       *entities.User
		ctx         context.Context
	)

	BeforeEach(func() {
		competitors = &fakeCompetitorRepo{}
		users = newFakeUserRepo()
		fetcher = newFakeFetcher()
		generator = &fakeGenerator{}
		service = NewCompetitorService(competitors, users, fetcher, generator, 5*time.Second, logging.NewNopLogger())

		owner = users.add(&entities.User{Name: "Owner", Website: "https://mine.example"})
		ctx = asUser(owner.ID)
	})

	Describe("Add", func() {
		It("deriva o nome do host sem www", func() {
			competitor, err := service.Add(ctx, "", "https://www.Nykaa.com/about")

			Expect(err).NotTo(HaveOccurred())
			Expect(competitor.Name).To(Equal("nykaa.com"))
			Expect(competitor.URL).To(Equal("https://www.Nykaa.com/about"))
			Expect(competitor.UserID).To(Equal(owner.ID))
		})

		It("completa hosts sem esquema e mantém o nome informado", func() {
			competitor, err := service.Add(ctx, "Rival", "rival.io")

			Expect(err).NotTo(HaveOccurred())
			Expect(competitor.Name).To(Equal("Rival"))
			Expect(competitor.URL).To(Equal("https://rival.io"))
		})

		It("exige URL", func() {
			_, err := service.Add(ctx, "Rival", "  ")
			Expect(err).To(MatchError(errors.ErrCompetitorRequired))
		})
	})

	Describe("List e Delete", func() {
		It("só enxerga e remove concorrentes do dono", func() {
			mine, _ := service.Add(ctx, "", "https://rival.io")
			intruder := users.add(&entities.User{Name: "Intruder"})

			Expect(service.Delete(asUser(intruder.ID), mine.ID)).To(Succeed())

			list, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))

			others, _ := service.List(asUser(intruder.ID))
			Expect(others).To(BeEmpty())

			Expect(service.Delete(ctx, mine.ID)).To(Succeed())
			list, _ = service.List(ctx)
			Expect(list).To(BeEmpty())
		})
	})

	Describe("Search", func() {
		It("ignora consultas curtas e limita a cinco resultados", func() {
			for _, host := range []string{"alpha.io", "alpine.io", "alps.io", "altair.io", "alto.io", "always.io"} {
				_, err := service.Add(ctx, "", host)
				Expect(err).NotTo(HaveOccurred())
			}

			short, err := service.Search(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(short).To(BeEmpty())

			matches, err := service.Search(ctx, "AL")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(maxSearchResults))
		})

		It("não sugere concorrentes de outros usuários", func() {
			stranger := users.add(&entities.User{Name: "Stranger"})
			_, err := service.Add(asUser(stranger.ID), "Secret Rival", "https://secret-rival.io")
			Expect(err).NotTo(HaveOccurred())

			matches, err := service.Search(ctx, "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())

			own, err := service.Search(asUser(stranger.ID), "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(own).To(HaveLen(1))
		})
	})

	Describe("GapAnalysis", func() {
		var rival *entities.Competitor

		BeforeEach(func() {
			var err error
			rival, err = service.Add(ctx, "Rival", "https://www.rival.io")
			Expect(err).NotTo(HaveOccurred())

			fetcher.serve("https://mine.example", 200, pageFor("Mine"))
			fetcher.serve("https://www.rival.io", 200, pageFor("Rival"))
		})

		It("monta o relatório validado a partir dos dois resumos", func() {
			generator.respond(validGapReport)

			report, err := service.GapAnalysis(ctx, rival.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Scores.UserScore).To(Equal(72))
			Expect(report.Scores.CompScore).To(Equal(entities.MaxAnalysisScore))
			Expect(report.FeatureComparison).To(HaveLen(entities.GapFeatureRows))
			Expect(report.FeatureComparison[0].UserStatus).To(Equal(entities.FeaturePresent))
			Expect(report.FeatureComparison[1].CompStatus).To(Equal(entities.FeaturePresent))
			Expect(report.FeatureComparison[3].CompStatus).To(Equal(entities.FeaturePresent))
			Expect(report.FeatureComparison[4].UserStatus).To(Equal(entities.FeatureAbsent))
			Expect(report.MyAdvantages).To(Equal([]string{"a1", "a2", "a3"}))

			Expect(fetcher.requests[0].Timeout).To(Equal(5 * time.Second))
			Expect(generator.prompts[0]).To(ContainSubstring("H2s: Pricing, Features"))
			Expect(generator.prompts[0]).To(ContainSubstring("Title: Rival home"))
			Expect(generator.opts[0].ForceJSON).To(BeTrue())
		})

		It("falha nomeando o host do concorrente e o status sem chamar o gateway", func() {
			fetcher.serve("https://www.rival.io", 404, "")

			_, err := service.GapAnalysis(ctx, rival.ID)

			var upstream *errors.UpstreamError
			Expect(errs.As(err, &upstream)).To(BeTrue())
			Expect(upstream.Source).To(Equal("www.rival.io"))
			Expect(upstream.Status).To(Equal(404))
			Expect(err.Error()).To(ContainSubstring("404"))
			Expect(generator.calls()).To(BeZero())
		})

		It("falha nomeando o próprio site em erro de rede", func() {
			fetcher.failures["https://mine.example"] = errs.New("dial tcp: connection refused")

			_, err := service.GapAnalysis(ctx, rival.ID)

			var upstream *errors.UpstreamError
			Expect(errs.As(err, &upstream)).To(BeTrue())
			Expect(upstream.Source).To(Equal(userSiteSource))
			Expect(err.Error()).To(ContainSubstring("connection refused"))
			Expect(generator.calls()).To(BeZero())
		})

		It("falha quando a página não tem resumo", func() {
			fetcher.serve("https://www.rival.io", 200, "<html><body><p>nothing</p></body></html>")

			_, err := service.GapAnalysis(ctx, rival.ID)

			Expect(err).To(MatchError(errors.ErrUpstream))
			Expect(generator.calls()).To(BeZero())
		})

		It("rejeita relatório com listas curtas", func() {
			generator.respond(`{"scores": {"userScore": 1, "compScore": 2, "reasoning": "x"},
				"featureComparison": [{"feature": "Only", "userStatus": "Yes", "compStatus": "No"}],
				"myAdvantages": [], "competitorAdvantages": [], "actionPlan": []}`)

			_, err := service.GapAnalysis(ctx, rival.ID)
			Expect(err).To(MatchError(errors.ErrUpstream))
		})

		It("exige site configurado", func() {
			noSite := users.add(&entities.User{Name: "No site"})

			_, err := service.GapAnalysis(asUser(noSite.ID), rival.ID)
			Expect(err).To(MatchError(errors.ErrWebsiteNotConfigured))
		})

		It("trata concorrente alheio como inexistente", func() {
			intruder := users.add(&entities.User{Name: "Intruder", Website: "https://intruder.example"})

			_, err := service.GapAnalysis(asUser(intruder.ID), rival.ID)

			Expect(err).To(MatchError(errors.ErrCompetitorNotFound))
			Expect(fetcher.urls).To(BeEmpty())
		})
	})
})

var _ = Describe("gapPayload", func() {
	DescribeTable("clampScore",
		func(in float64, want int) {
			Expect(clampScore(in)).To(Equal(want))
		},
		Entry("negativo", -5.0, 0),
		Entry("acima do máximo", 101.0, 100),
		Entry("arredonda", 49.6, 50),
		Entry("inteiro", 80.0, 80),
	)

	DescribeTable("yesNo",
		func(in, want string) {
			Expect(yesNo(in)).To(Equal(want))
		},
		Entry("Yes", "Yes", entities.FeaturePresent),
		Entry("minúsculo", " yes ", entities.FeaturePresent),
		Entry("No", "No", entities.FeatureAbsent),
		Entry("lixo", "partial", entities.FeatureAbsent),
	)
})
