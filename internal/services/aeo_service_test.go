package services

import (
	"context"
	errs "errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

var _ = Describe("AEOService", func() {
	const website = "https://brand.example"

	var (
		users     *fakeUserRepo
		fetcher   *fakeFetcher
		generator *fakeGenerator
		service   *AEOService
		owner     *entities.User
		ctx       context.Context
		now       time.Time
	)

	BeforeEach(func() {
		users = newFakeUserRepo()
		fetcher = newFakeFetcher()
		generator = &fakeGenerator{}
		service = NewAEOService(users, fetcher, generator, AEOOptions{
			ScanTimeout: 8 * time.Second,
			UserAgent:   "Mozilla/5.0 test",
			RescanAfter: 24 * time.Hour,
		}, logging.NewNopLogger())

		now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		service.now = fixedClock(now)

		owner = users.add(&entities.User{Name: "Owner", Website: website})
		ctx = asUser(owner.ID)
		fetcher.serve(website, 200, pageFor("Brand"))
	})

	Describe("Scan", func() {
		It("pontua, valida e persiste o resultado", func() {
			generator.respond(`Result: {"score": 42, "status": "Needs Work", "reasoning": "Too much fluff."}`)

			scan, err := service.Scan(ctx, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(scan.Cached).To(BeFalse())
			Expect(scan.Score).To(Equal(42))
			Expect(scan.Status).To(Equal(entities.AEOStatusNeedsWork))
			Expect(scan.ScannedAt).To(Equal(now))

			Expect(fetcher.requests[0].Timeout).To(Equal(8 * time.Second))
			Expect(fetcher.requests[0].UserAgent).To(Equal("Mozilla/5.0 test"))
			Expect(generator.opts[0].ForceJSON).To(BeTrue())
			Expect(generator.prompts[0]).NotTo(ContainSubstring("<h1>"))

			stored := users.get(owner.ID)
			Expect(stored.AEO).NotTo(BeNil())
			Expect(stored.AEO.Score).To(Equal(42))
		})

		It("reaproveita resultado recente sem buscar a página", func() {
			owner.AEO = &entities.AEOResult{Website: website, Score: 90, Status: entities.AEOStatusExcellent, ScannedAt: now.Add(-time.Hour)}
			Expect(users.Update(ctx, owner)).To(Succeed())

			scan, err := service.Scan(ctx, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(scan.Cached).To(BeTrue())
			Expect(scan.Score).To(Equal(90))
			Expect(fetcher.urls).To(BeEmpty())
			Expect(generator.calls()).To(BeZero())
		})

		It("não reaproveita scan de um site anterior", func() {
			generator.respond(`{"score": 42, "status": "Needs Work", "reasoning": "old site"}`)
			_, err := service.Scan(ctx, false)
			Expect(err).NotTo(HaveOccurred())

			const newSite = "https://new-brand.example"
			stored := users.get(owner.ID)
			changed := *stored
			changed.Website = newSite
			Expect(users.Update(ctx, &changed)).To(Succeed())
			fetcher.serve(newSite, 200, pageFor("New Brand"))
			generator.respond(`{"score": 77, "status": "Good", "reasoning": "new site"}`)

			scan, err := service.Scan(ctx, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(scan.Cached).To(BeFalse())
			Expect(scan.Score).To(Equal(77))
			Expect(scan.Website).To(Equal(newSite))
			Expect(fetcher.urls[len(fetcher.urls)-1]).To(Equal(newSite))
			Expect(users.get(owner.ID).AEO.Website).To(Equal(newSite))
		})

		It("refaz o scan quando forçado ou expirado", func() {
			owner.AEO = &entities.AEOResult{Website: website, Score: 90, Status: entities.AEOStatusExcellent, ScannedAt: now.Add(-time.Hour)}
			Expect(users.Update(ctx, owner)).To(Succeed())
			generator.respond(`{"score": 10, "status": "Critical", "reasoning": "r"}`)

			scan, err := service.Scan(ctx, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(scan.Cached).To(BeFalse())
			Expect(scan.Score).To(Equal(10))
		})

		It("falha com o status quando o site responde não-2xx", func() {
			fetcher.serve(website, 503, "")

			_, err := service.Scan(ctx, false)

			var upstream *errors.UpstreamError
			Expect(errs.As(err, &upstream)).To(BeTrue())
			Expect(upstream.Status).To(Equal(503))
			Expect(generator.calls()).To(BeZero())
		})

		It("rejeita páginas com pouco texto", func() {
			fetcher.serve(website, 200, "<html><body><p>Hi</p><script>var lots = 'of code that should not count as text at all';</script></body></html>")

			_, err := service.Scan(ctx, false)

			Expect(err).To(MatchError(errors.ErrNotEnoughText))
			Expect(generator.calls()).To(BeZero())
		})

		It("trunca o texto enviado ao gateway", func() {
			fetcher.serve(website, 200, "<p>"+strings.Repeat("word ", 5000)+"</p>")
			generator.respond(`{"score": 50, "status": "Fair", "reasoning": "r"}`)

			_, err := service.Scan(ctx, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(len(generator.prompts[0])).To(BeNumerically("<", maxScanTextLen+2000))
		})

		DescribeTable("rejeita resposta inválida sem persistir",
			func(output string) {
				generator.respond(output)

				_, err := service.Scan(ctx, true)

				Expect(err).To(MatchError(errors.ErrUpstream))
				Expect(users.saves).To(BeZero())
			},
			Entry("score acima de 100", `{"score": 120, "status": "Good", "reasoning": "r"}`),
			Entry("score negativo", `{"score": -1, "status": "Good", "reasoning": "r"}`),
			Entry("score ausente", `{"status": "Good", "reasoning": "r"}`),
			Entry("status desconhecido", `{"score": 50, "status": "Okay", "reasoning": "r"}`),
			Entry("sem JSON", `I cannot help with that.`),
		)

		It("exige site configurado", func() {
			noSite := users.add(&entities.User{Name: "No site"})

			_, err := service.Scan(asUser(noSite.ID), true)
			Expect(err).To(MatchError(errors.ErrWebsiteNotConfigured))
		})
	})

	Describe("Audit", func() {
		It("aplica as regras à home do usuário", func() {
			fetcher.serve(website, 200, `<html><head><title>Brand</title></head><body><img src="a.png"></body></html>`)

			issues, err := service.Audit(ctx)

			Expect(err).NotTo(HaveOccurred())
			ids := make([]string, 0, len(issues))
			for _, issue := range issues {
				ids = append(ids, issue.ID)
			}
			Expect(ids).To(ContainElements("missing-h1", "missing-meta-desc", "missing-alts"))
			Expect(ids).NotTo(ContainElement("missing-title"))
		})
	})
})
