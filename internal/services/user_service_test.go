package services

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
)

var _ = Describe("UserService", func() {
	var (
		users   *fakeUserRepo
		service *UserService
		ctx     context.Context
	)

	ptr := func(s string) *string { return &s }

	BeforeEach(func() {
		users = newFakeUserRepo()
		service = NewUserService(users, fakeTokens{}, logging.NewNopLogger())
		service.bcryptCost = bcrypt.MinCost
		ctx = context.Background()
	})

	Describe("Signup", func() {
		It("cria a conta com email normalizado e defaults", func() {
			user, err := service.Signup(ctx, SignupInput{Email: " Ana@Example.COM ", Name: " Ana ", Password: "supersecret"})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Email.String()).To(Equal("ana@example.com"))
			Expect(user.Name).To(Equal("Ana"))
			Expect(user.Region).To(Equal(entities.DefaultRegion))
			Expect(user.Language).To(Equal(entities.DefaultLanguage))
			Expect(user.OnboardingCompleted).To(BeFalse())
			Expect(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret"))).To(Succeed())
		})

		It("rejeita email duplicado", func() {
			_, err := service.Signup(ctx, SignupInput{Email: "ana@example.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Signup(ctx, SignupInput{Email: "ANA@example.com", Password: "supersecret"})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		DescribeTable("valida a entrada",
			func(email, password string, want error) {
				_, err := service.Signup(ctx, SignupInput{Email: email, Password: password})
				Expect(err).To(MatchError(want))
			},
			Entry("email inválido", "not-an-email", "supersecret", errors.ErrInvalidEmail),
			Entry("senha curta", "ana@example.com", "short", errors.ErrPasswordTooShort),
		)
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := service.Signup(ctx, SignupInput{Email: "ana@example.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("emite token para credenciais válidas", func() {
			result, err := service.Login(ctx, "ANA@example.com", "supersecret")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.AccessToken).To(Equal("token-" + result.User.ID))
			Expect(result.ExpiresAt.IsZero()).To(BeFalse())
		})

		DescribeTable("não distingue email desconhecido de senha errada",
			func(email, password string) {
				_, err := service.Login(ctx, email, password)
				Expect(err).To(MatchError(errors.ErrInvalidCredentials))
			},
			Entry("senha errada", "ana@example.com", "wrong-password"),
			Entry("email desconhecido", "bob@example.com", "supersecret"),
			Entry("email malformado", "bob", "supersecret"),
		)
	})

	Describe("perfil", func() {
		var owner *entities.User

		BeforeEach(func() {
			owner = users.add(&entities.User{Name: "Owner"})
			ctx = asUser(owner.ID)
		})

		It("atualiza só os campos informados", func() {
			user, err := service.UpdateProfile(ctx, UpdateProfileInput{
				Website:          ptr("brand.example"),
				BrandDescription: ptr("  Trail shoes "),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Website).To(Equal("https://brand.example"))
			Expect(user.BrandDescription).To(Equal("Trail shoes"))
			Expect(user.Name).To(Equal("Owner"))
		})

		It("permite limpar o site", func() {
			_, err := service.UpdateProfile(ctx, UpdateProfileInput{Website: ptr("brand.example")})
			Expect(err).NotTo(HaveOccurred())

			user, err := service.UpdateProfile(ctx, UpdateProfileInput{Website: ptr("")})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.HasWebsite()).To(BeFalse())
		})

		It("descarta o scan AEO ao trocar de site", func() {
			_, err := service.UpdateProfile(ctx, UpdateProfileInput{Website: ptr("brand.example")})
			Expect(err).NotTo(HaveOccurred())
			Expect(users.SaveAEOResult(ctx, owner.ID, entities.AEOResult{
				Website: "https://brand.example", Score: 60, Status: entities.AEOStatusFair,
			})).To(Succeed())

			kept, err := service.UpdateProfile(ctx, UpdateProfileInput{Name: ptr("Renamed")})
			Expect(err).NotTo(HaveOccurred())
			Expect(kept.AEO).NotTo(BeNil())

			user, err := service.UpdateProfile(ctx, UpdateProfileInput{Website: ptr("other-brand.example")})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.AEO).To(BeNil())
			Expect(users.get(owner.ID).AEO).To(BeNil())
		})

		It("rejeita site inválido", func() {
			_, err := service.UpdateProfile(ctx, UpdateProfileInput{Website: ptr("https://")})
			Expect(err).To(MatchError(errors.ErrInvalidURL))
		})

		It("informa o status do onboarding", func() {
			done, err := service.OnboardingStatus(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(done).To(BeFalse())
		})

		It("trata conta removida como não autenticada", func() {
			_, err := service.GetProfile(asUser("0b6f1a52-0000-4000-8000-000000000000"))
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})

		It("exige identidade no contexto", func() {
			_, err := service.GetProfile(context.Background())
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})
	})
})
