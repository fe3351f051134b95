package entities

import (
	"errors"
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
)

const (
	DefaultRegion   = "US"
	DefaultLanguage = "en"
)

// User representa a conta dona de concorrentes e tópicos
type User struct {
	ID                  string
	Email               valueobjects.Email
	Name                string
	PasswordHash        string
	Website             string
	BrandDescription    string
	Region              string
	Language            string
	OnboardingCompleted bool
	AEO                 *AEOResult // último scan persistido, nil se nunca escaneado
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DisplayName retorna o nome ou, na falta dele, o email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email.String()
}

// HasWebsite verifica se o site alvo foi configurado
func (u *User) HasWebsite() bool {
	return u.Website != ""
}

// SetWebsite troca o site alvo. O scan AEO anterior só vale para o site
// antigo e é descartado quando ele muda.
func (u *User) SetWebsite(website string) {
	if website != u.Website {
		u.AEO = nil
	}
	u.Website = website
}

// ApplyDefaults preenche região e idioma ausentes
func (u *User) ApplyDefaults() {
	if u.Region == "" {
		u.Region = DefaultRegion
	}
	if u.Language == "" {
		u.Language = DefaultLanguage
	}
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}
