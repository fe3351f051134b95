package postgres

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                  string `gorm:"type:uuid;primaryKey"`
	Email               string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                string `gorm:"type:varchar(500)"`
	PasswordHash        string `gorm:"type:varchar(255);not null"`
	Website             string `gorm:"type:varchar(2048)"`
	BrandDescription    string `gorm:"type:text"`
	Region              string `gorm:"type:varchar(16);not null;default:US"`
	Language            string `gorm:"type:varchar(16);not null;default:en"`
	OnboardingCompleted bool   `gorm:"not null;default:false"`
	AEOWebsite          string `gorm:"column:aeo_website;type:varchar(2048)"`
	AEOScore            *int   `gorm:"column:aeo_score"`
	AEOStatus           string `gorm:"column:aeo_status;type:varchar(32)"`
	AEOReasoning        string `gorm:"column:aeo_reasoning;type:text"`
	AEOScannedAt        *int64 `gorm:"column:aeo_scanned_at"`
	CreatedAt           int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate gera o id na aplicação para não depender de gen_random_uuid()
func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CompetitorModel é o model GORM para concorrentes
type CompetitorModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	Name      string `gorm:"type:varchar(255);not null;index"`
	URL       string `gorm:"type:varchar(2048);not null;default:''"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (CompetitorModel) TableName() string {
	return "competitors"
}

func (m *CompetitorModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TopicModel é o model GORM para tópicos do pipeline
type TopicModel struct {
	ID         string                      `gorm:"type:uuid;primaryKey"`
	UserID     string                      `gorm:"type:uuid;not null;index:idx_topics_user_created,priority:1"`
	Title      string                      `gorm:"type:varchar(500);not null"`
	CoreEntity string                      `gorm:"type:varchar(255);not null"`
	Status     string                      `gorm:"type:varchar(32);not null;index"`
	Priority   string                      `gorm:"type:varchar(16);not null"`
	Content    string                      `gorm:"type:text"`
	Entities   datatypes.JSONSlice[string] `gorm:"column:suggested_entities"`
	CreatedAt  int64                       `gorm:"autoCreateTime:milli;index:idx_topics_user_created,priority:2"`
	UpdatedAt  int64                       `gorm:"autoUpdateTime:milli"`
}

func (TopicModel) TableName() string {
	return "topics"
}

func (m *TopicModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels lista os models migrados na inicialização
func AllModels() []any {
	return []any{&UserModel{}, &CompetitorModel{}, &TopicModel{}}
}
