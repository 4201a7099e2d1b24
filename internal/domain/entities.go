package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrGenerationUnavailable = errors.New("generation unavailable")
	ErrSchemaInvalid         = errors.New("schema invalid")
	ErrInternal              = errors.New("internal error")
)

// DemandLevel classifies hiring demand for an industry.
type DemandLevel string

// MarketOutlook classifies the overall market sentiment for an industry.
type MarketOutlook string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"

	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

// AssessmentCategoryTechnical is the category assigned to interview quiz results.
const AssessmentCategoryTechnical = "Technical"

// User is the onboarded profile. ExternalID is the identity issued by the
// authentication collaborator; Industry is the composite industry key
// ("tech-software_engineering") and references IndustryInsight by string.
type User struct {
	ID         string
	ExternalID string
	Email      string
	Industry   string
	Experience int
	Bio        string
	Skills     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Onboarded reports whether the user completed onboarding.
func (u User) Onboarded() bool { return u.Industry != "" }

// SalaryRange is one role's salary band inside an IndustryInsight.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location,omitempty"`
}

// IndustryInsight is the periodically refreshed market snapshot for one
// industry key. At most one row exists per key; rows are never deleted.
type IndustryInsight struct {
	Industry          string
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       DemandLevel
	TopSkills         []string
	MarketOutlook     MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
}

// InsightPayload is the parsed generation output for one industry, before
// the timestamps are attached on persistence.
type InsightPayload struct {
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       DemandLevel
	TopSkills         []string
	MarketOutlook     MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
}

// QuizQuestion is one generated multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuestionResult records how one question was answered. IsCorrect is exact
// string equality between CorrectAnswer and UserAnswer.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Assessment is one completed quiz attempt. Immutable after creation;
// QuizScore is derived from Questions and never mutated independently.
type Assessment struct {
	ID             string
	UserID         string
	QuizScore      float64
	Questions      []QuestionResult
	Category       string
	ImprovementTip *string
	CreatedAt      time.Time
}

// Resume is the single markdown resume per user, overwritten on save.
type Resume struct {
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repositories (ports)

type UserRepository interface {
	FindByExternalID(ctx Context, externalID string) (User, error)
	// UpdateProfile commits the onboarding fields in a single short
	// transaction. The industry key must already exist.
	UpdateProfile(ctx Context, u User) (User, error)
}

type InsightRepository interface {
	Get(ctx Context, industry string) (IndustryInsight, error)
	// Create inserts the insight if and only if no row exists for the key
	// and returns the row now on record, which may be a concurrent writer's.
	Create(ctx Context, ins IndustryInsight) (IndustryInsight, error)
	// Update overwrites all derived fields and timestamps for the key.
	Update(ctx Context, ins IndustryInsight) error
	ListIndustries(ctx Context) ([]string, error)
}

type AssessmentRepository interface {
	Create(ctx Context, a Assessment) (Assessment, error)
	// ListByUser returns assessments ordered by creation time ascending.
	ListByUser(ctx Context, userID string) ([]Assessment, error)
}

type ResumeRepository interface {
	Upsert(ctx Context, r Resume) (Resume, error)
	GetByUser(ctx Context, userID string) (Resume, error)
}

// Generator (port)
//
// Generate sends one prompt to the external text-generation provider and
// returns its raw response text. Implementations perform no retries; empty
// or malformed text is handed to the parser unchanged.
type Generator interface {
	Generate(ctx Context, prompt string) (string, error)
}

// Context is an alias so ports read uniformly; adapters and usecases pass
// context.Context through.
type Context = context.Context
