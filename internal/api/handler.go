package api

import (
	"errors"
	"strings"
	"time"

	"github.com/saukhya-health/saukhya/internal/db"
	"github.com/saukhya-health/saukhya/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName      = "saukhya_auth"
	contextUserKey      = "current_user"
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	now          func() time.Time
	loginLimiter *attemptLimiter

	authService     *services.AuthService
	profileService  *services.ProfileService
	periodService   *services.PeriodService
	insightsService *services.InsightsService
	exportService   *services.ExportService
	dayService      *services.DayService
	symptomService  *services.SymptomService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	symptomService := services.NewSymptomService(repositories.Symptoms, repositories.DailyLogs)
	return &Handler{
		secretKey:       []byte(secretKey),
		location:        location,
		cookieSecure:    cookieSecure,
		now:             time.Now,
		loginLimiter:    newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		authService:     services.NewAuthService(repositories.Users),
		profileService:  services.NewProfileService(repositories.Users),
		periodService:   services.NewPeriodService(repositories.Periods),
		insightsService: services.NewInsightsService(repositories.Periods, repositories.Users),
		exportService:   services.NewExportService(repositories.Periods, repositories.DailyLogs, symptomService),
		dayService:      services.NewDayService(repositories.DailyLogs, symptomService),
		symptomService:  symptomService,
	}, nil
}

func (handler *Handler) today() time.Time {
	return services.TodayIn(handler.now(), handler.location)
}
