package api

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/i18n"
	"github.com/terraincognita07/nutrilog/internal/services"
)

type Handler struct {
	secretKey []byte
	location  *time.Location
	i18n      *i18n.Manager
	logger    logrus.FieldLogger
	now       func() time.Time

	journal  *services.JournalService
	profiles *services.ProfileService
	stats    *services.StatsService
}

type Dependencies struct {
	Journal  *services.JournalService
	Profiles *services.ProfileService
	Stats    *services.StatsService
	I18n     *i18n.Manager
	Logger   logrus.FieldLogger
}

func NewHandler(secret string, location *time.Location, deps Dependencies) (*Handler, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Journal == nil || deps.Profiles == nil || deps.Stats == nil {
		return nil, errors.New("journal, profile and stats services are required")
	}
	if location == nil {
		location = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		secretKey: []byte(strings.TrimSpace(secret)),
		location:  location,
		i18n:      deps.I18n,
		logger:    logger,
		now:       time.Now,
		journal:   deps.Journal,
		profiles:  deps.Profiles,
		stats:     deps.Stats,
	}, nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
