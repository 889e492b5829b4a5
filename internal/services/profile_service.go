package services

import (
	"context"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
)

type ProfileService struct {
	store  *EntryStore
	events JournalEventPublisher
}

func NewProfileService(store *EntryStore, events JournalEventPublisher) *ProfileService {
	return &ProfileService{
		store:  store,
		events: events,
	}
}

// Load returns the stored profile, or nil, with the limits derived from it.
// A stored profile that no longer validates is returned as is but gets the
// default limits.
func (service *ProfileService) Load(ctx context.Context, userKey string) (*models.UserProfile, models.PersonalLimits) {
	profile := service.store.LoadProfile(ctx, userKey)
	return profile, LimitsForProfile(profile)
}

func (service *ProfileService) Limits(ctx context.Context, userKey string) models.PersonalLimits {
	_, limits := service.Load(ctx, userKey)
	return limits
}

func (service *ProfileService) Save(ctx context.Context, userKey string, profile models.UserProfile, now time.Time) (models.UserProfile, models.PersonalLimits, error) {
	normalized, err := NormalizeProfile(profile)
	if err != nil {
		return models.UserProfile{}, models.PersonalLimits{}, err
	}
	if err := service.store.SaveProfile(ctx, userKey, normalized); err != nil {
		return models.UserProfile{}, models.PersonalLimits{}, err
	}

	limits := CalculatePersonalLimits(normalized)
	if service.events != nil {
		service.events.Publish(ctx, models.JournalEvent{
			Type:       models.EventProfileUpdated,
			UserKey:    userKey,
			OccurredAt: now.UnixMilli(),
			Payload:    map[string]any{"profile": normalized, "limits": limits},
		})
	}
	return normalized, limits, nil
}
