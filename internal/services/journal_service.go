package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/nutrilog/internal/models"
)

var (
	ErrInvalidEntryInput = errors.New("invalid entry input")
	ErrInvalidDay        = errors.New("invalid day")
	ErrEntryNotFound     = errors.New("entry not found")
	ErrInvalidMood       = errors.New("invalid mood")
	ErrInvalidSearch     = errors.New("invalid search query")
	ErrInvalidCartItem   = errors.New("invalid cart item")
)

const (
	MaxProductNameLength = 200
	MaxSearchQueryLength = 200
	MaxPortionSize       = 5000.0
)

// JournalEventPublisher receives events after successful writes. It must not
// block and has no way to fail the write.
type JournalEventPublisher interface {
	Publish(ctx context.Context, event models.JournalEvent)
}

type EntryInput struct {
	Date         string
	Product      string
	Brand        string
	PortionSize  float64
	Nutrients    ExtractedNutrients
	RawNutrients map[string]float64
	NutriScore   string
	Nova         string
}

type DayReport struct {
	Date       string                    `json:"date"`
	Entries    []models.ConsumptionEntry `json:"entries"`
	Totals     DailyTotals               `json:"totals"`
	Limits     models.PersonalLimits     `json:"limits"`
	HasProfile bool                      `json:"hasProfile"`
	Warnings   []Insight                 `json:"warnings"`
	Insights   []Insight                 `json:"insights"`
}

type JournalService struct {
	store  *EntryStore
	events JournalEventPublisher
}

func NewJournalService(store *EntryStore, events JournalEventPublisher) *JournalService {
	return &JournalService{
		store:  store,
		events: events,
	}
}

// NormalizeEntryInput resolves the target day and the portion nutrients. Raw
// nutrient tables take precedence over explicit values.
func NormalizeEntryInput(input EntryInput, now time.Time, location *time.Location) (models.ConsumptionEntry, string, error) {
	day := DayKey(now, location)
	if date := strings.TrimSpace(input.Date); date != "" {
		parsed, err := ParseDayKey(date, location)
		if err != nil {
			return models.ConsumptionEntry{}, "", ErrInvalidDay
		}
		day = parsed.Format(DayKeyLayout)
	}

	product := strings.TrimSpace(input.Product)
	if product == "" || utf8.RuneCountInString(product) > MaxProductNameLength {
		return models.ConsumptionEntry{}, "", ErrInvalidEntryInput
	}

	portion := input.PortionSize
	if portion == 0 {
		portion = models.DefaultPortionSize
	}
	if math.IsNaN(portion) || portion <= 0 || portion > MaxPortionSize {
		return models.ConsumptionEntry{}, "", ErrInvalidEntryInput
	}

	nutrients := input.Nutrients
	if len(input.RawNutrients) > 0 {
		nutrients = ExtractNutrients(input.RawNutrients, portion)
	}
	nutrients = nutrients.Rounded()
	for _, value := range []float64{nutrients.Calorii, nutrients.Sare, nutrients.Zahar, nutrients.Grasimi, nutrients.Proteine, nutrients.Fibre} {
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return models.ConsumptionEntry{}, "", ErrInvalidEntryInput
		}
	}

	var score models.NutriScore
	if raw := strings.TrimSpace(input.NutriScore); raw != "" {
		normalized, ok := models.NormalizeNutriScore(raw)
		if !ok {
			return models.ConsumptionEntry{}, "", ErrInvalidEntryInput
		}
		score = normalized
	}

	nova := strings.TrimSpace(input.Nova)
	switch nova {
	case "", "1", "2", "3", "4":
	default:
		return models.ConsumptionEntry{}, "", ErrInvalidEntryInput
	}

	return models.ConsumptionEntry{
		Timestamp:   now.UnixMilli(),
		Product:     product,
		Brand:       strings.TrimSpace(input.Brand),
		PortionSize: portion,
		Calorii:     nutrients.Calorii,
		Sare:        nutrients.Sare,
		Zahar:       nutrients.Zahar,
		Grasimi:     nutrients.Grasimi,
		Proteine:    nutrients.Proteine,
		Fibre:       nutrients.Fibre,
		NutriScore:  score,
		Nova:        nova,
	}, day, nil
}

// AppendEntry adds the entry at the end of its day and returns it with a
// fresh id.
func (service *JournalService) AppendEntry(ctx context.Context, userKey string, input EntryInput, now time.Time, location *time.Location) (models.ConsumptionEntry, string, error) {
	entry, day, err := NormalizeEntryInput(input, now, location)
	if err != nil {
		return models.ConsumptionEntry{}, "", err
	}
	entry.ID = uuid.NewString()

	if _, err := service.store.UpdateHistory(ctx, userKey, func(history models.NutritionHistory) error {
		history[day] = append(history[day], entry)
		return nil
	}); err != nil {
		return models.ConsumptionEntry{}, "", err
	}

	service.publish(ctx, models.EventEntryLogged, userKey, now, map[string]any{"date": day, "entry": entry})
	return entry, day, nil
}

// AttachMood records feedback in place on the entry with the given id. The
// mood timestamp never precedes the entry timestamp.
func (service *JournalService) AttachMood(ctx context.Context, userKey string, entryID string, rawMood string, now time.Time) (models.ConsumptionEntry, error) {
	mood, ok := models.ParseMood(rawMood)
	if !ok {
		return models.ConsumptionEntry{}, ErrInvalidMood
	}
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return models.ConsumptionEntry{}, ErrEntryNotFound
	}

	var updated models.ConsumptionEntry
	_, err := service.store.UpdateHistory(ctx, userKey, func(history models.NutritionHistory) error {
		for day, entries := range history {
			for index := range entries {
				if entries[index].ID != entryID {
					continue
				}
				moodTimestamp := now.UnixMilli()
				if moodTimestamp < entries[index].Timestamp {
					moodTimestamp = entries[index].Timestamp
				}
				entries[index].MoodAfterConsumption = mood
				entries[index].MoodTimestamp = moodTimestamp
				history[day] = entries
				updated = entries[index]
				return nil
			}
		}
		return ErrEntryNotFound
	})
	if err != nil {
		return models.ConsumptionEntry{}, err
	}

	service.publish(ctx, models.EventMoodRecorded, userKey, now, updated)
	return updated, nil
}

// ListDays returns logged days, newest first.
func (service *JournalService) ListDays(ctx context.Context, userKey string) []string {
	return LoggedDates(service.store.LoadHistory(ctx, userKey))
}

// DayReport aggregates one day with warnings against the user's limits. An
// empty day yields zero totals and no warnings.
func (service *JournalService) DayReport(ctx context.Context, userKey string, day string, location *time.Location) (DayReport, error) {
	parsed, err := ParseDayKey(strings.TrimSpace(day), location)
	if err != nil {
		return DayReport{}, ErrInvalidDay
	}
	day = parsed.Format(DayKeyLayout)

	history := service.store.LoadHistory(ctx, userKey)
	stored := service.store.LoadProfile(ctx, userKey)
	profile := usableProfile(stored)
	limits := LimitsForProfile(profile)

	entries := history[day]
	if entries == nil {
		entries = []models.ConsumptionEntry{}
	}
	totals := BuildDailyTotals(day, entries, limits)

	report := DayReport{
		Date:       day,
		Entries:    entries,
		Totals:     totals,
		Limits:     limits,
		HasProfile: stored != nil,
		Warnings:   DailyWarnings(totals.Totals, limits, profile),
		Insights:   []Insight{},
	}
	if len(entries) > 0 {
		report.Insights = DailyInsights(totals.Totals, limits, history)
	}
	return report, nil
}

func (service *JournalService) ClearHistory(ctx context.Context, userKey string, now time.Time) error {
	if err := service.store.ClearHistory(ctx, userKey); err != nil {
		return err
	}
	service.publish(ctx, models.EventHistoryCleared, userKey, now, nil)
	return nil
}

// RecordScan appends a NutriScore lookup. Products without a recognised
// grade are kept as scanned so the event count stays complete.
func (service *JournalService) RecordScan(ctx context.Context, userKey string, rawScore string, now time.Time) (models.NutriscoreEvent, error) {
	score := models.NutriScore(strings.TrimSpace(rawScore))
	if normalized, ok := models.NormalizeNutriScore(rawScore); ok {
		score = normalized
	}
	event := models.NutriscoreEvent{Timestamp: now.UnixMilli(), NutriScore: score}
	if err := service.store.AppendNutriscoreEvent(ctx, userKey, event); err != nil {
		return models.NutriscoreEvent{}, err
	}
	return event, nil
}

func (service *JournalService) RecordSearch(ctx context.Context, userKey string, query string, now time.Time) (models.SearchEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" || utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return models.SearchEntry{}, ErrInvalidSearch
	}
	entry := models.SearchEntry{Query: query, Timestamp: now.UnixMilli()}
	if err := service.store.PrependSearch(ctx, userKey, entry); err != nil {
		return models.SearchEntry{}, err
	}
	return entry, nil
}

func (service *JournalService) AddToCart(ctx context.Context, userKey string, item models.CartItem) (models.CartItem, error) {
	item.Titlu = strings.TrimSpace(item.Titlu)
	item.Magazin = strings.TrimSpace(item.Magazin)
	item.Pret = strings.TrimSpace(item.Pret)
	if item.Titlu == "" {
		return models.CartItem{}, ErrInvalidCartItem
	}
	if err := service.store.AddCartItem(ctx, userKey, item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

func (service *JournalService) publish(ctx context.Context, eventType string, userKey string, now time.Time, payload any) {
	if service.events == nil {
		return
	}
	service.events.Publish(ctx, models.JournalEvent{
		Type:       eventType,
		UserKey:    userKey,
		OccurredAt: now.UnixMilli(),
		Payload:    payload,
	})
}
