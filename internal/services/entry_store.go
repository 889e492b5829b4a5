package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/models"
)

var (
	ErrPersistenceRead  = errors.New("persistence read failed")
	ErrPersistenceWrite = errors.New("persistence write failed")
)

const (
	historyKeyPrefix    = "nutrition-history-"
	nutriscoreKeyPrefix = "nutriscore-history-"
	profileKeyPrefix    = "user-profile-"
	searchKeyPrefix     = "search-history-"
	cartKeyPrefix       = "cart-"
	cartUsageKeyPrefix  = "cart-usage-"
)

// KeyValueStore is the string-keyed persistence the journal is written to.
// A missing key reports found=false with a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// EntryStore reads and writes per-user journal records. Load methods never
// fail: unreadable or malformed values are logged and replaced by defaults.
// Mutations run read-modify-write under a per-key lock and abort without
// writing when the current value cannot be read.
type EntryStore struct {
	store  KeyValueStore
	logger logrus.FieldLogger
	locks  *keyedMutex
}

func NewEntryStore(store KeyValueStore, logger logrus.FieldLogger) *EntryStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EntryStore{
		store:  store,
		logger: logger,
		locks:  newKeyedMutex(),
	}
}

func HistoryKey(userKey string) string    { return historyKeyPrefix + userKey }
func NutriscoreKey(userKey string) string { return nutriscoreKeyPrefix + userKey }
func ProfileKey(userKey string) string    { return profileKeyPrefix + userKey }
func SearchKey(userKey string) string     { return searchKeyPrefix + userKey }
func CartKey(userKey string) string       { return cartKeyPrefix + userKey }
func CartUsageKey(userKey string) string  { return cartUsageKeyPrefix + userKey }

func (store *EntryStore) LoadHistory(ctx context.Context, userKey string) models.NutritionHistory {
	history := models.NutritionHistory{}
	if !store.readJSON(ctx, HistoryKey(userKey), &history) || history == nil {
		return models.NutritionHistory{}
	}
	return history
}

func (store *EntryStore) SaveHistory(ctx context.Context, userKey string, history models.NutritionHistory) error {
	return store.writeJSON(ctx, HistoryKey(userKey), history)
}

// UpdateHistory applies mutate to the stored history and persists the result.
// Nothing is written when mutate returns an error.
func (store *EntryStore) UpdateHistory(ctx context.Context, userKey string, mutate func(models.NutritionHistory) error) (models.NutritionHistory, error) {
	key := HistoryKey(userKey)
	unlock := store.locks.Lock(key)
	defer unlock()

	history := models.NutritionHistory{}
	if err := store.readJSONStrict(ctx, key, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = models.NutritionHistory{}
	}
	if err := mutate(history); err != nil {
		return nil, err
	}
	if err := store.writeJSON(ctx, key, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (store *EntryStore) ClearHistory(ctx context.Context, userKey string) error {
	key := HistoryKey(userKey)
	unlock := store.locks.Lock(key)
	defer unlock()

	if err := store.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return nil
}

func (store *EntryStore) LoadNutriscoreEvents(ctx context.Context, userKey string) []models.NutriscoreEvent {
	events := make([]models.NutriscoreEvent, 0)
	if !store.readJSON(ctx, NutriscoreKey(userKey), &events) || events == nil {
		return []models.NutriscoreEvent{}
	}
	return events
}

func (store *EntryStore) AppendNutriscoreEvent(ctx context.Context, userKey string, event models.NutriscoreEvent) error {
	key := NutriscoreKey(userKey)
	unlock := store.locks.Lock(key)
	defer unlock()

	events := make([]models.NutriscoreEvent, 0)
	if err := store.readJSONStrict(ctx, key, &events); err != nil {
		return err
	}
	events = append(events, event)
	return store.writeJSON(ctx, key, events)
}

// LoadProfile returns nil when the user never saved a profile.
func (store *EntryStore) LoadProfile(ctx context.Context, userKey string) *models.UserProfile {
	var profile models.UserProfile
	if !store.readJSON(ctx, ProfileKey(userKey), &profile) {
		return nil
	}
	return &profile
}

func (store *EntryStore) SaveProfile(ctx context.Context, userKey string, profile models.UserProfile) error {
	key := ProfileKey(userKey)
	unlock := store.locks.Lock(key)
	defer unlock()

	return store.writeJSON(ctx, key, profile)
}

// LoadSearchHistory returns searches newest first, the order they are stored in.
func (store *EntryStore) LoadSearchHistory(ctx context.Context, userKey string) []models.SearchEntry {
	entries := make([]models.SearchEntry, 0)
	if !store.readJSON(ctx, SearchKey(userKey), &entries) || entries == nil {
		return []models.SearchEntry{}
	}
	return entries
}

func (store *EntryStore) PrependSearch(ctx context.Context, userKey string, entry models.SearchEntry) error {
	key := SearchKey(userKey)
	unlock := store.locks.Lock(key)
	defer unlock()

	entries := make([]models.SearchEntry, 0)
	if err := store.readJSONStrict(ctx, key, &entries); err != nil {
		return err
	}
	entries = append([]models.SearchEntry{entry}, entries...)
	return store.writeJSON(ctx, key, entries)
}

func (store *EntryStore) LoadCart(ctx context.Context, userKey string) []models.CartItem {
	items := make([]models.CartItem, 0)
	if !store.readJSON(ctx, CartKey(userKey), &items) || items == nil {
		return []models.CartItem{}
	}
	return items
}

func (store *EntryStore) LoadCartUsage(ctx context.Context, userKey string) models.CartUsage {
	usage := models.CartUsage{}
	if !store.readJSON(ctx, CartUsageKey(userKey), &usage) || usage == nil {
		return models.CartUsage{}
	}
	return usage
}

// AddCartItem bumps the per-store usage counter and appends the item. Items
// without a store are counted under "unknown". The counter is written first
// and restored when the cart write fails, so a failed call leaves both keys
// as they were.
func (store *EntryStore) AddCartItem(ctx context.Context, userKey string, item models.CartItem) error {
	cartKey := CartKey(userKey)
	usageKey := CartUsageKey(userKey)
	unlockCart := store.locks.Lock(cartKey)
	defer unlockCart()
	unlockUsage := store.locks.Lock(usageKey)
	defer unlockUsage()

	items := make([]models.CartItem, 0)
	if err := store.readJSONStrict(ctx, cartKey, &items); err != nil {
		return err
	}
	previousUsage, usageFound, err := store.store.Get(ctx, usageKey)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistenceRead, usageKey, err)
	}
	usage := models.CartUsage{}
	if usageFound && previousUsage != "" {
		if err := json.Unmarshal([]byte(previousUsage), &usage); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrPersistenceRead, usageKey, err)
		}
	}
	if usage == nil {
		usage = models.CartUsage{}
	}

	storeName := item.Magazin
	if storeName == "" {
		storeName = "unknown"
	}
	usage[storeName]++
	if err := store.writeJSON(ctx, usageKey, usage); err != nil {
		return err
	}

	items = append(items, item)
	if err := store.writeJSON(ctx, cartKey, items); err != nil {
		store.restore(ctx, usageKey, previousUsage, usageFound)
		return err
	}
	return nil
}

func (store *EntryStore) restore(ctx context.Context, key string, previous string, found bool) {
	var err error
	if found {
		err = store.store.Set(ctx, key, previous)
	} else {
		err = store.store.Remove(ctx, key)
	}
	if err != nil {
		store.logger.WithFields(logrus.Fields{"key": key, "error": err}).Error("restore after failed write")
	}
}

func (store *EntryStore) readJSON(ctx context.Context, key string, target any) bool {
	raw, found, err := store.store.Get(ctx, key)
	if err != nil {
		store.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn(ErrPersistenceRead.Error())
		return false
	}
	if !found || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		store.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("malformed stored value ignored")
		return false
	}
	return true
}

// readJSONStrict is the read half of a mutation. A missing key leaves target
// untouched; a failed or malformed read is returned so the caller skips the
// write instead of overwriting the stored value.
func (store *EntryStore) readJSONStrict(ctx context.Context, key string, target any) error {
	raw, found, err := store.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistenceRead, key, err)
	}
	if !found || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrPersistenceRead, key, err)
	}
	return nil
}

func (store *EntryStore) writeJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistenceWrite, key, err)
	}
	if err := store.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return nil
}
