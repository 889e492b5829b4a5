package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/terraincognita07/nutrilog/internal/models"
)

type keyValueStoreStub struct {
	mu        sync.Mutex
	values    map[string]string
	getErr    error
	setErr    error
	setErrFor map[string]error
	removeErr error
	setCalls  int
}

func newKeyValueStoreStub() *keyValueStoreStub {
	return &keyValueStoreStub{values: make(map[string]string)}
}

func (stub *keyValueStoreStub) Get(_ context.Context, key string) (string, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.getErr != nil {
		return "", false, stub.getErr
	}
	value, ok := stub.values[key]
	return value, ok, nil
}

func (stub *keyValueStoreStub) Set(_ context.Context, key string, value string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.setCalls++
	if stub.setErr != nil {
		return stub.setErr
	}
	if err := stub.setErrFor[key]; err != nil {
		return err
	}
	stub.values[key] = value
	return nil
}

func (stub *keyValueStoreStub) Remove(_ context.Context, key string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.removeErr != nil {
		return stub.removeErr
	}
	delete(stub.values, key)
	return nil
}

type eventPublisherStub struct {
	mu     sync.Mutex
	events []models.JournalEvent
}

func (stub *eventPublisherStub) Publish(_ context.Context, event models.JournalEvent) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.events = append(stub.events, event)
}

func (stub *eventPublisherStub) types() []string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	types := make([]string, 0, len(stub.events))
	for _, event := range stub.events {
		types = append(types, event.Type)
	}
	return types
}

func newEntryStoreForTest() (*EntryStore, *keyValueStoreStub, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	kv := newKeyValueStoreStub()
	return NewEntryStore(kv, logger), kv, hook
}
