package inventory

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain"
	"stockroom/pkg/logger"
)

var tracer = otel.Tracer("stockroom/inventory")

// Action identifies a mutation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change describes a mutation passed to lifecycle hooks.
// Before is nil for adds, After is nil for deletes.
type Change struct {
	Action Action
	Before *Item
	After  *Item
}

// ItemID returns the id of the affected item, preferring the new state.
func (c Change) ItemID() string {
	if c.After != nil {
		return c.After.ID
	}
	if c.Before != nil {
		return c.Before.ID
	}
	return ""
}

// Service owns a Store for the lifetime of the process and makes it safe for
// concurrent callers. Mutations hold the write lock; hooks run under it.
type Service struct {
	mu    sync.RWMutex
	store *Store
	hooks *domain.HookRegistry[Change]
	log   *logger.Logger
}

// NewService creates a service around an empty store.
func NewService(log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		store: NewStore(),
		hooks: domain.NewHookRegistry[Change](),
		log:   log.WithComponent("inventory"),
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service) Hooks() *domain.HookRegistry[Change] {
	return s.hooks
}

// Validate checks d against the current collection.
func (s *Service) Validate(ctx context.Context, d Draft) error {
	_, span := tracer.Start(ctx, "inventory.validate", trace.WithAttributes(attribute.String("item.id", d.ID)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.finish(span, s.store.Validate(d))
}

// Add validates d and appends it.
func (s *Service) Add(ctx context.Context, d Draft) error {
	ctx, span := tracer.Start(ctx, "inventory.add", trace.WithAttributes(
		attribute.String("item.id", d.ID),
		attribute.String("item.name", d.Name),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Validate(d); err != nil {
		s.logRejected(ctx, ActionAdd, d.Name, err)
		return s.finish(span, err)
	}

	after := d.item()
	change := Change{Action: ActionAdd, After: &after}
	if err := s.hooks.Run(ctx, domain.BeforeCreate, change); err != nil {
		return s.finish(span, err)
	}

	if err := s.store.Add(d); err != nil {
		return s.finish(span, err)
	}
	s.log.WithContext(ctx).Infow("item added", "id", after.ID, "name", after.Name)

	s.runAfter(ctx, domain.AfterCreate, change)
	return s.finish(span, nil)
}

// FindByName returns the first item with the given name, ignoring case.
func (s *Service) FindByName(ctx context.Context, name string) (Item, error) {
	_, span := tracer.Start(ctx, "inventory.find", trace.WithAttributes(attribute.String("item.name", name)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.store.FindByName(name)
	return item, s.finish(span, err)
}

// UpdateByName fully replaces the first item named name with d.
func (s *Service) UpdateByName(ctx context.Context, name string, d Draft) error {
	ctx, span := tracer.Start(ctx, "inventory.update", trace.WithAttributes(
		attribute.String("item.name", name),
		attribute.String("item.id", d.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.store.indexByName(name)
	if i < 0 {
		err := errNotFound(name)
		s.logRejected(ctx, ActionUpdate, name, err)
		return s.finish(span, err)
	}
	if err := s.store.validate(d, i); err != nil {
		s.logRejected(ctx, ActionUpdate, name, err)
		return s.finish(span, err)
	}

	before := s.store.items[i].clone()
	after := d.item()
	change := Change{Action: ActionUpdate, Before: &before, After: &after}
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, change); err != nil {
		return s.finish(span, err)
	}

	if err := s.store.UpdateByName(name, d); err != nil {
		return s.finish(span, err)
	}
	s.log.WithContext(ctx).Infow("item updated", "name", name, "id", after.ID)

	s.runAfter(ctx, domain.AfterUpdate, change)
	return s.finish(span, nil)
}

// DeleteByName removes the first item named name when confirmed is true.
func (s *Service) DeleteByName(ctx context.Context, name string, confirmed bool) error {
	ctx, span := tracer.Start(ctx, "inventory.delete", trace.WithAttributes(
		attribute.String("item.name", name),
		attribute.Bool("confirmed", confirmed),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return s.finish(span, s.store.DeleteByName(name, false))
	}

	before, err := s.store.FindByName(name)
	if err != nil {
		s.logRejected(ctx, ActionDelete, name, err)
		return s.finish(span, err)
	}

	change := Change{Action: ActionDelete, Before: &before}
	if err := s.hooks.Run(ctx, domain.BeforeDelete, change); err != nil {
		return s.finish(span, err)
	}

	if err := s.store.DeleteByName(name, true); err != nil {
		return s.finish(span, err)
	}
	s.log.WithContext(ctx).Infow("item deleted", "name", name, "id", before.ID)

	s.runAfter(ctx, domain.AfterDelete, change)
	return s.finish(span, nil)
}

// SearchByName returns items whose name contains substr, ignoring case.
func (s *Service) SearchByName(ctx context.Context, substr string) []Item {
	_, span := tracer.Start(ctx, "inventory.search", trace.WithAttributes(attribute.String("query", substr)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.store.SearchByName(substr)
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items
}

// ListAll returns every item in insertion order.
func (s *Service) ListAll(ctx context.Context) []Item {
	_, span := tracer.Start(ctx, "inventory.list")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListAll()
}

// ListPopular returns the popular items in insertion order.
func (s *Service) ListPopular(ctx context.Context) []Item {
	_, span := tracer.Start(ctx, "inventory.list_popular")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListPopular()
}

// Count returns the number of items.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Len()
}

// runAfter executes after-hooks. The mutation is already applied, so failures
// are logged and swallowed.
func (s *Service) runAfter(ctx context.Context, event domain.HookEvent, change Change) {
	if err := s.hooks.Run(ctx, event, change); err != nil {
		s.log.WithContext(ctx).Warnw("after hook failed",
			"event", string(event),
			"id", change.ItemID(),
			"error", err,
		)
	}
}

func (s *Service) logRejected(ctx context.Context, action Action, key string, err error) {
	s.log.WithContext(ctx).Debugw("mutation rejected",
		"action", string(action),
		"key", key,
		"code", apperror.CodeOf(err),
	)
}

// finish records err on span and returns it unchanged.
func (s *Service) finish(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperror.CodeOf(err))
	}
	return err
}
