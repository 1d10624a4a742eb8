package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wrtgvr/statusboard/internal/domain"
	errs "github.com/wrtgvr/statusboard/internal/errors"
)

// MemoryStorage keeps services in process memory. It backs the default
// config-file registry.
type MemoryStorage struct {
	mu          sync.RWMutex
	order       []string
	services    map[string]domain.Service
	maxServices int
	seeded      bool
}

func NewMemoryStorage(maxServices int) *MemoryStorage {
	return &MemoryStorage{
		services:    make(map[string]domain.Service),
		maxServices: maxServices,
	}
}

func (s *MemoryStorage) Close() error {
	return nil
}

func (s *MemoryStorage) ListServices(_ context.Context) ([]*domain.Service, *errs.AppError) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Service, 0, len(s.order))
	for _, id := range s.order {
		svc := s.services[id]
		out = append(out, &svc)
	}
	return out, nil
}

func (s *MemoryStorage) GetService(_ context.Context, id string) (*domain.Service, *errs.AppError) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, errs.NewServiceNotFound(id)
	}
	return &svc, nil
}

func (s *MemoryStorage) AddService(_ context.Context, svc *domain.Service) (*domain.Service, *errs.AppError) {
	added := *svc
	if added.ID == "" {
		added.ID = uuid.New().String()
	}
	if err := added.Validate(); err != nil {
		return nil, errs.NewBadRequest(err, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) >= s.maxServices {
		return nil, errs.NewConflict(nil, fmt.Sprintf("too many services, amount=%d", len(s.order)))
	}
	if _, ok := s.services[added.ID]; ok {
		return nil, errs.NewConflict(nil, fmt.Sprintf("service already exists: id=%s", added.ID))
	}

	s.services[added.ID] = added
	s.order = append(s.order, added.ID)

	return &added, nil
}

func (s *MemoryStorage) UpdateService(_ context.Context, svc *domain.Service) (*domain.Service, *errs.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.services[svc.ID]
	if !ok {
		return nil, errs.NewServiceNotFound(svc.ID)
	}

	updated := merge(&current, svc)
	if err := updated.Validate(); err != nil {
		return nil, errs.NewBadRequest(err, err.Error())
	}
	s.services[svc.ID] = *updated

	return updated, nil
}

func (s *MemoryStorage) DeleteService(_ context.Context, id string) *errs.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return errs.NewServiceNotFound(id)
	}
	delete(s.services, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStorage) Seeded(_ context.Context) (bool, *errs.AppError) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded, nil
}

func (s *MemoryStorage) MarkSeeded(_ context.Context) *errs.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = true
	return nil
}
