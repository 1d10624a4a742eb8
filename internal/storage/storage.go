package storage

import (
	"context"

	"github.com/wrtgvr/statusboard/internal/domain"
	errs "github.com/wrtgvr/statusboard/internal/errors"
)

type ServicesStorage interface {
	// Close storage connection
	Close() error
	// Services in registration order
	ListServices(ctx context.Context) (services []*domain.Service, appErr *errs.AppError)
	GetService(ctx context.Context, id string) (service *domain.Service, appErr *errs.AppError)
	// Add service. Empty id is replaced with a generated one.
	AddService(ctx context.Context, service *domain.Service) (added *domain.Service, appErr *errs.AppError)
	// Update service. Empty fields keep their current value.
	UpdateService(ctx context.Context, service *domain.Service) (updated *domain.Service, appErr *errs.AppError)
	DeleteService(ctx context.Context, id string) *errs.AppError
	// Whether the registry was already seeded from config
	Seeded(ctx context.Context) (bool, *errs.AppError)
	MarkSeeded(ctx context.Context) *errs.AppError
}

// Seed registers the config services the first time a storage is used.
// Later starts keep the registry as the api left it.
func Seed(ctx context.Context, s ServicesStorage, services []domain.Service) *errs.AppError {
	seeded, err := s.Seeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}

	for i := range services {
		svc := services[i]
		if _, err := s.GetService(ctx, svc.ID); err == nil {
			continue
		} else if err.Type != errs.TypeNotFound {
			return err
		}
		if _, err := s.AddService(ctx, &svc); err != nil {
			return err
		}
	}
	return s.MarkSeeded(ctx)
}

// merge fills empty fields of `patch` from `current`
func merge(current, patch *domain.Service) *domain.Service {
	out := *current
	if patch.Name != "" {
		out.Name = patch.Name
	}
	if patch.Address != "" {
		out.Address = patch.Address
	}
	if patch.Port != 0 {
		out.Port = patch.Port
	}
	if patch.Protocol != "" {
		out.Protocol = patch.Protocol
	}
	return &out
}
