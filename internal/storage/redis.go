package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	errs "github.com/wrtgvr/statusboard/internal/errors"
	"github.com/wrtgvr/statusboard/internal/logger"
)

type RedisStorage struct {
	client      *redis.Client
	maxServices int64
	log         zerolog.Logger
}

func NewRedisStorage(cfg *config.RedisConfig) *RedisStorage {
	return NewRedisStorageWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.MaxServices)
}

func NewRedisStorageWithClient(client *redis.Client, maxServices int64) *RedisStorage {
	return &RedisStorage{
		client:      client,
		maxServices: maxServices,
		log:         logger.WithComponent("storage"),
	}
}

// Ping checks the redis connection.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func (s *RedisStorage) ListServices(ctx context.Context) ([]*domain.Service, *errs.AppError) {
	//* get ids of services
	ids, err := s.client.ZRange(ctx, s.key_Services(), 0, -1).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get services ids: err=%w", err))
	}

	//* prepare pipeline
	pipe := s.client.Pipeline()

	cmds := make(map[string]*redis.MapStringStringCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.HGetAll(ctx, s.key_ServiceInfo(id))
	}

	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, errs.NewInternalError(fmt.Errorf("failed to execute pipeline: %w", err))
		}
	}

	//* get result
	services := make([]*domain.Service, 0, len(ids))
	failed := 0
	for _, id := range ids {
		info, err := cmds[id].Result()
		if err != nil {
			s.log.Warn().Err(err).Str("service_id", id).Msg("failed to get service")
			failed++
			continue
		}

		svc, ok := serviceFromHash(id, info)
		if !ok {
			s.log.Warn().Str("service_id", id).Msg("service is missing required fields")
			failed++
			continue
		}
		services = append(services, svc)
	}

	if failed > 0 {
		s.log.Warn().Int("failed", failed).Msg("failed to load services")
	}

	return services, nil
}

func (s *RedisStorage) GetService(ctx context.Context, id string) (*domain.Service, *errs.AppError) {
	info, err := s.client.HGetAll(ctx, s.key_ServiceInfo(id)).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get service info: id=%s, err=%w", id, err))
	}
	// HGetAll returns an empty map for missing keys
	if len(info) == 0 {
		return nil, errs.NewServiceNotFound(id)
	}

	svc, ok := serviceFromHash(id, info)
	if !ok {
		return nil, errs.NewInternalError(fmt.Errorf("service is missing required fields: id=%s", id))
	}
	return svc, nil
}

func (s *RedisStorage) AddService(ctx context.Context, svc *domain.Service) (*domain.Service, *errs.AppError) {
	added := *svc
	if added.ID == "" {
		added.ID = uuid.New().String()
	}
	if err := added.Validate(); err != nil {
		return nil, errs.NewBadRequest(err, err.Error())
	}

	//* check if theres maximum amount of services
	count, err := s.client.ZCard(ctx, s.key_Services()).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get amount of services: err=%w", err))
	}
	if count >= s.maxServices {
		return nil, errs.NewConflict(nil, fmt.Sprintf("too many services, amount=%d", count))
	}

	//* check for duplicate
	exists, err := s.client.Exists(ctx, s.key_ServiceInfo(added.ID)).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to check service: id=%s, err=%w", added.ID, err))
	}
	if exists > 0 {
		return nil, errs.NewConflict(nil, fmt.Sprintf("service already exists: id=%s", added.ID))
	}

	seq, err := s.client.Incr(ctx, s.key_ServicesSeq()).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get service sequence: err=%w", err))
	}

	//* add service
	pipe := s.client.TxPipeline()
	s.addService_AddToPipe(ctx, pipe, &added, seq)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("pipe execution failed err=%w", err))
	}

	return &added, nil
}

func (s *RedisStorage) UpdateService(ctx context.Context, svc *domain.Service) (*domain.Service, *errs.AppError) {
	//* get current service
	current, appErr := s.GetService(ctx, svc.ID)
	if appErr != nil {
		return nil, appErr
	}

	//* empty fields keep current values
	updated := merge(current, svc)
	if err := updated.Validate(); err != nil {
		return nil, errs.NewBadRequest(err, err.Error())
	}

	pipe := s.client.TxPipeline()
	s.setService_AddToPipe(ctx, pipe, updated)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to update service: id=%s, err=%w", svc.ID, err))
	}

	return updated, nil
}

func (s *RedisStorage) DeleteService(ctx context.Context, id string) *errs.AppError {
	if err := s.client.ZScore(ctx, s.key_Services(), id).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return errs.NewServiceNotFound(id)
		}
		return errs.NewInternalError(fmt.Errorf("id=%s, err=%w", id, err))
	}

	pipe := s.client.TxPipeline()
	s.deleteService_AddToPipe(ctx, pipe, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewInternalError(fmt.Errorf("id=%s, err=%w", id, err))
	}

	return nil
}

func (s *RedisStorage) Seeded(ctx context.Context) (bool, *errs.AppError) {
	n, err := s.client.Exists(ctx, s.key_ServicesSeeded()).Result()
	if err != nil {
		return false, errs.NewInternalError(fmt.Errorf("failed to check seed marker: err=%w", err))
	}
	return n > 0, nil
}

func (s *RedisStorage) MarkSeeded(ctx context.Context) *errs.AppError {
	if err := s.client.Set(ctx, s.key_ServicesSeeded(), "1", 0).Err(); err != nil {
		return errs.NewInternalError(fmt.Errorf("failed to set seed marker: err=%w", err))
	}
	return nil
}
