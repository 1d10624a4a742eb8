package storage

import (
	"context"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/wrtgvr/statusboard/internal/domain"
)

// * services
func (s *RedisStorage) setService_AddToPipe(ctx context.Context, pipe redis.Pipeliner, svc *domain.Service) {
	pipe.HSet(ctx, s.key_ServiceInfo(svc.ID),
		Service_HSet_Name, svc.Name,
		Service_HSet_Address, svc.Address,
		Service_HSet_Port, svc.Port,
		Service_HSet_Protocol, svc.Protocol)
}

func (s *RedisStorage) addService_AddToPipe(ctx context.Context, pipe redis.Pipeliner, svc *domain.Service, seq int64) {
	pipe.ZAdd(ctx, s.key_Services(), redis.Z{
		Score:  float64(seq),
		Member: svc.ID,
	})
	s.setService_AddToPipe(ctx, pipe, svc)
}

func (s *RedisStorage) deleteService_AddToPipe(ctx context.Context, pipe redis.Pipeliner, serviceId string) {
	pipe.ZRem(ctx, s.key_Services(), serviceId)
	pipe.Del(ctx, s.key_ServiceInfo(serviceId))
}

// serviceFromHash returns false when a required field is missing
func serviceFromHash(id string, info map[string]string) (*domain.Service, bool) {
	if info[Service_HSet_Address] == "" {
		return nil, false
	}
	port, err := strconv.Atoi(info[Service_HSet_Port])
	if err != nil {
		return nil, false
	}
	return &domain.Service{
		ID:       id,
		Name:     info[Service_HSet_Name],
		Address:  info[Service_HSet_Address],
		Port:     port,
		Protocol: info[Service_HSet_Protocol],
	}, true
}
