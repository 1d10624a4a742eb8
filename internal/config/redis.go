package config

import (
	"fmt"
	"os"
	"strconv"
)

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MaxServices int64
}

const (
	// constants
	maxServices = 100
	// env variables names
	envVarRedisAddr = "REDIS_ADDR"
	envVarRedisPass = "REDIS_PASS"
	envVarRedisDB   = "REDIS_DB"
	// variables for local env
	localRedisAddr = "localhost:6379"
	localRedisPass = ""
	localRedisDB   = 0
)

func GetRedisConfig(local bool) (*RedisConfig, error) {
	if local {
		return &RedisConfig{
			Addr:        localRedisAddr,
			Password:    localRedisPass,
			DB:          localRedisDB,
			MaxServices: maxServices,
		}, nil
	}

	addr, err := getRedisAddr()
	if err != nil {
		return nil, err
	}
	db, err := getRedisDB()
	if err != nil {
		return nil, err
	}

	return &RedisConfig{
		Addr:        addr,
		Password:    os.Getenv(envVarRedisPass),
		DB:          db,
		MaxServices: maxServices,
	}, nil
}

func getRedisAddr() (string, error) {
	addr := os.Getenv(envVarRedisAddr)
	if addr == "" {
		return "", fmt.Errorf("required %s env variable is empty", envVarRedisAddr)
	}
	return addr, nil
}

func getRedisDB() (int, error) {
	dbStr := os.Getenv(envVarRedisDB)
	if dbStr == "" {
		return 0, nil
	}
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		return 0, fmt.Errorf("failed to convert %s env variable to int. %s=%v. Err=%w", envVarRedisDB, envVarRedisDB, dbStr, err)
	}
	return db, nil
}
