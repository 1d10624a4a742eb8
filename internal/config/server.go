package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wrtgvr/statusboard/internal/logger"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type ServerConfig struct {
	Addr            string
	Storage         string
	ResponseTimeout time.Duration
	ShutdownTimeout time.Duration
	Log             logger.Config
}

type ProbeConfig struct {
	Timeout     time.Duration
	Concurrency int
}

const (
	defaultAddr             = ":8088"
	defaultResponseTimeout  = 5 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultProbeTimeout     = 3 * time.Second
	defaultProbeConcurrency = 16

	envVarAddr = "STATUSBOARD_ADDR"
)

var (
	// flags
	flagConfigPath       = flag.String("config", "", "path to the services file (yaml or json)")
	flagAddr             = flag.String("addr", "", "http listen address")
	flagStorage          = flag.String("storage", StorageMemory, "services storage: memory or redis")
	flagLocal            = flag.Bool("local", true, "use local redis defaults instead of REDIS_* env variables")
	flagLogLevel         = flag.String("log_level", "info", "log level")
	flagDebug            = flag.Bool("debug", false, "enable debug logging")
	flagLogOutput        = flag.String("log_output", logger.OutputStdout, "log output: stdout, stderr or console")
	flagProbeConcurrency = flag.Int("probe_concurrency", defaultProbeConcurrency, "max concurrent service probes")
)

func GetServerConfig() (*ServerConfig, error) {
	storage := *flagStorage
	if storage != StorageMemory && storage != StorageRedis {
		return nil, fmt.Errorf("invalid -storage %q, want %s or %s", storage, StorageMemory, StorageRedis)
	}

	return &ServerConfig{
		Addr:            getAddr(),
		Storage:         storage,
		ResponseTimeout: defaultResponseTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
		Log: logger.Config{
			Level:  *flagLogLevel,
			Debug:  *flagDebug,
			Output: *flagLogOutput,
		},
	}, nil
}

func GetProbeConfig() *ProbeConfig {
	concurrency := *flagProbeConcurrency
	if concurrency < 1 {
		concurrency = defaultProbeConcurrency
	}
	return &ProbeConfig{
		Timeout:     defaultProbeTimeout,
		Concurrency: concurrency,
	}
}

// LocalRedis reports whether the -local flag is set.
func LocalRedis() bool {
	return *flagLocal
}

func getAddr() string {
	if *flagAddr != "" {
		return *flagAddr
	}
	if addr := os.Getenv(envVarAddr); addr != "" {
		return addr
	}
	return defaultAddr
}
