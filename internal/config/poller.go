package config

import (
	"flag"
	"net"
	"os"
	"time"
)

type PollerConfig struct {
	BaseURL        string
	Interval       time.Duration
	RequestTimeout time.Duration
	Workers        int
}

const (
	// fixed, not exposed as a flag or env variable
	PollInterval = 30 * time.Second

	defaultPollerBaseURL = "http://127.0.0.1" + defaultAddr
	defaultPollerTimeout = 10 * time.Second
	defaultPollerWorkers = 8

	envVarPollerBaseURL = "POLLER_BASE_URL"
)

var (
	// flags
	flagPollerBaseURL = flag.String("poller_base_url", "", "base url of the status api polled by the dashboard")
	flagPollerWorkers = flag.Int("poller_workers", defaultPollerWorkers, "max concurrent status fetches")
)

// GetPollerConfig reads poller settings. Without -poller_base_url or
// POLLER_BASE_URL the poller reads the status api this process serves on
// listenAddr.
func GetPollerConfig(listenAddr string) *PollerConfig {
	workers := *flagPollerWorkers
	if workers < 1 {
		workers = defaultPollerWorkers
	}
	return &PollerConfig{
		BaseURL:        getPollerBaseURL(listenAddr),
		Interval:       PollInterval,
		RequestTimeout: defaultPollerTimeout,
		Workers:        workers,
	}
}

func getPollerBaseURL(listenAddr string) string {
	if *flagPollerBaseURL != "" {
		return *flagPollerBaseURL
	}
	if url := os.Getenv(envVarPollerBaseURL); url != "" {
		return url
	}
	return localBaseURL(listenAddr)
}

// localBaseURL turns a listen address like ":9090" or "0.0.0.0:9090" into
// a url reachable from this host.
func localBaseURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil || port == "" {
		return defaultPollerBaseURL
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
