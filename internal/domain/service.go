package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProtocolHTTP  string = "http"
	ProtocolHTTPS string = "https"
)

// Service is a registered service whose health is probed by the status API.
type Service struct {
	ID       string `json:"serviceId" yaml:"serviceId"`
	Name     string `json:"serviceName" yaml:"serviceName"`
	Address  string `json:"ipAddress" yaml:"ipAddress"`
	Port     int    `json:"port" yaml:"port"`
	Protocol string `json:"protocol" yaml:"protocol"`
}

// URL returns the address probed for the service.
func (s *Service) URL() string {
	return fmt.Sprintf("%s://%s:%d", s.Protocol, s.Address, s.Port)
}

func (s *Service) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("service id cannot be empty")
	}
	if strings.ContainsAny(s.ID, "/ ") {
		return errors.New("service id cannot contain '/' or spaces")
	}
	if s.Address == "" {
		return errors.New("service address cannot be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid service port %d", s.Port)
	}
	if s.Protocol != ProtocolHTTP && s.Protocol != ProtocolHTTPS {
		return fmt.Errorf("invalid service protocol %q", s.Protocol)
	}
	return nil
}
