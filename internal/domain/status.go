package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	StatusUp   string = "up"
	StatusDown string = "down"
)

// ServiceStatus is the body of `GET /status/{id}`.
// Any status other than "up" is treated as down.
type ServiceStatus struct {
	ServiceName string `json:"service_name"`
	Status      string `json:"status"`
}

func (s ServiceStatus) IsUp() bool {
	return s.Status == StatusUp
}

// ServiceID is an opaque identifier from `GET /status`.
// The list endpoint may send strings or numbers; both keep their textual form.
type ServiceID string

func (id ServiceID) String() string {
	return string(id)
}

func (id *ServiceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ServiceID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("service id must be a string or number: %w", err)
	}
	if n == "" {
		return errors.New("service id cannot be null")
	}
	*id = ServiceID(n.String())
	return nil
}
