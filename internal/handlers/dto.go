package handlers

//* Request
type CreateServiceRequest struct {
	ID       string `json:"serviceId"`
	Name     string `json:"serviceName"`
	Address  string `json:"ipAddress"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

type UpdateServiceRequest struct {
	Name     string `json:"serviceName"`
	Address  string `json:"ipAddress"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

//* Response
type ServiceResponse struct {
	ID       string `json:"serviceId"`
	Name     string `json:"serviceName"`
	Address  string `json:"ipAddress"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

type ServiceStatusResponse struct {
	ServiceName string `json:"service_name"`
	Status      string `json:"status"`
}

type VersionResponse struct {
	Version string `json:"Version"`
}

type ProbeResponse struct {
	Status string `json:"status"`
}
