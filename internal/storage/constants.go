package storage

// HSet Keys
const (
	//* service

	// Service HSet field for display name
	Service_HSet_Name = "name"
	// Service HSet field for probed address
	Service_HSet_Address = "address"
	// Service HSet field for probed port
	Service_HSet_Port = "port"
	// Service HSet field for probe protocol
	Service_HSet_Protocol = "protocol"
)
