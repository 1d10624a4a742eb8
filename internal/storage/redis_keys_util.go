package storage

import "fmt"

//* services

// ZSet, member=service id, score=registration sequence
func (s RedisStorage) key_Services() string {
	return "services"
}

// String counter
func (s RedisStorage) key_ServicesSeq() string {
	return "services:seq"
}

// String, set once the config services were registered
func (s RedisStorage) key_ServicesSeeded() string {
	return "services:seeded"
}

// HSet
func (s RedisStorage) key_ServiceInfo(serviceId string) string {
	return fmt.Sprintf("services:%s:info", serviceId)
}
