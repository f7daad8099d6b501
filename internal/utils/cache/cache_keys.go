package cache

import "fmt"

type EntityType string

const (
	EntityAccount EntityType = "account"
)

type KeyType string

const (
	KeyUsername KeyType = "username"
	KeyDeleted  KeyType = "deleted"
)

// Prefix namespaces every key written by this service.
const Prefix = "antifraud"

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%s:%v", Prefix, entity, keyType, value)
}

// AccountKey is the key of the cached credentials for a normalized username.
func AccountKey(usernameKey string) string {
	return GenerateKey(EntityAccount, KeyUsername, usernameKey)
}

// AccountTombstoneKey marks a normalized username whose account is being or
// was recently removed.
func AccountTombstoneKey(usernameKey string) string {
	return GenerateKey(EntityAccount, KeyDeleted, usernameKey)
}
