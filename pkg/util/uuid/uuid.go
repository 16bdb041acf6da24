// Package uuid derives the unique ids of Minecraft entities.
package uuid

import (
	"crypto/md5"
	"encoding/hex"

	guuid "github.com/google/uuid"
)

// OfflinePlayer returns the id a server in offline mode assigns to the
// player with username. It is a v3 uuid of "OfflinePlayer:"+username.
func OfflinePlayer(username string) guuid.UUID {
	const version = 3 // UUID v3
	id := md5.Sum([]byte("OfflinePlayer:" + username))
	id[6] = (id[6] & 0x0f) | uint8((version&0xf)<<4)
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// Undashed returns the undashed string form of id.
func Undashed(id guuid.UUID) string {
	return hex.EncodeToString(id[:])
}

// Parse decodes the dashed or undashed form of a uuid.
func Parse(s string) (guuid.UUID, error) {
	return guuid.Parse(s)
}
