package models

// User is the admin account. There is exactly one in practice; it is
// provisioned by the seed-admin command, never through the HTTP API.
type User struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"passwordHash" json:"-"`
}
