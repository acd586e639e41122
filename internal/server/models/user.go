package models

// User is a row of the users table. Key is the lowercase hex form of the
// authentication key and Vault the client's opaque hex blob.
type User struct {
	ID    int64
	Email string
	Key   string
	Vault string
}
