package domain

// Identity is one authenticated user as issued by the identity provider.
// Key is the stable unique string carts are stored under.
type Identity struct {
	Key      string
	Email    string
	Verified bool
}
