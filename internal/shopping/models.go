package shopping

import "time"

// DefaultListName is the canonical name of the single list created for every
// user on first contact.
const DefaultListName = "Основной список"

// User is a registered bot user.
type User struct {
	ID        int64
	Username  string
	FirstName string
	CreatedAt time.Time
}

// List is a named collection of products owned by one user.
type List struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// Product is a single shopping list entry.
type Product struct {
	ID       int64
	ListID   int64
	Name     string
	Quantity string
	Bought   bool
	AddedAt  time.Time
}

// Item is a product candidate that has not been persisted yet.
type Item struct {
	Name     string
	Quantity string
}

// Stats aggregates a user's products across all of their lists.
type Stats struct {
	Total     int
	Bought    int
	Remaining int
}
