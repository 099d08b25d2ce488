package domain

import "time"

// Customer buys finished goods through orders.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedOn time.Time `json:"created_on"`
}
