package query

import "time"

// Transaction is one already-joined record from the transaction store.
// Amount is kept as the store's text so a bad value only affects that record.
// A zero Date means the store had no date for it.
type Transaction struct {
	ID           string
	Amount       string
	Date         time.Time
	CategoryName string
	GroupName    string
}
