package domain

import "time"

// TransactionCategory groups transactions of one user. Categories are
// soft-deleted: a deleted category is hidden from listings and cannot be
// attached to new transactions, but its id stays valid for history.
type TransactionCategory struct {
	ID        string
	UserID    string
	Title     string
	Kind      TransactionType // optional; empty means any type
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UncategorizedTitle is the bucket name used in category aggregation for
// transactions without a category.
const UncategorizedTitle = "uncategorized"
