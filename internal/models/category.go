package models

import "github.com/google/uuid"

// Group names a family of categories, e.g. "income" or "expense".
type Group struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"group_name"`
}

type Category struct {
	ID      uuid.UUID `db:"id"`
	GroupID uuid.UUID `db:"group_id"`
	Name    string    `db:"category_name"`
}
