package models

import "time"

// Drink is a catalog entry (e.g. a beer) that barrels reference.
type Drink struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
