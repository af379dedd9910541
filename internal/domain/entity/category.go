package entity

import "time"

// Category agrupa productos. Se crea bajo demanda por nombre (importación o alta manual).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
