package entity

import "time"

// Client empresa cliente dueña de la mercadería a fumigar.
type Client struct {
	ID        string
	Name      string
	TaxID     string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Merchandise tipo de mercadería (grano) que se almacena en los depósitos.
type Merchandise struct {
	ID        string
	Name      string // trigo, soja, maíz, etc.
	CreatedAt time.Time
}
