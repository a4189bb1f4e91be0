package models

// Product is a single fridge item belonging to one user. The expiry
// date ("ablauf") is a free-form string stored verbatim, never
// validated as a real date.
type Product struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ablauf string `json:"ablauf"`
}
