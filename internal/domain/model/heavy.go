package model

// HeavyProduct is a configured article name fragment marking bulky items.
type HeavyProduct struct {
	ID   int64
	Name string
}
