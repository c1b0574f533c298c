package models

// Address is a saved delivery address from the user's address book. Identity
// is the client-generated ID; everything else is freeform text.
type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}
