package models

// ContactRecord is the structured result of one upload. Every field is always
// present; a value that wasn't detected is the empty string.
type ContactRecord struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Street  string `json:"street"`
	Floor   string `json:"floor"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// IsEmpty reports whether no field was populated.
func (c ContactRecord) IsEmpty() bool {
	return c == ContactRecord{}
}
