package types

import "strings"

// DeliveryAddress is the destination captured on an order at checkout time.
// It is stored as a jsonb value and never normalized into its own table; the
// order is the permanent record of where it was sent.
type DeliveryAddress struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Phone         string `json:"phone"`
}

// MissingFields lists the required sub-fields that are absent, in a stable
// order suitable for validation details.
func (a DeliveryAddress) MissingFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"street_address", a.StreetAddress},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
		{"phone", a.Phone},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
