// Package catalog holds the fixed list of ticket types sold at the
// park. The list is defined at build time and is not user-extensible.
package catalog

// TicketType describes one purchasable ticket. BasePrice is in whole
// currency units per person.
type TicketType struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	BasePrice       int    `json:"base_price"`
	Validity        string `json:"validity"`
	DefaultDiscount string `json:"default_discount"`
	Restrictions    string `json:"restrictions"`
}

var ticketTypes = []TicketType{
	{
		Name:            "Single-Day Pass",
		Description:     "Access to the park for one day",
		BasePrice:       275,
		Validity:        "1 Day",
		DefaultDiscount: "None",
		Restrictions:    "Valid only on selected date",
	},
	{
		Name:            "Two-Day Pass",
		Description:     "Access to the park for two consecutive days",
		BasePrice:       480,
		Validity:        "2 Days",
		DefaultDiscount: "10% discount for online purchase",
		Restrictions:    "Cannot be split over multiple trips",
	},
	{
		Name:            "Annual Membership",
		Description:     "Unlimited access for one year",
		BasePrice:       1840,
		Validity:        "1 Year",
		DefaultDiscount: "15% discount on renewal",
		Restrictions:    "Must be used by the same person",
	},
	{
		Name:            "Child Ticket",
		Description:     "Discounted ticket for children (ages 3-12)",
		BasePrice:       185,
		Validity:        "1 Day",
		DefaultDiscount: "None",
		Restrictions:    "Valid only on selected date must be accompanied by an adult",
	},
	{
		Name:            "Group Ticket (10+)",
		Description:     "Special rate for groups of 10 or more",
		BasePrice:       220,
		Validity:        "1 Day",
		DefaultDiscount: "20% off for groups of 20 or more",
		Restrictions:    "Must be booked in advance",
	},
	{
		Name:            "VIP Experience Pass",
		Description:     "Includes expedited access and reserved seating for shows",
		BasePrice:       550,
		Validity:        "1 Day",
		DefaultDiscount: "None",
		Restrictions:    "Limited availability must be purchased in advance",
	},
}

// All returns every ticket type in catalog order.
func All() []TicketType {
	out := make([]TicketType, len(ticketTypes))
	copy(out, ticketTypes)
	return out
}

// Lookup finds a ticket type by its exact name.
func Lookup(name string) (TicketType, bool) {
	for _, t := range ticketTypes {
		if t.Name == name {
			return t, true
		}
	}
	return TicketType{}, false
}
