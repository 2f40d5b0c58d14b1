package entity

// Hub is a pre-seeded venue/category record. Read-only from this
// application's perspective; mutations belong to the remote API.
type Hub struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Date        CustomDate `json:"date"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
}
