package shoots

import "time"

// Shoot is one planned photography shoot. Owner holds the owning username
// directly rather than a foreign key, so shoots survive user deletion.
// GearList maps to a Postgres text[] and always serializes as a JSON array.
type Shoot struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Owner       string    `json:"owner"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	GearList    []string  `json:"gearList"`
	CreatedAt   time.Time `json:"createdAt"`
}
