package reports

// OccupancyReport is the system-wide seat fill rate alongside the per
// flight breakdown it is averaged from.
type OccupancyReport struct {
	AverageOccupancy float64           `json:"average_occupancy"`
	Flights          []FlightOccupancy `json:"flights"`
}

type FlightOccupancy struct {
	FlightID    string  `json:"flight_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Booked      int     `json:"booked"`
	Capacity    int     `json:"capacity"`
	Occupancy   float64 `json:"occupancy"`
}

// RouteRevenue sums what non-canceled orders paid on one route.
type RouteRevenue struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
}

// StaffHours is the accumulated flight time of one crew member.
type StaffHours struct {
	IDNumber   string  `json:"id_number"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       string  `json:"role"`
	Flights    int     `json:"flights"`
	TotalHours float64 `json:"total_hours"`
}
