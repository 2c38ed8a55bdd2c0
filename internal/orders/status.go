package orders

type Status string

const (
	StatusActive            Status = "Active"
	StatusCompleted         Status = "Completed"
	StatusCanceledByClient  Status = "Canceled_By_Client"
	StatusCanceledByCompany Status = "Canceled_By_Company"
)

// HoldsSeats reports whether an order in this status still claims its
// seats. Canceled orders have released them.
func (s Status) HoldsSeats() bool {
	return s == StatusActive || s == StatusCompleted
}
