package flights

type Status string

const (
	StatusActive   Status = "Active"
	StatusFull     Status = "Full"
	StatusLanded   Status = "Landed"
	StatusCanceled Status = "Canceled"
)

// Bookable reports whether new orders may target a flight in this status.
// Full stays bookable: a cancellation may have freed a seat, and Full is
// never auto-reverted to Active.
func (s Status) Bookable() bool {
	return s == StatusActive || s == StatusFull
}
