package booking

// Client-facing messages of the bookings API.
const (
	MsgMissingFields    = "Missing required fields"
	MsgSlotTaken        = "Time slot already booked"
	MsgNotFound         = "Booking not found"
	MsgFetchFailed      = "Failed to fetch bookings"
	MsgCreateFailed     = "Failed to create booking"
	MsgUpdateFailed     = "Failed to update booking"
	MsgDeleteFailed     = "Failed to delete booking"
	MsgCancelled        = "Booking cancelled successfully"
	MsgInvalidStatus    = "Invalid status"
	MsgInvalidDate      = "Invalid date, expected YYYY-MM-DD"
	MsgInvalidTime      = "Invalid time, expected HH:MM"
	MsgInvalidDuration  = "Duration must be a positive number of minutes"
	MsgInvalidPrice     = "Price must not be negative"
	MsgUnknownService   = "Unknown service for this provider"
	MsgModified         = "Booking was modified concurrently, retry"
	MsgCancelNotAllowed = "This provider does not allow cancellation"
	MsgCancelDeadline   = "The cancellation deadline has passed"
	MsgNotYourBooking   = "You can only cancel your own bookings"
)
