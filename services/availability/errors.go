// File: services/availability/errors.go
package availability

import "errors"

// ErrNotSlotOwner means the caller is not the doctor who owns the slot (or
// is not a doctor at all).
var ErrNotSlotOwner = errors.New("caller does not own this slot")
