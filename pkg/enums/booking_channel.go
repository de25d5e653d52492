package enums

import "fmt"

// BookingChannel records how a reservation entered the system.
type BookingChannel string

const (
	BookingChannelOnline BookingChannel = "online"
	BookingChannelWalkIn BookingChannel = "walk_in"
)

var validBookingChannels = []BookingChannel{
	BookingChannelOnline,
	BookingChannelWalkIn,
}

// String implements fmt.Stringer.
func (b BookingChannel) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingChannel.
func (b BookingChannel) IsValid() bool {
	for _, candidate := range validBookingChannels {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingChannel converts raw input into a BookingChannel.
func ParseBookingChannel(value string) (BookingChannel, error) {
	for _, candidate := range validBookingChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking channel %q", value)
}
