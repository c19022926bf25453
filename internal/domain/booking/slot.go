package booking

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

// Slot is a candidate start time on the booking grid. Occupied and too-soon
// slots are emitted with Available=false so the client grid stays stable.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// SlotInfo is the wire form of a Slot.
type SlotInfo struct {
	Start     string `json:"start"` // "10:00"
	End       string `json:"end"`
	Available bool   `json:"available"`
}

func ToSlotInfo(slots []Slot) []SlotInfo {
	out := make([]SlotInfo, len(slots))
	for i, s := range slots {
		out[i] = SlotInfo{
			Start:     s.StartTime.Format("15:04"),
			End:       s.EndTime.Format("15:04"),
			Available: s.Available,
		}
	}
	return out
}
