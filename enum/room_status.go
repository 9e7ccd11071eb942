package enum

type RoomStatus string

const (
	RoomStatusActive RoomStatus = "ACTIVE"
	RoomStatusClosed RoomStatus = "CLOSED"
)

func (s RoomStatus) IsActive() bool {
	return s == RoomStatusActive
}
