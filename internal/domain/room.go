package domain

// Room is a physical location expenses can be attributed to.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Floor     string `json:"floor"`
	SortOrder int    `json:"sortOrder"`
}

// RoomRefKind discriminates the three location targets an expense can carry.
type RoomRefKind string

const (
	RoomRefNone  RoomRefKind = "none"
	RoomRefRoom  RoomRefKind = "room"
	RoomRefFloor RoomRefKind = "floor"
)

// RoomRef is a tagged reference to either nothing, a specific room, or a
// whole floor. Floor-level expenses are aggregated into virtual room
// summaries instead of a real room.
type RoomRef struct {
	Kind   RoomRefKind `json:"kind"`
	RoomID string      `json:"roomId,omitempty"`
	Floor  string      `json:"floor,omitempty"`
}

// NoRoom returns a reference to no location.
func NoRoom() RoomRef {
	return RoomRef{Kind: RoomRefNone}
}

// RoomByID returns a reference to a specific room.
func RoomByID(id string) RoomRef {
	return RoomRef{Kind: RoomRefRoom, RoomID: id}
}

// WholeFloor returns a reference to a whole floor.
func WholeFloor(floor string) RoomRef {
	return RoomRef{Kind: RoomRefFloor, Floor: floor}
}

// IsNone reports whether the reference points at no location. The zero
// value counts as none so unset references behave like the explicit one.
func (r RoomRef) IsNone() bool {
	return r.Kind == RoomRefNone || r.Kind == ""
}

type RoomRepository interface {
	Create(room *Room) error
	GetByID(id string) (*Room, error)
	GetAll() ([]*Room, error)
	Update(room *Room) error
	Delete(id string) error
}
