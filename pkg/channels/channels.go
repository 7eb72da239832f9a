package channels

const (
	// Global events are platform wide like new rooms and room list updates.
	Global = "GLOBAL"
	// Room events are room specific like start, state broadcast, finish.
	Room = "ROOM"
	// Verdict events answer a single move submission with its ruling.
	Verdict = "VERDICT"
)
