// Package control moves decoded out-of-band control messages from a
// non-real-time producer (an OSC listener, a UI) into the live style
// snapshot without blocking either side. The only shared structure is a
// fixed-capacity single-producer/single-consumer ring; a periodic drain
// step folds ready messages into the snapshot and publishes it once per
// tick.
package control

// Address identifies which parameter a control message targets.
type Address uint8

const (
	SetSwing Address = iota
	SetAccent
	SetHumanizeTiming
	SetHumanizeVelocity
	SetEnable
)

func (a Address) String() string {
	switch a {
	case SetSwing:
		return "SetSwing"
	case SetAccent:
		return "SetAccent"
	case SetHumanizeTiming:
		return "SetHumanizeTiming"
	case SetHumanizeVelocity:
		return "SetHumanizeVelocity"
	case SetEnable:
		return "SetEnable"
	default:
		return "Unknown"
	}
}

// ValueKind tags which payload field of a Message is meaningful.
type ValueKind uint8

const (
	ValueFloat ValueKind = iota
	ValueBool
)

// Message is one decoded control update. It is created on the producer
// thread, copied by value into a ring slot, and read exactly once by the
// drain step. Never mutated after publish.
type Message struct {
	Address     Address
	Kind        ValueKind
	Float       float64
	Bool        bool
	TimeSeconds float64
}

// FloatMessage builds a float-valued message.
func FloatMessage(addr Address, value, timeSeconds float64) Message {
	return Message{Address: addr, Kind: ValueFloat, Float: value, TimeSeconds: timeSeconds}
}

// BoolMessage builds a bool-valued message.
func BoolMessage(addr Address, value bool, timeSeconds float64) Message {
	return Message{Address: addr, Kind: ValueBool, Bool: value, TimeSeconds: timeSeconds}
}
