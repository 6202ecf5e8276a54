// Package bus declares the plugin's bus layout toward the host. A MIDI
// effect exposes one event input and one event output; audio buses are
// declared only so hosts that insist on an audio path can instantiate
// the plugin.
package bus

// MediaType represents the kind of data a bus carries.
type MediaType int32

const (
	MediaTypeAudio MediaType = 0
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction.
type Direction int32

const (
	DirectionInput  Direction = 0
	DirectionOutput Direction = 1
)

// Info describes one bus.
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	IsActive     bool
}

// Configuration is the ordered set of buses the plugin declares.
type Configuration struct {
	buses []Info
}

// NewMIDIEffectConfiguration declares the layout for a pure MIDI
// transform: event in, event out, plus a passive stereo audio pair.
func NewMIDIEffectConfiguration() *Configuration {
	return &Configuration{
		buses: []Info{
			{MediaType: MediaTypeEvent, Direction: DirectionInput, ChannelCount: 16, Name: "MIDI In", IsActive: true},
			{MediaType: MediaTypeEvent, Direction: DirectionOutput, ChannelCount: 16, Name: "MIDI Out", IsActive: true},
			{MediaType: MediaTypeAudio, Direction: DirectionInput, ChannelCount: 2, Name: "Stereo In", IsActive: false},
			{MediaType: MediaTypeAudio, Direction: DirectionOutput, ChannelCount: 2, Name: "Stereo Out", IsActive: false},
		},
	}
}

// All returns the declared buses in order.
func (c *Configuration) All() []Info {
	return c.buses
}

// Count returns the number of buses of the given media type and
// direction.
func (c *Configuration) Count(media MediaType, dir Direction) int {
	n := 0
	for _, b := range c.buses {
		if b.MediaType == media && b.Direction == dir {
			n++
		}
	}
	return n
}

// EventInput returns the first active event input bus, if any.
func (c *Configuration) EventInput() (Info, bool) {
	for _, b := range c.buses {
		if b.MediaType == MediaTypeEvent && b.Direction == DirectionInput {
			return b, true
		}
	}
	return Info{}, false
}
