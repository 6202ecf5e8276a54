// Package plugin defines the host-facing plugin contract: metadata, the
// processor lifecycle, and a base type that carries the parameter
// registry, bus layout and state manager so concrete processors stay
// small.
package plugin

import (
	"crypto/md5"
)

// Info contains plugin metadata.
type Info struct {
	ID       string // unique identifier (e.g. "com.example.myplugin")
	Name     string // display name
	Version  string // semantic version
	Vendor   string // company/developer name
	Category string // e.g. "Fx|MIDI"
}

// UID derives a stable 16-byte identifier from the string ID.
func (i Info) UID() [16]byte {
	return md5.Sum([]byte(i.ID))
}
