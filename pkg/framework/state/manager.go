// Package state persists and restores the plugin's declared parameter
// values as a small versioned binary snapshot. The host owns where the
// bytes live; this package only defines the format and the restore
// hook.
package state

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/justyntemme/stylego/pkg/framework/param"
)

const magic = "STYLGO"

// Manager handles saving and loading parameter state.
type Manager struct {
	version   uint32
	registry  *param.Registry
	onRestore func()
}

// NewManager creates a manager over the given registry.
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// OnRestore sets a hook called after a successful Load, once every
// restored value is already clamped into the registry. The plugin uses
// it to publish the live style snapshot atomically.
func (m *Manager) OnRestore(fn func()) {
	m.onRestore = fn
}

// Save writes the state snapshot: magic, version, then {id, normalized
// value} for every declared parameter.
func (m *Manager) Save(w io.Writer) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return fmt.Errorf("writing state header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return fmt.Errorf("writing state version: %w", err)
	}

	params := m.registry.All()
	if err := binary.Write(w, binary.LittleEndian, int32(len(params))); err != nil {
		return fmt.Errorf("writing parameter count: %w", err)
	}
	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return fmt.Errorf("writing parameter %d: %w", p.ID, err)
		}
		if err := binary.Write(w, binary.LittleEndian, p.GetValue()); err != nil {
			return fmt.Errorf("writing parameter %d: %w", p.ID, err)
		}
	}
	return nil
}

// Load reads a snapshot written by Save. Unknown parameter IDs are
// skipped for forward compatibility; every restored value passes through
// the parameter's own clamping. Runs on the host's non-real-time state
// thread.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading state header: %w", err)
	}
	if string(header) != magic {
		return fmt.Errorf("invalid state format")
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("reading state version: %w", err)
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("reading parameter count: %w", err)
	}
	for i := int32(0); i < count; i++ {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return fmt.Errorf("reading parameter id: %w", err)
		}
		var value float64
		if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
			return fmt.Errorf("reading parameter %d: %w", id, err)
		}
		if p := m.registry.Get(id); p != nil {
			p.SetValue(value)
		}
	}

	if m.onRestore != nil {
		m.onRestore()
	}
	return nil
}
