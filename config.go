package ink

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Tuning collects the feel and capacity knobs of the runtime. Everything has
// a working default; applications that want platform-specific scroll feel
// ship a TOML file and load it at startup.
type Tuning struct {
	Scroll ScrollTuning `toml:"scroll"`
	Arena  ArenaTuning  `toml:"arena"`
}

// ScrollTuning is the TOML view of ScrollPhysics.
type ScrollTuning struct {
	Decay           float32 `toml:"decay"`
	VelocityEpsilon float32 `toml:"velocity_epsilon"`
	DragDamping     float32 `toml:"drag_damping"`
	MinDragDistance float32 `toml:"min_drag_distance"`
}

// ArenaTuning sizes the frame arena.
type ArenaTuning struct {
	// InitialCapacity is the starting backing-buffer size in bytes. The
	// arena still grows on demand; a good value avoids growth entirely.
	InitialCapacity int `toml:"initial_capacity"`
}

// DefaultTuning returns the stock constants: 0.95/frame momentum decay,
// 0.1 px/frame cutoff, damping 25, 10 px minimum drag, 64 KiB arena.
func DefaultTuning() Tuning {
	return Tuning{
		Scroll: ScrollTuning{
			Decay:           0.95,
			VelocityEpsilon: 0.1,
			DragDamping:     25.0,
			MinDragDistance: 10.0,
		},
		Arena: ArenaTuning{
			InitialCapacity: 64 * 1024,
		},
	}
}

// physics converts the TOML view into the controller's constants.
func (t ScrollTuning) physics() ScrollPhysics {
	return ScrollPhysics{
		Decay:           t.Decay,
		VelocityEpsilon: t.VelocityEpsilon,
		DragDamping:     t.DragDamping,
		MinDragDistance: t.MinDragDistance,
	}
}

// LoadTuning parses TOML tuning data. Keys that are absent keep their
// defaults, so a file can override just the scroll feel.
func LoadTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := toml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadTuningFromFile reads and parses a TOML tuning file.
func LoadTuningFromFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return LoadTuning(data)
}

// validate rejects constants that would break momentum termination or the
// arena contract.
func (t Tuning) validate() error {
	if t.Scroll.Decay <= 0 || t.Scroll.Decay >= 1 {
		return fmt.Errorf("scroll.decay must be in (0, 1), got %v", t.Scroll.Decay)
	}
	if t.Scroll.VelocityEpsilon <= 0 {
		return fmt.Errorf("scroll.velocity_epsilon must be positive, got %v", t.Scroll.VelocityEpsilon)
	}
	if t.Scroll.DragDamping <= 0 {
		return fmt.Errorf("scroll.drag_damping must be positive, got %v", t.Scroll.DragDamping)
	}
	if t.Scroll.MinDragDistance < 0 {
		return fmt.Errorf("scroll.min_drag_distance must be non-negative, got %v", t.Scroll.MinDragDistance)
	}
	if t.Arena.InitialCapacity < 0 {
		return fmt.Errorf("arena.initial_capacity must be non-negative, got %v", t.Arena.InitialCapacity)
	}
	return nil
}
