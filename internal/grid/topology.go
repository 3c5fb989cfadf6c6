package grid

import (
	"fmt"

	"grid-thermal/internal/model"
)

// BusCoord is a bus position for the map layer.
type BusCoord struct {
	Name string
	X    float64
	Y    float64
}

// Network is the read-only denormalized topology view: every line joined
// with its terminal voltage, nominal flow and conductor parameters, plus
// bus coordinates. Loaded once at startup and immutable afterwards.
type Network struct {
	Lines     []model.Line
	BusCoords []BusCoord

	byName map[string]int
}

// NewNetwork builds a Network and indexes lines by name. Line names must be
// unique; they are the universe for every offline-set membership check.
func NewNetwork(lines []model.Line, buses []BusCoord) (*Network, error) {
	byName := make(map[string]int, len(lines))
	for i, l := range lines {
		if l.Name == "" {
			return nil, fmt.Errorf("line %d has no name", i)
		}
		if _, dup := byName[l.Name]; dup {
			return nil, fmt.Errorf("duplicate line name %q", l.Name)
		}
		byName[l.Name] = i
	}
	return &Network{Lines: lines, BusCoords: buses, byName: byName}, nil
}

// HasLine reports whether name is a known line.
func (n *Network) HasLine(name string) bool {
	_, ok := n.byName[name]
	return ok
}

// LineNames returns all line names in topology order.
func (n *Network) LineNames() []string {
	names := make([]string, len(n.Lines))
	for i, l := range n.Lines {
		names[i] = l.Name
	}
	return names
}
