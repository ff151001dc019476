package pattern

import (
	"fmt"

	"github.com/lixenwraith/glyphstorm/buffer"
)

// Layer is one entry in a SceneGraph: a named, orderable update/render
// pair a pattern can toggle visible or invisible independently.
type Layer struct {
	Name    string
	ZIndex  int
	Visible bool
	Update  func(dtSeconds float64, size buffer.Size)
	Render  func(back *buffer.Buffer, size buffer.Size)
}

type layerEntry struct {
	layer Layer
	index int // registration order, breaks z-index ties
}

// SceneGraph is an ordered mapping from layer name to Layer. Update and
// Render iterate layers ascending by ZIndex, skipping invisible ones;
// equal z-index layers render in registration order.
//
// Grounded on the teacher's render.RenderOrchestrator: Register's
// insertion sort by priority with a registration-order tiebreak, and the
// VisibilityToggle probe-and-skip idiom, generalized from a flat
// priority-tagged renderer list to a named layer map a pattern can look
// up and mutate (set Visible, replace Update/Render) by name.
type SceneGraph struct {
	byName map[string]int // name -> index into order
	order  []layerEntry
	regN   int
}

// NewSceneGraph returns an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{byName: make(map[string]int)}
}

// AddLayer inserts a layer in z-index order. Returns an error if a layer
// with the same name already exists.
func (s *SceneGraph) AddLayer(l Layer) error {
	if _, exists := s.byName[l.Name]; exists {
		return fmt.Errorf("pattern: scene graph already has a layer named %q", l.Name)
	}

	entry := layerEntry{layer: l, index: s.regN}
	s.regN++

	pos := len(s.order)
	for i, e := range s.order {
		if entry.layer.ZIndex < e.layer.ZIndex ||
			(entry.layer.ZIndex == e.layer.ZIndex && entry.index < e.index) {
			pos = i
			break
		}
	}
	s.order = append(s.order, layerEntry{})
	copy(s.order[pos+1:], s.order[pos:])
	s.order[pos] = entry
	s.reindex()
	return nil
}

// RemoveLayer drops a layer by name. No-op if it doesn't exist.
func (s *SceneGraph) RemoveLayer(name string) {
	i, ok := s.byName[name]
	if !ok {
		return
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.byName, name)
	s.reindex()
}

// SetVisible toggles a layer's visibility by name. No-op if it doesn't exist.
func (s *SceneGraph) SetVisible(name string, visible bool) {
	if i, ok := s.byName[name]; ok {
		s.order[i].layer.Visible = visible
	}
}

func (s *SceneGraph) reindex() {
	for i, e := range s.order {
		s.byName[e.layer.Name] = i
	}
}

// Update advances every visible layer, ascending by z-index.
func (s *SceneGraph) Update(dtSeconds float64, size buffer.Size) {
	for _, e := range s.order {
		if e.layer.Visible && e.layer.Update != nil {
			e.layer.Update(dtSeconds, size)
		}
	}
}

// Render draws every visible layer into back, ascending by z-index.
func (s *SceneGraph) Render(back *buffer.Buffer, size buffer.Size) {
	for _, e := range s.order {
		if e.layer.Visible && e.layer.Render != nil {
			e.layer.Render(back, size)
		}
	}
}
