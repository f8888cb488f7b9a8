package treedelta

// FilterFlags is a bitmask selecting which parts of the delta a Diff call
// should consider.
type FilterFlags uint32

const (
	FilterData FilterFlags = 1 << iota
	FilterAttribute
	FilterCustom
	FilterChildren
	FilterOriginal
	FilterMutated

	// FilterProperty is the union of the three property kinds.
	FilterProperty = FilterData | FilterAttribute | FilterCustom
	// FilterAll selects everything.
	FilterAll = FilterProperty | FilterChildren | FilterOriginal | FilterMutated
)

func (f FilterFlags) has(bit FilterFlags) bool { return f&bit != 0 }

// dataKey is the sentinel native-map key used for character-data
// entries, distinct from any legal attribute name.
const dataKey = "\x00data"

// propValue distinguishes a captured "" value from a captured "absent"
// (no such attribute) value.
type propValue struct {
	present bool
	value   string
}

func presentValue(v string) propValue { return propValue{present: true, value: v} }
func absentValue() propValue          { return propValue{present: false} }

func (v propValue) equal(o propValue) bool {
	return v.present == o.present && (!v.present || v.value == o.value)
}

type propEntry struct {
	value propValue
	dirty bool
}

// nodeProps holds the native and custom property caches for one node.
type nodeProps struct {
	native map[string]*propEntry
	custom map[string]*propEntry
}

func newNodeProps() *nodeProps {
	return &nodeProps{native: make(map[string]*propEntry), custom: make(map[string]*propEntry)}
}

func (np *nodeProps) dirtyCount() int {
	n := 0
	for _, e := range np.native {
		if e.dirty {
			n++
		}
	}
	for _, e := range np.custom {
		if e.dirty {
			n++
		}
	}
	return n
}

// propertyCache tracks, per node handle, dirty-bit value caches for
// native (attribute/data) and custom properties.
type propertyCache[H comparable] struct {
	nodes      map[H]*nodeProps
	dirtyTotal int
}

func newPropertyCache[H comparable]() *propertyCache[H] {
	return &propertyCache[H]{nodes: make(map[H]*nodeProps)}
}

func (pc *propertyCache[H]) propsFor(h H) *nodeProps {
	np, ok := pc.nodes[h]
	if !ok {
		np = newNodeProps()
		pc.nodes[h] = np
	}
	return np
}

// markNative records an attribute or character-data change. haveOld
// false means "missing old value" (spec §7): the cache
// cannot compute a dirty flag and the report is silently ignored.
func (pc *propertyCache[H]) markNative(h H, key string, newValue, oldValue propValue, haveOld bool) {
	if !haveOld {
		return
	}
	pc.mark(pc.propsFor(h).native, key, newValue, oldValue)
}

func (pc *propertyCache[H]) markCustom(h H, key string, newValue, oldValue string) {
	pc.mark(pc.propsFor(h).custom, key, presentValue(newValue), presentValue(oldValue))
}

func (pc *propertyCache[H]) mark(m map[string]*propEntry, key string, newValue, oldValue propValue) {
	entry, seen := m[key]
	if !seen {
		dirty := !newValue.equal(oldValue)
		m[key] = &propEntry{value: oldValue, dirty: dirty}
		if dirty {
			pc.dirtyTotal++
		}
		return
	}
	wasDirty := entry.dirty
	entry.dirty = !newValue.equal(entry.value)
	if entry.dirty != wasDirty {
		if entry.dirty {
			pc.dirtyTotal++
		} else {
			pc.dirtyTotal--
		}
	}
}

// synchronize discards every non-dirty entry across all nodes and
// returns the remaining dirty count.
func (pc *propertyCache[H]) synchronize() int {
	for h, np := range pc.nodes {
		for k, e := range np.native {
			if !e.dirty {
				delete(np.native, k)
			}
		}
		for k, e := range np.custom {
			if !e.dirty {
				delete(np.custom, k)
			}
		}
		if len(np.native) == 0 && len(np.custom) == 0 {
			delete(pc.nodes, h)
		}
	}
	return pc.dirtyTotal
}

// clear discards all property state unconditionally.
func (pc *propertyCache[H]) clear() {
	pc.nodes = make(map[H]*nodeProps)
	pc.dirtyTotal = 0
}

// dirtyNodes returns the handles currently carrying at least one dirty
// property entry.
func (pc *propertyCache[H]) dirtyNodes() []H {
	var out []H
	for h, np := range pc.nodes {
		if np.dirtyCount() > 0 {
			out = append(out, h)
		}
	}
	return out
}
