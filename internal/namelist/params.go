package namelist

// Param is one key/value entry of a ParameterSet.
type Param struct {
	Key   string
	Value Value
}

// ParameterSet is an insertion-ordered set of namelist entries. Keys are
// not validated against anything the engine understands.
type ParameterSet struct {
	entries []Param
	index   map[string]int
}

// NewParameterSet returns a ParameterSet holding params in order. Repeated
// keys keep their first position and their last value.
func NewParameterSet(params ...Param) *ParameterSet {
	ps := &ParameterSet{index: make(map[string]int, len(params))}
	for _, p := range params {
		ps.Set(p.Key, p.Value)
	}
	return ps
}

// Set stores value under key. An existing key keeps its position.
func (ps *ParameterSet) Set(key string, value Value) {
	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	if idx, ok := ps.index[key]; ok {
		ps.entries[idx].Value = value
		return
	}
	ps.index[key] = len(ps.entries)
	ps.entries = append(ps.entries, Param{Key: key, Value: value})
}

// Get returns the value stored under key.
func (ps *ParameterSet) Get(key string) (Value, bool) {
	if ps == nil {
		return Value{}, false
	}
	idx, ok := ps.index[key]
	if !ok {
		return Value{}, false
	}
	return ps.entries[idx].Value, true
}

// Has reports whether key is present.
func (ps *ParameterSet) Has(key string) bool {
	_, ok := ps.Get(key)
	return ok
}

// Len returns the number of entries.
func (ps *ParameterSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.entries)
}

// Params returns a copy of the entries in insertion order.
func (ps *ParameterSet) Params() []Param {
	if ps == nil {
		return nil
	}
	out := make([]Param, len(ps.entries))
	copy(out, ps.entries)
	return out
}

// Keys returns the keys in insertion order.
func (ps *ParameterSet) Keys() []string {
	if ps == nil {
		return nil
	}
	keys := make([]string, len(ps.entries))
	for i, p := range ps.entries {
		keys[i] = p.Key
	}
	return keys
}

// Clone returns an independent copy of ps.
func (ps *ParameterSet) Clone() *ParameterSet {
	return NewParameterSet(ps.Params()...)
}
