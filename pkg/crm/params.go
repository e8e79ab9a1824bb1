package crm

// Params is an insertion-ordered set of query parameters. Transports emit
// parameters in the order they were first set.
type Params struct {
	keys   []string
	values map[string]interface{}
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// ParamsFromPairs builds a parameter set from alternating key/value
// arguments. A trailing key without a value is ignored.
func ParamsFromPairs(pairs ...interface{}) *Params {
	params := NewParams()

	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}

		params.Set(key, pairs[i+1])
	}

	return params
}

// Set stores value under key. Replacing an existing key keeps its position.
func (p *Params) Set(key string, value interface{}) *Params {
	if p.values == nil {
		p.values = make(map[string]interface{})
	}

	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value

	return p
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}

	value, ok := p.values[key]

	return value, ok
}

// Del removes key.
func (p *Params) Del(key string) {
	if p == nil {
		return
	}

	if _, exists := p.values[key]; !exists {
		return
	}

	delete(p.values, key)

	for i, existing := range p.keys {
		if existing == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)

			break
		}
	}
}

// Len returns the number of parameters. A nil set has none.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}

	keys := make([]string, len(p.keys))
	copy(keys, p.keys)

	return keys
}

// Each calls fn for every parameter in insertion order.
func (p *Params) Each(fn func(key string, value interface{})) {
	if p == nil {
		return
	}

	for _, key := range p.keys {
		fn(key, p.values[key])
	}
}

// Merge sets every parameter of other on p, in other's order.
func (p *Params) Merge(other *Params) *Params {
	other.Each(func(key string, value interface{}) {
		p.Set(key, value)
	})

	return p
}

// Clone returns an independent copy. Cloning nil yields nil.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}

	return NewParams().Merge(p)
}

// Map returns the parameters as an unordered map.
func (p *Params) Map() map[string]interface{} {
	result := make(map[string]interface{}, p.Len())

	p.Each(func(key string, value interface{}) {
		result[key] = value
	})

	return result
}
