package feed

import (
	"strings"
)

// Params is an ordered name/value list. Setting an existing name replaces the
// value but keeps the position of its first insertion.
type Params struct {
	list  []Param
	index map[string]int
}

func NewParams(raw []RawParam) *Params {
	p := &Params{
		list:  make([]Param, 0, len(raw)),
		index: make(map[string]int, len(raw)),
	}
	for _, rp := range raw {
		name := strings.TrimSpace(rp.Name)
		value := strings.TrimSpace(rp.Value)
		if name == "" || value == "" {
			continue
		}
		p.Set(name, value)
	}
	return p
}

func (p *Params) Set(name, value string) {
	if i, ok := p.index[name]; ok {
		p.list[i].Value = value
		return
	}
	p.index[name] = len(p.list)
	p.list = append(p.list, Param{Name: name, Value: value})
}

// All returns a copy of the params in order.
func (p *Params) All() []Param {
	out := make([]Param, len(p.list))
	copy(out, p.list)
	return out
}

// Find returns the first param whose name satisfies match.
func (p *Params) Find(match func(name string) bool) (Param, bool) {
	for _, param := range p.list {
		if match(param.Name) {
			return param, true
		}
	}
	return Param{}, false
}
