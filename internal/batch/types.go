package batch

import "nacagen/internal/namelist"

// Batch is a list of generation requests run one after another.
type Batch struct {
	ID       string
	Defaults *namelist.ParameterSet
	Requests []*namelist.ParameterSet
}

// Request returns request idx with the batch defaults applied underneath:
// default keys come first, and the request's own values win.
func (b *Batch) Request(idx int) *namelist.ParameterSet {
	ps := namelist.NewParameterSet()
	if b.Defaults != nil {
		ps = b.Defaults.Clone()
	}
	for _, p := range b.Requests[idx].Params() {
		ps.Set(p.Key, p.Value)
	}
	return ps
}
