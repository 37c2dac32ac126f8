package network

import (
	"slices"

	"spikenet/internal/uid"
)

// ordered is a UID-keyed collection that iterates in insertion order.
type ordered[E any] struct {
	index map[uid.UID]int
	items []E
	keys  []uid.UID
}

func newOrdered[E any]() ordered[E] {
	return ordered[E]{index: make(map[uid.UID]int)}
}

func (o *ordered[E]) len() int {
	return len(o.items)
}

func (o *ordered[E]) has(id uid.UID) bool {
	_, ok := o.index[id]
	return ok
}

func (o *ordered[E]) get(id uid.UID) (E, bool) {
	pos, ok := o.index[id]
	if !ok {
		var zero E
		return zero, false
	}
	return o.items[pos], true
}

// put appends item under id; the caller guarantees id is absent.
func (o *ordered[E]) put(id uid.UID, item E) {
	o.index[id] = len(o.items)
	o.items = append(o.items, item)
	o.keys = append(o.keys, id)
}

func (o *ordered[E]) remove(id uid.UID) (E, bool) {
	pos, ok := o.index[id]
	if !ok {
		var zero E
		return zero, false
	}
	item := o.items[pos]
	delete(o.index, id)
	o.items = slices.Delete(o.items, pos, pos+1)
	o.keys = slices.Delete(o.keys, pos, pos+1)
	for i := pos; i < len(o.keys); i++ {
		o.index[o.keys[i]] = i
	}
	return item, true
}

func (o *ordered[E]) values() []E {
	return append([]E(nil), o.items...)
}

func (o *ordered[E]) uids() []uid.UID {
	return append([]uid.UID(nil), o.keys...)
}
