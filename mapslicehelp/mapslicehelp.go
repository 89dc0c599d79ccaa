package mapslicehelp

import (
	"github.com/umpc/go-sortedmap"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func OrderedMapKeys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	l := make([]K, m.Len())
	i := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		l[i] = p.Key
		i++
	}
	return l
}

// SortedMapValues returns the values of m in the order of its comparison function.
// Values that are not a V are skipped.
func SortedMapValues[V any](m *sortedmap.SortedMap) []V {
	mmap := m.Map()
	values := make([]V, 0, len(mmap))
	for _, key := range m.Keys() {
		if v, ok := mmap[key].(V); ok {
			values = append(values, v)
		}
	}
	return values
}
