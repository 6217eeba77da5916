package keyboard

import (
	"math/bits"
	"strings"
)

// KeySet is a set of virtual keys. It is a value type: copies are
// independent snapshots and two sets compare equal with ==.
type KeySet struct {
	bits [4]uint64
}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...VK) KeySet {
	var s KeySet
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add marks vk as held.
func (s *KeySet) Add(vk VK) {
	s.bits[vk>>6] |= 1 << (vk & 63)
}

// Remove marks vk as released.
func (s *KeySet) Remove(vk VK) {
	s.bits[vk>>6] &^= 1 << (vk & 63)
}

// Set adds vk when held is true and removes it otherwise.
func (s *KeySet) Set(vk VK, held bool) {
	if held {
		s.Add(vk)
	} else {
		s.Remove(vk)
	}
}

// Has reports whether vk is in the set.
func (s KeySet) Has(vk VK) bool {
	return s.bits[vk>>6]&(1<<(vk&63)) != 0
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no key is held.
func (s KeySet) Empty() bool {
	return s == KeySet{}
}

// Keys returns the members in ascending code order.
func (s KeySet) Keys() []VK {
	keys := make([]VK, 0, s.Len())
	for i, w := range s.bits {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			keys = append(keys, VK(i*64+b))
			w &^= 1 << b
		}
	}
	return keys
}

// String joins the key names with "+", e.g. "Left+LeftWindows".
func (s KeySet) String() string {
	keys := s.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, "+")
}

// ParseKeySet parses a "+"-separated list of key names, e.g.
// "LeftWindows+Numpad7".
func ParseKeySet(spec string) (KeySet, error) {
	var s KeySet
	for _, part := range strings.Split(spec, "+") {
		vk, err := ParseVK(part)
		if err != nil {
			return KeySet{}, err
		}
		s.Add(vk)
	}
	return s, nil
}
