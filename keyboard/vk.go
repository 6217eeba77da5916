// Package keyboard tracks the set of currently held virtual keys.
package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// VK is a Win32 virtual-key code. VKs order by numeric value.
type VK uint8

// Lookup converts a raw key code into a VK. Codes outside the defined
// enumeration report false and must be ignored by the caller.
func Lookup(code uint32) (VK, bool) {
	if code > 0xFF {
		return 0, false
	}
	vk := VK(code)
	if _, ok := vkNames[vk]; !ok {
		return 0, false
	}
	return vk, true
}

// Valid reports whether vk belongs to the enumeration.
func (vk VK) Valid() bool {
	_, ok := vkNames[vk]
	return ok
}

func (vk VK) String() string {
	if name, ok := vkNames[vk]; ok {
		return name
	}
	return fmt.Sprintf("VK(0x%02X)", uint8(vk))
}

// aliases are short names accepted by ParseVK in addition to the canonical
// enumeration names.
var aliases = map[string]VK{
	"win":    LeftWindows,
	"lwin":   LeftWindows,
	"rwin":   RightWindows,
	"ctrl":   Control,
	"lctrl":  LeftControl,
	"rctrl":  RightControl,
	"alt":    Menu,
	"lalt":   LeftMenu,
	"ralt":   RightMenu,
	"lshift": LeftShift,
	"rshift": RightShift,
	"enter":  Return,
	"esc":    Escape,
	"pgup":   Prior,
	"pgdn":   Next,
	"del":    Delete,
	"ins":    Insert,
}

var vkByName = func() map[string]VK {
	m := make(map[string]VK, len(vkNames)+len(aliases))
	for vk, name := range vkNames {
		m[strings.ToLower(name)] = vk
	}
	for name, vk := range aliases {
		m[name] = vk
	}
	return m
}()

// ParseVK accepts an enumeration name ("LeftWindows", "Numpad7"), a short
// alias ("win", "ctrl"), a single letter or digit, or a hex code ("0x5B").
func ParseVK(name string) (VK, error) {
	token := strings.ToLower(strings.TrimSpace(name))
	if token == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if vk, ok := vkByName[token]; ok {
		return vk, nil
	}
	if len(token) == 1 {
		ch := token[0]
		switch {
		case ch >= 'a' && ch <= 'z':
			return VK(ch - 'a' + 'A'), nil
		case ch >= '0' && ch <= '9':
			return VK(ch), nil
		}
	}
	if strings.HasPrefix(token, "0x") {
		v, err := strconv.ParseUint(token[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex key %q", name)
		}
		vk, ok := Lookup(uint32(v))
		if !ok {
			return 0, fmt.Errorf("key code %q is not a recognized virtual key", name)
		}
		return vk, nil
	}
	return 0, fmt.Errorf("unknown key: %s", name)
}
