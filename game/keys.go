package game

// Key 逻辑按键（与具体键盘/协议无关），其余取值一律忽略
type Key int

const (
	KeyNone Key = iota
	KeyLeftUp
	KeyLeftDown
	KeyRightUp
	KeyRightDown
)

var keyNames = map[Key]string{
	KeyLeftUp:    "left_up",
	KeyLeftDown:  "left_down",
	KeyRightUp:   "right_up",
	KeyRightDown: "right_down",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "none"
}

// ParseKey 将 "left_up" 等名称解析为 Key，未知名称返回 KeyNone
func ParseKey(s string) Key {
	for k, name := range keyNames {
		if name == s {
			return k
		}
	}
	return KeyNone
}

// Side 球拍所在一侧
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// KeyFor 返回某一侧的上/下按键
func KeyFor(side Side, up bool) Key {
	switch {
	case side == SideLeft && up:
		return KeyLeftUp
	case side == SideLeft:
		return KeyLeftDown
	case up:
		return KeyRightUp
	default:
		return KeyRightDown
	}
}

// KeySet 当前按住的移动键
type KeySet struct {
	LeftUp    bool
	LeftDown  bool
	RightUp   bool
	RightDown bool
}

func (ks *KeySet) set(k Key, pressed bool) {
	switch k {
	case KeyLeftUp:
		ks.LeftUp = pressed
	case KeyLeftDown:
		ks.LeftDown = pressed
	case KeyRightUp:
		ks.RightUp = pressed
	case KeyRightDown:
		ks.RightDown = pressed
	}
}

// Held 报告某键是否按住
func (ks KeySet) Held(k Key) bool {
	switch k {
	case KeyLeftUp:
		return ks.LeftUp
	case KeyLeftDown:
		return ks.LeftDown
	case KeyRightUp:
		return ks.RightUp
	case KeyRightDown:
		return ks.RightDown
	}
	return false
}
