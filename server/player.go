package server

import (
	"strings"

	"github.com/prichrd/paddle/game"
)

// PlayerID 表示玩家唯一标识
type PlayerID string

// Seat 玩家在房间中的座位，决定可控制哪块球拍
type Seat int

const (
	SeatAuto Seat = iota // 仅用于加入请求：自动分配
	SeatSpectator
	SeatLeft
	SeatRight
	SeatBoth // 同屏双人：一个连接控制两块球拍
)

var seatNames = map[Seat]string{
	SeatAuto:      "auto",
	SeatSpectator: "spectator",
	SeatLeft:      "left",
	SeatRight:     "right",
	SeatBoth:      "both",
}

func (s Seat) String() string { return seatNames[s] }

// ParseSeat 解析 ?side= 参数，空串表示自动分配
func ParseSeat(s string) (Seat, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SeatAuto, true
	}
	for seat, name := range seatNames {
		if name == s {
			return seat, true
		}
	}
	return SeatSpectator, false
}

// resolve 将客户端按键名转换为逻辑按键；座位无权控制的键返回 KeyNone
func (s Seat) resolve(name string) game.Key {
	name = strings.ToLower(name)
	switch name {
	case "up", "down":
		switch s {
		case SeatLeft:
			return game.KeyFor(game.SideLeft, name == "up")
		case SeatRight:
			return game.KeyFor(game.SideRight, name == "up")
		}
		return game.KeyNone
	}
	k := game.ParseKey(name)
	switch k {
	case game.KeyLeftUp, game.KeyLeftDown:
		if s == SeatLeft || s == SeatBoth {
			return k
		}
	case game.KeyRightUp, game.KeyRightDown:
		if s == SeatRight || s == SeatBoth {
			return k
		}
	}
	return game.KeyNone
}

func (s Seat) holdsLeft() bool  { return s == SeatLeft || s == SeatBoth }
func (s Seat) holdsRight() bool { return s == SeatRight || s == SeatBoth }

// Sender 连接的发送端（写协程），测试中可替换
type Sender interface {
	Enqueue(b []byte)
	Close()
}

// Player 房间内的玩家（仅在 Tick 协程中读写）
type Player struct {
	ID   PlayerID
	Seat Seat
	Conn Sender

	lastSeq        int64
	inputsThisTick int
	held           map[game.Key]bool // 通过该座位按住的键，离开时统一松开
}
