package server

import "github.com/prichrd/paddle/game"

// Input 客户端输入（按键按下/松开），由 Tick 协程应用到对局
type Input struct {
	PlayerID PlayerID
	Key      string
	Pressed  bool
	Seq      int64 // 客户端本地序列号，用于去重
}

// 入站输入的 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"key","key":"up","pressed":true,"seq":3}
type InputMessage struct {
	Type    string `json:"type"`
	Key     string `json:"key"`
	Pressed bool   `json:"pressed"`
	Seq     int64  `json:"seq,omitempty"`
}

// 出站消息
type welcomeMessage struct {
	Type   string     `json:"type"`
	Player string     `json:"player"`
	Side   string     `json:"side"`
	Board  RoomConfig `json:"board"`
}

type stateMessage struct {
	Type  string        `json:"type"`
	State game.Snapshot `json:"state"`
}
