package server

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// lookupRoom 只查询已存在的房间，避免监控接口创建房间
func (m *RoomManager) lookupRoom(w http.ResponseWriter, r *http.Request) (*Room, string, bool) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = m.defaultRoom
	}
	room, ok := m.Room(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return nil, roomID, false
	}
	return room, roomID, true
}

// HandleAdminConfig 读取房间配置
// GET /admin/config?room=room-1
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	room, _, ok := m.lookupRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, room.Config())
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, roomID, ok := m.lookupRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"room":    roomID,
		"tick":    room.Snapshot().Tick,
		"metrics": room.metrics.Snapshot(),
	})
}

// HandleState 输出最近一帧的快照（比分、球拍、球）
// GET /state?room=room-1
func (m *RoomManager) HandleState(w http.ResponseWriter, r *http.Request) {
	room, _, ok := m.lookupRoom(w, r)
	if !ok {
		return
	}
	s := room.Snapshot()
	writeJSON(w, map[string]any{
		"score": s.ScoreText(),
		"state": s,
	})
}
