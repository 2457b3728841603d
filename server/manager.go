package server

import (
	"fmt"
	"sync"

	"github.com/prichrd/paddle/logging"
)

// maxRooms 防止通过任意 room 参数无限创建房间
const maxRooms = 64

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	cfg         RoomConfig
	defaultRoom string
}

// NewRoomManager 校验配置并创建管理器
func NewRoomManager(cfg RoomConfig, defaultRoom string) (*RoomManager, error) {
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.MaxInputsPerTick <= 0 {
		return nil, fmt.Errorf("max inputs per tick must be positive, got %d", cfg.MaxInputsPerTick)
	}
	if _, err := NewRoom("", cfg); err != nil {
		return nil, err
	}
	if defaultRoom == "" {
		defaultRoom = "room-1"
	}
	return &RoomManager{rooms: make(map[string]*Room), cfg: cfg, defaultRoom: defaultRoom}, nil
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	if id == "" {
		id = m.defaultRoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if ok {
		return r, nil
	}
	if len(m.rooms) >= maxRooms {
		return nil, fmt.Errorf("room limit %d reached", maxRooms)
	}
	r, err := NewRoom(id, m.cfg)
	if err != nil {
		return nil, err
	}
	m.rooms[id] = r
	r.StartTicker()
	logging.Log.Infow("room created", "room", id, "fps", m.cfg.FPS,
		"board", fmt.Sprintf("%dx%d", m.cfg.Width, m.cfg.Height))
	return r, nil
}

// Room 查找已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	if id == "" {
		id = m.defaultRoom
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Close 停止所有房间
func (m *RoomManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Stop()
		delete(m.rooms, id)
	}
}
