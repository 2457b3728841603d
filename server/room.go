package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/prichrd/paddle/game"
	"github.com/prichrd/paddle/logging"
)

// RoomConfig 房间的棋盘与节奏配置
type RoomConfig struct {
	Width            int `json:"width"`
	Height           int `json:"height"`
	PixelScale       int `json:"pixelScale"`
	FPS              int `json:"fps"`
	MaxInputsPerTick int `json:"maxInputsPerTick"`
}

type joinRequest struct {
	id   PlayerID
	seat Seat
	conn Sender
}

type leaveRequest struct {
	id   PlayerID
	conn Sender // 非空时只移除持有该连接的玩家
}

// Room 房间世界：一局对战，权威状态只在 Tick 协程中推进
type Room struct {
	ID string

	Players   map[PlayerID]*Player
	inputChan chan Input
	joinChan  chan joinRequest
	leaveChan chan leaveRequest

	cfg     RoomConfig
	game    *game.Game
	latest  atomic.Pointer[game.Snapshot]
	metrics *RoomMetrics

	tickerStarted bool
	stop          chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
}

// NewRoom 创建房间，初始化对局（球拍、球居中）
func NewRoom(id string, cfg RoomConfig) (*Room, error) {
	g, err := game.New(cfg.Width, cfg.Height, cfg.PixelScale)
	if err != nil {
		return nil, err
	}
	r := &Room{
		ID:        id,
		Players:   make(map[PlayerID]*Player),
		inputChan: make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:  make(chan joinRequest, 16),
		leaveChan: make(chan leaveRequest, 64),
		cfg:       cfg,
		game:      g,
		metrics:   &RoomMetrics{},
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	s := g.Snapshot()
	r.latest.Store(&s)
	return r, nil
}

// Config 房间配置（只读）
func (r *Room) Config() RoomConfig { return r.cfg }

// Metrics 房间指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// Snapshot 最近一次 Tick 结束时的状态，可在任意协程读取
func (r *Room) Snapshot() game.Snapshot { return *r.latest.Load() }

// Join 请求在 Tick 协程中加入玩家，座位在处理时分配
func (r *Room) Join(id PlayerID, seat Seat, conn Sender) {
	r.joinChan <- joinRequest{id: id, seat: seat, conn: conn}
}

// RequestLeave 请求在 Tick 协程中移除玩家，避免并发改动房间状态
// 同名重连后，旧连接的离开请求不会影响新连接
func (r *Room) RequestLeave(pid PlayerID, conn Sender) {
	// 阻塞式写入，保证移除一定生效（通道有容量）
	r.leaveChan <- leaveRequest{id: pid, conn: conn}
}

// OnInput 入站输入（不立即改变状态），仅排队，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	// 不阻塞：输入拥塞时丢弃，保证 Tick 准时
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// BeginTick 重置帧内状态（每玩家输入计数）
func (r *Room) BeginTick() {
	for _, p := range r.Players {
		p.inputsThisTick = 0
	}
}

// ProcessInputs 非阻塞地处理本帧所有加入、输入与离开
func (r *Room) ProcessInputs() {
joins:
	for {
		select {
		case req := <-r.joinChan:
			r.joinPlayer(req)
		default:
			break joins
		}
	}
inputs:
	for {
		select {
		case in := <-r.inputChan:
			if p, ok := r.Players[in.PlayerID]; ok {
				r.applyInput(p, in)
			}
		default:
			break inputs
		}
	}
	for {
		select {
		case req := <-r.leaveChan:
			r.leavePlayer(req.id, req.conn)
		default:
			return
		}
	}
}

// UpdateWorld 推进对局一步并记录得分
func (r *Room) UpdateWorld() game.Snapshot {
	before := r.latest.Load().Points()
	r.game.Tick()
	s := r.game.Snapshot()
	if n := s.Points() - before; n > 0 {
		r.metrics.AddPoints(int64(n))
		logging.Log.Debugw("point scored", "room", r.ID, "tick", s.Tick, "score", s.ScoreText())
	}
	r.latest.Store(&s)
	return s
}

// Broadcast 将当前状态广播给所有玩家（文本 JSON）
func (r *Room) Broadcast(s game.Snapshot) {
	b, err := json.Marshal(stateMessage{Type: "state", State: s})
	if err != nil {
		logging.Log.Errorw("encode state", "room", r.ID, "err", err)
		return
	}
	for _, p := range r.Players {
		if p.Conn != nil {
			p.Conn.Enqueue(b)
		}
	}
}

// RunTick 执行完整的一帧：处理输入 → 更新世界 → 广播结果
func (r *Room) RunTick() {
	r.BeginTick()
	r.ProcessInputs()
	s := r.UpdateWorld()
	r.Broadcast(s)
}

func (r *Room) joinPlayer(req joinRequest) {
	if _, ok := r.Players[req.id]; ok {
		// 同名重连：先移除旧连接
		r.leavePlayer(req.id, nil)
	}
	seat := r.assignSeat(req.seat)
	p := &Player{ID: req.id, Seat: seat, Conn: req.conn, held: make(map[game.Key]bool)}
	r.Players[req.id] = p
	logging.Log.Infow("player joined", "room", r.ID, "player", req.id, "side", seat)

	if p.Conn == nil {
		return
	}
	b, err := json.Marshal(welcomeMessage{Type: "welcome", Player: string(p.ID), Side: seat.String(), Board: r.cfg})
	if err == nil {
		p.Conn.Enqueue(b)
	}
}

// assignSeat 左右各一人；座位已占用时降级为观战
func (r *Room) assignSeat(want Seat) Seat {
	var leftTaken, rightTaken bool
	for _, p := range r.Players {
		leftTaken = leftTaken || p.Seat.holdsLeft()
		rightTaken = rightTaken || p.Seat.holdsRight()
	}
	switch want {
	case SeatAuto:
		if !leftTaken {
			return SeatLeft
		}
		if !rightTaken {
			return SeatRight
		}
	case SeatLeft:
		if !leftTaken {
			return SeatLeft
		}
	case SeatRight:
		if !rightTaken {
			return SeatRight
		}
	case SeatBoth:
		if !leftTaken && !rightTaken {
			return SeatBoth
		}
	}
	return SeatSpectator
}

// leavePlayer 移出玩家并松开其按住的键，避免球拍持续移动
func (r *Room) leavePlayer(id PlayerID, conn Sender) {
	p, ok := r.Players[id]
	if !ok || (conn != nil && p.Conn != conn) {
		return
	}
	for k := range p.held {
		r.game.DispatchKey(k, false)
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	delete(r.Players, id)
	logging.Log.Infow("player left", "room", r.ID, "player", id, "side", p.Seat)
}

// applyInput 校验序列号与限流后转发给对局；松开事件不受限流影响
func (r *Room) applyInput(p *Player, in Input) {
	if in.Seq > 0 {
		if in.Seq <= p.lastSeq {
			r.metrics.IncOldSeqIgnored()
			return
		}
		p.lastSeq = in.Seq
	}
	if in.Pressed {
		if p.inputsThisTick >= r.cfg.MaxInputsPerTick {
			r.metrics.IncRateLimited()
			return
		}
		p.inputsThisTick++
	}
	k := p.Seat.resolve(in.Key)
	if k == game.KeyNone {
		r.metrics.IncIgnored()
		return
	}
	r.game.DispatchKey(k, in.Pressed)
	if in.Pressed {
		p.held[k] = true
	} else {
		delete(p.held, k)
	}
	r.metrics.IncAccepted()
}
