package server

import (
	"time"

	"github.com/prichrd/paddle/logging"
)

// tickInterval 每帧间隔，fps 由房间配置决定（默认 30）
func tickInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}

// StartTicker 启动房间的 Tick 循环（单线程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(tickInterval(r.cfg.FPS))
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				r.closePlayers()
				return
			case <-ticker.C:
				start := time.Now()
				r.RunTick()
				r.metrics.AddTick(time.Since(start).Nanoseconds())
			}
		}
	}()
}

// Stop 停止 Tick 循环并关闭所有连接；未启动时直接关闭连接
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
		if r.tickerStarted {
			<-r.done
		} else {
			r.closePlayers()
		}
		logging.Log.Infow("room stopped", "room", r.ID, "tick", r.Snapshot().Tick)
	})
}

func (r *Room) closePlayers() {
	for id, p := range r.Players {
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(r.Players, id)
	}
}
