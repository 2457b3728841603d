package game

import (
	"fmt"
	"image"
)

// Snapshot 渲染/广播用的只读状态副本
type Snapshot struct {
	Tick        uint64 `json:"tick"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PixelScale  int    `json:"pixelScale"`
	LeftPaddle  int    `json:"leftPaddle"`
	RightPaddle int    `json:"rightPaddle"`
	Ball        Ball   `json:"ball"`
	LeftScore   int    `json:"leftScore"`
	RightScore  int    `json:"rightScore"`
}

// Snapshot 返回当前状态，不产生任何修改
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:        g.tick,
		Width:       g.width,
		Height:      g.height,
		PixelScale:  g.pixelScale,
		LeftPaddle:  g.leftPaddle,
		RightPaddle: g.rightPaddle,
		Ball:        g.ball,
		LeftScore:   g.leftScore,
		RightScore:  g.rightScore,
	}
}

// ScoreText 比分字符串，形如 "3-1"
func (s Snapshot) ScoreText() string {
	return fmt.Sprintf("%d-%d", s.LeftScore, s.RightScore)
}

// Points 双方总得分
func (s Snapshot) Points() int { return s.LeftScore + s.RightScore }

// PaddleColumn 球拍所在列（即击球列）
func (s Snapshot) PaddleColumn(side Side) int {
	if side == SideRight {
		return s.Width - 2
	}
	return 1
}

// PaddleTop 球拍最上方一格的行号
func (s Snapshot) PaddleTop(side Side) int {
	if side == SideRight {
		return s.RightPaddle - half
	}
	return s.LeftPaddle - half
}

// PaddleRect 球拍的像素矩形
func (s Snapshot) PaddleRect(side Side) image.Rectangle {
	x := s.PaddleColumn(side) * s.PixelScale
	y := s.PaddleTop(side) * s.PixelScale
	return image.Rect(x, y, x+s.PixelScale, y+s.PixelScale*PaddleLength)
}

// BallRect 球所在格的像素矩形
func (s Snapshot) BallRect() image.Rectangle {
	x, y := s.Ball.X*s.PixelScale, s.Ball.Y*s.PixelScale
	return image.Rect(x, y, x+s.PixelScale, y+s.PixelScale)
}

// ScoreOrigin 比分文字左上角：水平居中，距顶部 10 像素
func (s Snapshot) ScoreOrigin(textWidth int) image.Point {
	return image.Pt(s.Width*s.PixelScale/2-textWidth/2, 10)
}
