package game

import "fmt"

const (
	// PaddleLength 球拍长度（格），奇数，占据 center-2 .. center+2
	PaddleLength = 5

	DefaultWidth      = 80
	DefaultHeight     = 45
	DefaultPixelScale = 20

	half = PaddleLength / 2
)

// Ball 球的位置与运动方向
type Ball struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	MovingLeft bool `json:"movingLeft"`
	MovingUp   bool `json:"movingUp"`
}

// Game 模拟状态机：持有全部可变状态，由驱动循环单线程推进
type Game struct {
	width      int
	height     int
	pixelScale int

	keys        KeySet
	leftPaddle  int
	rightPaddle int
	ball        Ball
	leftScore   int
	rightScore  int
	tick        uint64
}

// New 创建对局：球拍与球居中，球初始向右下运动，比分为 0
func New(width, height, pixelScale int) (*Game, error) {
	if height <= PaddleLength {
		return nil, fmt.Errorf("board height %d must exceed paddle length %d", height, PaddleLength)
	}
	if width < 4 {
		return nil, fmt.Errorf("board width %d too small, need at least 4", width)
	}
	if pixelScale < 1 {
		return nil, fmt.Errorf("pixel scale %d must be positive", pixelScale)
	}
	return &Game{
		width:       width,
		height:      height,
		pixelScale:  pixelScale,
		leftPaddle:  height / 2,
		rightPaddle: height / 2,
		ball:        Ball{X: width / 2, Y: height / 2},
	}, nil
}

// DispatchKey 记录按键按下/松开，不立即移动，等下一次 Tick 生效
func (g *Game) DispatchKey(k Key, pressed bool) {
	g.keys.set(k, pressed)
}

// Keys 返回当前按住的键
func (g *Game) Keys() KeySet { return g.keys }

// Tick 推进一步：球拍移动 → 球移动 → 球拍碰撞 → 计分
func (g *Game) Tick() {
	g.tick++

	g.leftPaddle = g.movePaddle(g.leftPaddle, g.keys.LeftUp, g.keys.LeftDown)
	g.rightPaddle = g.movePaddle(g.rightPaddle, g.keys.RightUp, g.keys.RightDown)

	g.ball.X, g.ball.MovingLeft = step(g.ball.X, g.ball.MovingLeft, g.width)
	g.ball.Y, g.ball.MovingUp = step(g.ball.Y, g.ball.MovingUp, g.height)

	if g.ball.X == 1 && g.covers(g.leftPaddle, g.ball.Y) {
		g.ball.MovingLeft = false
	} else if g.ball.X == g.width-2 && g.covers(g.rightPaddle, g.ball.Y) {
		g.ball.MovingLeft = true
	}

	if g.ball.X == 0 && !g.ball.MovingLeft {
		g.rightScore++
	} else if g.ball.X == g.width-1 && g.ball.MovingLeft {
		g.leftScore++
	}
}

// movePaddle 上键优先；边界检查保证中心始终在 [half, height-half-1]
func (g *Game) movePaddle(center int, up, down bool) int {
	if up && center > half {
		return center - 1
	} else if down && center < g.height-half-1 {
		return center + 1
	}
	return center
}

func (g *Game) covers(center, y int) bool {
	return y >= center-half && y <= center+half
}

// step 沿一个轴移动一格，到达墙边时原地反向
func step(pos int, decreasing bool, size int) (int, bool) {
	if decreasing {
		if pos > 0 {
			return pos - 1, true
		}
		return pos, false
	}
	if pos < size-1 {
		return pos + 1, false
	}
	return pos, true
}
