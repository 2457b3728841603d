package game

import (
	"image"
	"math/rand"
	"testing"
)

func newDefault(t *testing.T) *Game {
	t.Helper()
	g, err := New(DefaultWidth, DefaultHeight, DefaultPixelScale)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewCentersEverything(t *testing.T) {
	g := newDefault(t)
	s := g.Snapshot()
	if s.LeftPaddle != 22 || s.RightPaddle != 22 {
		t.Fatalf("paddles = %d,%d, want 22,22", s.LeftPaddle, s.RightPaddle)
	}
	want := Ball{X: 40, Y: 22}
	if s.Ball != want {
		t.Fatalf("ball = %+v, want %+v", s.Ball, want)
	}
	if s.LeftScore != 0 || s.RightScore != 0 || s.Tick != 0 {
		t.Fatalf("unexpected initial snapshot %+v", s)
	}
	if s.PixelScale != DefaultPixelScale {
		t.Fatalf("pixel scale = %d, want %d", s.PixelScale, DefaultPixelScale)
	}
}

func TestNewRejectsInvalidBoards(t *testing.T) {
	cases := []struct{ w, h, px int }{
		{80, PaddleLength, 20},
		{3, 45, 20},
		{80, 45, 0},
	}
	for _, c := range cases {
		if _, err := New(c.w, c.h, c.px); err == nil {
			t.Fatalf("New(%d,%d,%d) succeeded, want error", c.w, c.h, c.px)
		}
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	g := newDefault(t)
	g.DispatchKey(KeyLeftUp, true)
	g.DispatchKey(KeyRightDown, true)
	for i := 0; i < 100; i++ {
		g.Tick()
	}
	if g.leftPaddle != 2 {
		t.Fatalf("left paddle = %d, want 2", g.leftPaddle)
	}
	if g.rightPaddle != DefaultHeight-3 {
		t.Fatalf("right paddle = %d, want %d", g.rightPaddle, DefaultHeight-3)
	}

	g.DispatchKey(KeyLeftUp, false)
	g.DispatchKey(KeyLeftDown, true)
	for i := 0; i < 100; i++ {
		g.Tick()
	}
	if g.leftPaddle != DefaultHeight-3 {
		t.Fatalf("left paddle = %d, want %d", g.leftPaddle, DefaultHeight-3)
	}
}

func TestUpWinsWhenBothHeld(t *testing.T) {
	g := newDefault(t)
	g.DispatchKey(KeyLeftUp, true)
	g.DispatchKey(KeyLeftDown, true)
	g.DispatchKey(KeyRightDown, true)
	g.DispatchKey(KeyRightUp, true)
	g.Tick()
	if g.leftPaddle != 21 || g.rightPaddle != 21 {
		t.Fatalf("paddles = %d,%d, want 21,21", g.leftPaddle, g.rightPaddle)
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	g := newDefault(t)
	rng := rand.New(rand.NewSource(7))
	keys := []Key{KeyLeftUp, KeyLeftDown, KeyRightUp, KeyRightDown}
	prev := g.Snapshot()
	for i := 0; i < 20000; i++ {
		if rng.Intn(4) == 0 {
			g.DispatchKey(keys[rng.Intn(len(keys))], rng.Intn(2) == 0)
		}
		g.Tick()
		s := g.Snapshot()
		for _, p := range []int{s.LeftPaddle, s.RightPaddle} {
			if p < PaddleLength/2 || p > s.Height-PaddleLength/2-1 {
				t.Fatalf("tick %d: paddle %d out of bounds", i, p)
			}
		}
		if s.Ball.X < 0 || s.Ball.X >= s.Width || s.Ball.Y < 0 || s.Ball.Y >= s.Height {
			t.Fatalf("tick %d: ball %+v outside board", i, s.Ball)
		}
		dl, dr := s.LeftScore-prev.LeftScore, s.RightScore-prev.RightScore
		if dl < 0 || dr < 0 || dl+dr > 1 {
			t.Fatalf("tick %d: score moved %d,%d", i, dl, dr)
		}
		prev = s
	}
}

func TestWallBounceScoresForOpponent(t *testing.T) {
	g := newDefault(t)
	g.ball = Ball{X: DefaultWidth - 1, Y: 10}
	g.Tick()
	if !g.ball.MovingLeft || g.ball.X != DefaultWidth-1 {
		t.Fatalf("ball = %+v, want bounced at far wall", g.ball)
	}
	if g.leftScore != 1 || g.rightScore != 0 {
		t.Fatalf("score = %d-%d, want 1-0", g.leftScore, g.rightScore)
	}

	g.ball = Ball{X: 0, Y: 10, MovingLeft: true}
	g.Tick()
	if g.ball.MovingLeft || g.ball.X != 0 {
		t.Fatalf("ball = %+v, want bounced at near wall", g.ball)
	}
	if g.leftScore != 1 || g.rightScore != 1 {
		t.Fatalf("score = %d-%d, want 1-1", g.leftScore, g.rightScore)
	}
}

func TestPaddleBlocksBall(t *testing.T) {
	g := newDefault(t)
	g.ball = Ball{X: 2, Y: 22, MovingLeft: true}
	g.Tick()
	if g.ball.X != 1 || g.ball.MovingLeft {
		t.Fatalf("ball = %+v, want at strike column moving right", g.ball)
	}
	g.Tick()
	if g.ball.X != 2 {
		t.Fatalf("ball x = %d, want 2", g.ball.X)
	}
	if g.leftScore != 0 || g.rightScore != 0 {
		t.Fatalf("score = %d-%d, want 0-0", g.leftScore, g.rightScore)
	}
}

func TestMissScoresOnWallTouch(t *testing.T) {
	g := newDefault(t)
	g.ball = Ball{X: 2, Y: 30, MovingLeft: true}
	g.Tick()
	g.Tick()
	if g.ball.X != 0 || g.rightScore != 0 {
		t.Fatalf("after reaching wall: ball %+v right score %d, want x=0 and no score yet", g.ball, g.rightScore)
	}
	g.Tick()
	if g.rightScore != 1 || g.ball.MovingLeft {
		t.Fatalf("after bounce: ball %+v right score %d, want 1", g.ball, g.rightScore)
	}
}

func TestKeyReleaseIsIdempotent(t *testing.T) {
	g := newDefault(t)
	before := g.Snapshot()
	g.DispatchKey(KeyRightUp, false)
	g.DispatchKey(Key(42), true)
	g.DispatchKey(KeyNone, true)
	if g.Keys() != (KeySet{}) {
		t.Fatalf("keys = %+v, want none held", g.Keys())
	}
	if g.Snapshot() != before {
		t.Fatalf("snapshot changed without a tick")
	}

	g.DispatchKey(KeyLeftDown, true)
	g.DispatchKey(KeyLeftDown, true)
	if !g.Keys().Held(KeyLeftDown) {
		t.Fatalf("left down not held")
	}
	g.DispatchKey(KeyLeftDown, false)
	if g.Keys().Held(KeyLeftDown) {
		t.Fatalf("left down still held after release")
	}
}

func TestOpeningRallyReachesRightWall(t *testing.T) {
	g := newDefault(t)
	for i := 0; i < 38; i++ {
		g.Tick()
	}
	want := Ball{X: 78, Y: 29, MovingUp: true}
	if g.ball != want {
		t.Fatalf("after 38 ticks ball = %+v, want %+v", g.ball, want)
	}
	if g.leftScore != 0 || g.rightScore != 0 {
		t.Fatalf("score = %d-%d, want 0-0", g.leftScore, g.rightScore)
	}
	g.Tick()
	g.Tick()
	if g.leftScore != 1 {
		t.Fatalf("left score = %d after touching far wall, want 1", g.leftScore)
	}
}

func TestOpeningRallyIntercepted(t *testing.T) {
	g := newDefault(t)
	g.DispatchKey(KeyRightDown, true)
	for i := 0; i < 7; i++ {
		g.Tick()
	}
	g.DispatchKey(KeyRightDown, false)
	if g.rightPaddle != 29 {
		t.Fatalf("right paddle = %d, want 29", g.rightPaddle)
	}
	for i := 7; i < 38; i++ {
		g.Tick()
	}
	if g.ball.X != 78 || !g.ball.MovingLeft {
		t.Fatalf("ball = %+v, want bounced off right paddle", g.ball)
	}
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	if g.ball.X != 68 || g.leftScore != 0 || g.rightScore != 0 {
		t.Fatalf("ball %+v score %d-%d, want x=68 and 0-0", g.ball, g.leftScore, g.rightScore)
	}
}

func TestSnapshotHelpers(t *testing.T) {
	g := newDefault(t)
	g.leftScore, g.rightScore = 3, 1
	g.Tick()
	s := g.Snapshot()
	if s.ScoreText() != "3-1" {
		t.Fatalf("score text = %q, want %q", s.ScoreText(), "3-1")
	}
	if s.Points() != 4 {
		t.Fatalf("points = %d, want 4", s.Points())
	}
	if s.Tick != 1 {
		t.Fatalf("tick = %d, want 1", s.Tick)
	}
	if s.PaddleColumn(SideLeft) != 1 || s.PaddleColumn(SideRight) != 78 {
		t.Fatalf("columns = %d,%d, want 1,78", s.PaddleColumn(SideLeft), s.PaddleColumn(SideRight))
	}
	if s.PaddleTop(SideLeft) != 20 {
		t.Fatalf("left top = %d, want 20", s.PaddleTop(SideLeft))
	}
}

func TestKeyNames(t *testing.T) {
	for _, k := range []Key{KeyLeftUp, KeyLeftDown, KeyRightUp, KeyRightDown} {
		if got := ParseKey(k.String()); got != k {
			t.Fatalf("ParseKey(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if ParseKey("jump") != KeyNone {
		t.Fatalf("unknown name should parse to KeyNone")
	}
	if KeyFor(SideRight, true) != KeyRightUp || KeyFor(SideLeft, false) != KeyLeftDown {
		t.Fatalf("KeyFor mapping wrong")
	}
}

func TestSnapshotPixelGeometry(t *testing.T) {
	g := newDefault(t)
	s := g.Snapshot()
	if got, want := s.PaddleRect(SideLeft), image.Rect(20, 400, 40, 500); got != want {
		t.Fatalf("left paddle rect = %v, want %v", got, want)
	}
	if got, want := s.PaddleRect(SideRight), image.Rect(1560, 400, 1580, 500); got != want {
		t.Fatalf("right paddle rect = %v, want %v", got, want)
	}
	if got, want := s.BallRect(), image.Rect(800, 440, 820, 460); got != want {
		t.Fatalf("ball rect = %v, want %v", got, want)
	}
	if got, want := s.ScoreOrigin(60), image.Pt(770, 10); got != want {
		t.Fatalf("score origin = %v, want %v", got, want)
	}
}
