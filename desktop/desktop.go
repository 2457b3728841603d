package desktop

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/prichrd/paddle/config"
	"github.com/prichrd/paddle/game"
	"github.com/prichrd/paddle/logging"
)

const windowTitle = "PADDLE"

// 本地双人：W/S 控制左侧，方向键控制右侧
var bindings = map[ebiten.Key]game.Key{
	ebiten.KeyW:         game.KeyLeftUp,
	ebiten.KeyS:         game.KeyLeftDown,
	ebiten.KeyArrowUp:   game.KeyRightUp,
	ebiten.KeyArrowDown: game.KeyRightDown,
}

// App 本地驱动：采集键盘事件 → Tick → 绘制快照
type App struct {
	game *game.Game
	face font.Face

	keys []ebiten.Key
}

// New 创建对局并加载比分字体
func New(cfg config.Config) (*App, error) {
	g, err := game.New(cfg.Width, cfg.Height, cfg.PixelScale)
	if err != nil {
		return nil, err
	}
	face, err := loadFace(cfg.FontPath, float64(cfg.FontSize))
	if err != nil {
		return nil, err
	}
	return &App{game: g, face: face}, nil
}

// loadFace path 为空时使用内置位图字体
func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse %s: %w", path, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: face: %w", err)
	}
	return face, nil
}

// Update 每帧：投递按键按下/松开事件，然后推进一步
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if gk, ok := bindings[k]; ok {
			a.game.DispatchKey(gk, true)
		}
	}
	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		if gk, ok := bindings[k]; ok {
			a.game.DispatchKey(gk, false)
		}
	}
	a.game.Tick()
	return nil
}

// Draw 黑底白色球拍、球与比分
func (a *App) Draw(screen *ebiten.Image) {
	s := a.game.Snapshot()
	screen.Fill(color.Black)

	for _, side := range []game.Side{game.SideLeft, game.SideRight} {
		r := s.PaddleRect(side)
		ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), color.White)
	}
	b := s.BallRect()
	ebitenutil.DrawRect(screen, float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()), color.White)

	score := s.ScoreText()
	bounds := text.BoundString(a.face, score)
	at := s.ScoreOrigin(bounds.Dx())
	text.Draw(screen, score, a.face, at.X-bounds.Min.X, at.Y-bounds.Min.Y, color.White)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := a.game.Snapshot()
	return s.Width * s.PixelScale, s.Height * s.PixelScale
}

// Run 打开窗口并以 cfg.FPS 的固定频率运行，直到关闭窗口或按下 Esc
func Run(cfg config.Config) error {
	app, err := New(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(cfg.Width*cfg.PixelScale, cfg.Height*cfg.PixelScale)
	ebiten.SetTPS(cfg.FPS)
	logging.Log.Infow("desktop started", "fps", cfg.FPS, "board", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	// Update 返回 ebiten.Termination 时 RunGame 返回 nil
	err = ebiten.RunGame(app)
	s := app.game.Snapshot()
	logging.Log.Infow("desktop stopped", "tick", s.Tick, "score", s.ScoreText())
	return err
}
