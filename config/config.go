package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/prichrd/paddle/game"
)

const (
	ModeServer  = "server"
	ModeDesktop = "desktop"
)

// Config 运行配置：默认值 → TOML 文件 → .env/环境变量 → 命令行参数，逐层覆盖
type Config struct {
	Mode string `toml:"mode"`
	Addr string `toml:"addr"`

	Width      int `toml:"width"`
	Height     int `toml:"height"`
	PixelScale int `toml:"pixel_scale"`
	FPS        int `toml:"fps"`

	FontPath string `toml:"font_path"`
	FontSize int    `toml:"font_size"`

	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	LogStderr bool   `toml:"log_stderr"`

	MaxInputsPerTick int    `toml:"max_inputs_per_tick"`
	WebDir           string `toml:"web_dir"`
	DefaultRoom      string `toml:"default_room"`
}

// Default 与原版桌面游戏一致：1600x900 窗口，20 像素一格，30 帧
func Default() Config {
	return Config{
		Mode:             ModeServer,
		Addr:             ":8080",
		Width:            game.DefaultWidth,
		Height:           game.DefaultHeight,
		PixelScale:       game.DefaultPixelScale,
		FPS:              30,
		FontPath:         "",
		FontSize:         50,
		LogFile:          "paddle.log",
		LogLevel:         "info",
		MaxInputsPerTick: 8,
		DefaultRoom:      "room-1",
	}
}

// LoadFile 用 TOML 文件覆盖已有字段，文件中未出现的字段保持不变
func (c *Config) LoadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv 读取 .env（不存在则跳过）并应用 PADDLE_* 环境变量
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"PADDLE_MODE":         &c.Mode,
		"PADDLE_ADDR":         &c.Addr,
		"PADDLE_FONT_PATH":    &c.FontPath,
		"PADDLE_LOG_FILE":     &c.LogFile,
		"PADDLE_LOG_LEVEL":    &c.LogLevel,
		"PADDLE_WEB_DIR":      &c.WebDir,
		"PADDLE_DEFAULT_ROOM": &c.DefaultRoom,
	}
	for k, p := range strs {
		if v, ok := os.LookupEnv(k); ok {
			*p = v
		}
	}

	ints := map[string]*int{
		"PADDLE_WIDTH":               &c.Width,
		"PADDLE_HEIGHT":              &c.Height,
		"PADDLE_PIXEL_SCALE":         &c.PixelScale,
		"PADDLE_FPS":                 &c.FPS,
		"PADDLE_FONT_SIZE":           &c.FontSize,
		"PADDLE_MAX_INPUTS_PER_TICK": &c.MaxInputsPerTick,
	}
	for k, p := range ints {
		v, ok := os.LookupEnv(k)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*p = n
	}

	if v, ok := os.LookupEnv("PADDLE_LOG_STDERR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PADDLE_LOG_STDERR: %w", err)
		}
		c.LogStderr = b
	}
	return nil
}

// BindFlags 注册命令行参数，默认值取自当前配置，解析后直接写回 c
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "run mode: server or desktop")
	fs.StringVar(&c.Addr, "addr", c.Addr, "server listen address, e.g. :8080")
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells")
	fs.IntVar(&c.PixelScale, "pixel-scale", c.PixelScale, "pixels per cell")
	fs.IntVar(&c.FPS, "fps", c.FPS, "ticks per second")
	fs.StringVar(&c.FontPath, "font", c.FontPath, "TTF font for the desktop score (empty: built-in face)")
	fs.IntVar(&c.FontSize, "font-size", c.FontSize, "score font size")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.LogStderr, "log-stderr", c.LogStderr, "also write logs to stderr")
	fs.IntVar(&c.MaxInputsPerTick, "max-inputs", c.MaxInputsPerTick, "inputs accepted per player per tick")
	fs.StringVar(&c.WebDir, "web", c.WebDir, "serve the web client from this directory instead of the embedded one")
	fs.StringVar(&c.DefaultRoom, "room", c.DefaultRoom, "room created at startup")
}

// Validate 启动前检查，错误在入口处直接致命退出
func (c Config) Validate() error {
	if c.Mode != ModeServer && c.Mode != ModeDesktop {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxInputsPerTick <= 0 {
		return fmt.Errorf("max inputs per tick must be positive, got %d", c.MaxInputsPerTick)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", c.FontSize)
	}
	if _, err := game.New(c.Width, c.Height, c.PixelScale); err != nil {
		return err
	}
	return nil
}
