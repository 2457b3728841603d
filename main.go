package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prichrd/paddle/config"
	"github.com/prichrd/paddle/desktop"
	"github.com/prichrd/paddle/logging"
	"github.com/prichrd/paddle/server"
)

// Paddle 入口：server 模式启动 HTTP + WebSocket 房间服务，desktop 模式打开本地窗口
func main() {
	// 配置加载期间先输出到终端
	_ = logging.Init(logging.Options{Stderr: true})
	cfg := config.Default()

	// 命令行先解析一次以取得 -config / -env，再按层覆盖
	var cfgFile, envFile string
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&cfgFile, "config", "", "TOML config file")
	fs.StringVar(&envFile, "env", ".env", "dotenv file with PADDLE_* variables")
	cfg.BindFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if cfgFile != "" {
		if err := cfg.LoadFile(cfgFile); err != nil {
			logging.Log.Fatalf("%v", err)
		}
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		logging.Log.Fatalf("%v", err)
	}
	// 命令行优先级最高：重新解析覆盖文件与环境变量
	_ = fs.Parse(os.Args[1:])

	// 使用 zap 日志写入文件（带滚动）
	if err := logging.Init(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Stderr: cfg.LogStderr}); err != nil {
		panic(err)
	}
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		logging.Log.Fatalf("config: %v", err)
	}

	if cfg.Mode == config.ModeDesktop {
		if err := desktop.Run(cfg); err != nil {
			logging.Log.Fatalf("desktop: %v", err)
		}
		return
	}
	runServer(cfg)
}

func runServer(cfg config.Config) {
	rm, err := server.NewRoomManager(server.RoomConfig{
		Width:            cfg.Width,
		Height:           cfg.Height,
		PixelScale:       cfg.PixelScale,
		FPS:              cfg.FPS,
		MaxInputsPerTick: cfg.MaxInputsPerTick,
	}, cfg.DefaultRoom)
	if err != nil {
		logging.Log.Fatalf("rooms: %v", err)
	}
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom(cfg.DefaultRoom); err != nil {
		logging.Log.Fatalf("rooms: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", rm.HandleWS)
	mux.Handle("/", server.WebHandler(cfg.WebDir))
	// 管理与监控接口
	mux.HandleFunc("/state", rm.HandleState)
	mux.HandleFunc("/admin/config", rm.HandleAdminConfig)
	mux.HandleFunc("/metrics", rm.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logging.Log.Infof("Paddle listening on %s; open http://localhost%v/", cfg.Addr, cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Warnf("shutdown: %v", err)
	}
	rm.Close()
}
