package main

import (
	"flag"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendlog.com/attendlog/clock"
	"attendlog.com/attendlog/config"
	"attendlog.com/attendlog/core"
	"attendlog.com/attendlog/store"
	"attendlog.com/attendlog/web/handlers"
	"attendlog.com/attendlog/web/middlewares"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	s, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Clock.Timezone)
	if err != nil {
		log.Fatal("load timezone", zap.String("timezone", cfg.Clock.Timezone), zap.Error(err))
	}

	var clk core.Clock = clock.System{Loc: loc}
	if cfg.Clock.RemoteURL != "" {
		clk = &clock.Remote{
			URL:      cfg.Clock.RemoteURL,
			Loc:      loc,
			Fallback: clock.System{Loc: loc},
			Log:      log,
		}
	}

	groups := make(map[string]core.GroupShift, len(cfg.Shifts.Groups))
	for name, times := range cfg.Shifts.Groups {
		groups[name] = core.GroupShift{AM: times.AM, PM: times.PM}
	}
	policy, err := core.NewShiftPolicy(cfg.Shifts.AMExpected, cfg.Shifts.PMExpected, groups)
	if err != nil {
		log.Fatal("build shift policy", zap.Error(err))
	}

	pending := core.NewPendingTracker(time.Duration(cfg.Pending.TTLMinutes) * time.Minute)
	machine := core.NewMachine(clk, s, s, pending, policy, cfg.Limits)

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	handlers.RegisterAuth(r, cfg.Auth)

	// Kiosk routes are open; the terminal on the floor has no login.
	kiosk := r.Group("/api")
	handlers.RegisterAttendance(kiosk, machine)

	protected := r.Group("/api")
	protected.Use(middlewares.Authentication([]byte(cfg.Auth.Secret)))
	handlers.RegisterReports(protected, s)

	admin := protected.Group("")
	admin.Use(middlewares.RequireRole("admin"))
	handlers.RegisterEmployees(admin, s)
	handlers.RegisterMaintenance(admin, s)

	log.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
