package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robalobadob/yams/internal/config"
	"github.com/robalobadob/yams/internal/httpserver"
	"github.com/robalobadob/yams/internal/random"
	"github.com/robalobadob/yams/internal/results"
	"github.com/robalobadob/yams/internal/session"
	"github.com/robalobadob/yams/internal/store"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("yams exited")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "yams",
		Usage: "Yams dice game server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before the environment"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (overrides DB_PATH)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Usage: "listen port (overrides PORT)"},
					&cli.StringFlag{Name: "store", Usage: "game store: memory or sqlite (overrides STORE)"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
			{
				Name:  "leaderboard",
				Usage: "print the best finished games",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "rows to print (overrides LEADERBOARD_SIZE)"},
				},
				Action: printLeaderboard,
			},
		},
		DefaultCommand: "serve",
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("limit") {
		cfg.LeaderboardSize = c.Int("limit")
	}
	setupLogging(cfg)
	return cfg, cfg.Validate()
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	roller, err := random.New(cfg.DiceSeed)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts := []session.Option{session.WithMetrics(session.NewMetrics(reg))}
	srvOpts := httpserver.Options{
		ClientOrigin:    cfg.ClientOrigin,
		RequestTimeout:  cfg.RequestTimeout,
		Gatherer:        reg,
		LeaderboardSize: cfg.LeaderboardSize,
	}

	var st store.Store
	switch cfg.Store {
	case config.StoreMemory:
		st = store.NewMemoryStore()
	default:
		db, err := openDatabase(c.Context, cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		st = store.NewSQLiteStore(db)
		rs := results.NewStore(db)
		opts = append(opts, session.WithRecorder(rs))
		srvOpts.Leaderboard = rs
	}

	srv := httpserver.New(session.New(st, roller, opts...), srvOpts)
	log.Info().Str("addr", cfg.Addr()).Str("store", cfg.Store).Msg("starting yams server")
	return srv.Start(cfg.Addr())
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c.Context, cfg.DBPath)
	if err != nil {
		return err
	}
	return db.Close()
}

func printLeaderboard(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c.Context, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := results.NewStore(db).Leaderboard(c.Context, cfg.LeaderboardSize)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTOTAL\tBONUS\tFINISHED\tGAME")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%t\t%s\t%s\n", i+1, r.Total, r.Bonus, r.FinishedAt.Format(time.DateTime), r.GameID)
	}
	return tw.Flush()
}
