package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/healing-forest/reservation/backend/internal/config"
	"github.com/healing-forest/reservation/backend/internal/repository"
	"github.com/healing-forest/reservation/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "실행할 작업 (1: 임의 직원 계정, 2: 기준 정보, 3: 임의 예약과 프로그램, 지출)")
	flag.IntVar(&n, "n", 5, "추가할 개수")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 읽을 수 없습니다", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("DB 연결 풀을 만들 수 없습니다", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("DB 에 연결할 수 없습니다", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("작업을 지정하지 않았습니다")
	case 1:
		if n <= 0 {
			slog.Error("올바른 사용자 수를 입력하세요")
			return
		}
		cnt := seed.SeedUsers(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
		slog.Info("사용자 추가 완료", slog.Int("count", cnt))
	case 2:
		if err := seed.SeedReferenceData(repo); err != nil {
			slog.Error("기준 정보 추가 실패", slog.String("error", err.Error()))
			return
		}
		slog.Info("기준 정보 추가 완료")
	case 3:
		if n <= 0 {
			slog.Error("올바른 예약 수를 입력하세요")
			return
		}
		cnt, err := seed.SeedReservations(repo, n, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("예약 추가 실패", slog.String("error", err.Error()))
		}
		slog.Info("예약 추가 완료", slog.Int("count", cnt))
	default:
		slog.Error("알 수 없는 작업입니다")
	}
}
