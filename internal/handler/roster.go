package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
)

const rosterCacheKey = "roster"

// loadRoster 는 강사, 보조강사, 헬퍼 이름표를 돌려준다.
// redis 에 있으면 그것을 쓰고, 없으면 DB 에서 만든 뒤 RosterExpiration 초 동안 캐시한다.
// 캐시 오류는 기록만 하고 DB 결과를 그대로 쓴다.
func (h *Handler) loadRoster(ctx context.Context) (*conflict.Roster, error) {
	if h.redisClient != nil {
		cached, err := h.redisClient.Get(ctx, rosterCacheKey).Bytes()
		switch {
		case err == nil:
			roster := &conflict.Roster{}
			uerr := json.Unmarshal(cached, roster)
			if uerr == nil {
				return roster, nil
			}
			slog.Warn("캐시된 인력 이름표를 읽지 못했습니다", "error", uerr)
		case !errors.Is(err, redis.Nil):
			slog.Warn("인력 이름표 캐시 조회 실패", "error", err)
		}
	}

	instructors, err := h.repository.GetAllStaff(domain.StaffInstructor)
	if err != nil {
		return nil, err
	}
	assistants, err := h.repository.GetAllStaff(domain.StaffAssistant)
	if err != nil {
		return nil, err
	}
	helpers, err := h.repository.GetAllStaff(domain.StaffHelper)
	if err != nil {
		return nil, err
	}

	roster := conflict.NewRoster(instructors, assistants, helpers)

	if h.redisClient != nil {
		data, err := json.Marshal(roster)
		if err != nil {
			return nil, errors.Wrap(err, "marshal roster")
		}
		expiration := time.Duration(h.config.Redis.RosterExpiration) * time.Second
		if err := h.redisClient.Set(ctx, rosterCacheKey, data, expiration).Err(); err != nil {
			slog.Warn("인력 이름표 캐시 저장 실패", "error", err)
		}
	}

	return roster, nil
}

// invalidateRoster 는 인력 정보가 바뀐 뒤 호출한다.
func (h *Handler) invalidateRoster() {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, rosterCacheKey).Err(); err != nil {
		slog.Warn("인력 이름표 캐시 삭제 실패", "error", err)
	}
}
