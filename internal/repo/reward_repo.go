package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/fideliza/internal/model/reward"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
)

type RewardRepository struct {
	DB
}

func NewRewardRepository(pool connectionPool, log *slog.Logger) *RewardRepository {
	return &RewardRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

const queryListRewards = `
SELECT id, name, point_cost, description
FROM rewards
ORDER BY point_cost ASC;`

const querySelectReward = `
SELECT id, name, point_cost, description
FROM rewards
WHERE id = $1;`

func (r *RewardRepository) List(ctx context.Context) ([]reward.Reward, error) {
	listLogic := func() ([]reward.Reward, error) {
		rows, err := r.pool.Query(ctx, queryListRewards)
		if err != nil {
			return nil, fmt.Errorf("failed to list rewards: %w", err)
		}
		defer rows.Close()

		var rewards []reward.Reward
		for rows.Next() {
			var rw reward.Reward
			if err := rows.Scan(&rw.ID, &rw.Name, &rw.PointCost, &rw.Description); err != nil {
				return nil, fmt.Errorf("failed to scan reward: %w", err)
			}
			rewards = append(rewards, rw)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read rewards: %w", err)
		}
		return rewards, nil
	}

	return WithRetry[[]reward.Reward](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (r *RewardRepository) FindByID(ctx context.Context, id string) (reward.Reward, error) {
	findLogic := func() (reward.Reward, error) {
		var rw reward.Reward
		err := r.pool.QueryRow(ctx, querySelectReward, id).
			Scan(&rw.ID, &rw.Name, &rw.PointCost, &rw.Description)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return reward.Reward{}, serviceerrs.ErrRewardNotFound
			}
			return reward.Reward{}, fmt.Errorf("failed to find reward by ID in DB: %w", err)
		}
		return rw, nil
	}

	rw, err := WithRetry[reward.Reward](findLogic, 0)
	if err != nil {
		return reward.Reward{}, err //nolint: wrapcheck // error from wrapped function
	}
	return rw, nil
}
