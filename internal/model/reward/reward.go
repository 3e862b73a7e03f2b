package reward

import "context"

type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointCost   int64  `json:"point_cost"`
}

type Repository interface {
	List(ctx context.Context) ([]Reward, error)
	FindByID(ctx context.Context, id string) (Reward, error)
}
