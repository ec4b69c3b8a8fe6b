package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/sessionstore"
	"github.com/glucotrack/glucotrack/internal/logging"
)

// ErrNoPrediction means no assessment has been stored yet, so there is no
// diet plan to show.
var ErrNoPrediction = errors.New("no stored prediction")

// DietService renders diet plans out of the last stored prediction payload.
// It is purely local: the plan was generated by the backend alongside the
// prediction and cached in the session store.
type DietService struct {
	store sessionstore.Store
	log   logging.Logger
}

// NewDietService wires the diet service to the local store.
func NewDietService(store sessionstore.Store, log logging.Logger) *DietService {
	return &DietService{store: store, log: log}
}

// Plans returns the vegetarian and non-vegetarian plans from the last
// prediction, or ErrNoPrediction when none is available.
func (s *DietService) Plans(ctx context.Context) (veg, nonVeg *models.DietPlan, err error) {
	raw, err := s.store.LoadPrediction(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, ErrNoPrediction
	}

	var payload struct {
		DietPlan json.RawMessage `json:"diet_plan"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.log.Warn(ctx, "stored prediction payload not decodable", "error", err)
		return nil, nil, ErrNoPrediction
	}

	veg, nonVeg, err = models.MapDietPlans(payload.DietPlan)
	if err != nil {
		return nil, nil, err
	}
	if veg == nil && nonVeg == nil {
		return nil, nil, ErrNoPrediction
	}
	return veg, nonVeg, nil
}
