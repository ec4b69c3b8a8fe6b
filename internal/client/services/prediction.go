package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glucotrack/glucotrack/internal/client/api"
	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/sessionstore"
	"github.com/glucotrack/glucotrack/internal/logging"
	"github.com/go-playground/validator/v10"
)

// PredictionService submits assessments and reads back history and trend data.
type PredictionService struct {
	client caller
	store  sessionstore.Store
	log    logging.Logger
}

// NewPredictionService wires the service to the pipeline and the local store.
func NewPredictionService(client caller, store sessionstore.Store, log logging.Logger) *PredictionService {
	return &PredictionService{client: client, store: store, log: log}
}

// Submit validates the request locally, sends it to the model, and persists
// the raw response for the diet view. Validation failures never reach the
// network.
func (s *PredictionService) Submit(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return models.PredictionResponse{}, api.NewValidation(validationMessage(fieldErrs[0]))
		}
		return models.PredictionResponse{}, api.NewValidation("Invalid prediction input.")
	}
	if req.OtherDiseases == nil {
		req.OtherDiseases = []string{}
	}

	body, err := s.client.Post(ctx, "/prediction", req)
	if err != nil {
		return models.PredictionResponse{}, err
	}

	var resp models.PredictionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		s.log.Error(ctx, "prediction reply not decodable", "error", err)
		return models.PredictionResponse{}, api.NewMalformed("Invalid response from server.")
	}
	if resp.Prediction == "" {
		return models.PredictionResponse{}, api.NewMalformed("Invalid response from server.")
	}

	if err := s.store.SavePrediction(ctx, body); err != nil {
		// The verdict still reached the user; only the diet view loses out.
		s.log.Warn(ctx, "could not persist prediction payload", "error", err)
	}
	return resp, nil
}

// History fetches past assessments, normalized and sorted oldest first.
func (s *PredictionService) History(ctx context.Context) ([]models.HistoryRecord, error) {
	body, err := s.client.Get(ctx, "/prediction/history")
	if err != nil {
		return nil, err
	}

	records, err := models.DecodeHistory(body)
	if err != nil {
		s.log.Error(ctx, "history reply not decodable", "error", err)
		return nil, api.NewMalformed("Invalid response from server.")
	}
	return records, nil
}

// LastChecks fetches the credential-scoped trend rows for the charts view.
// Rows are dynamic: column names vary per deployment.
func (s *PredictionService) LastChecks(ctx context.Context) ([]map[string]any, error) {
	body, err := s.client.Get(ctx, "/api/graph/last-checks")
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		s.log.Error(ctx, "graph reply not decodable", "error", err)
		return nil, api.NewMalformed("Invalid response from server.")
	}
	return rows, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Age":
		return "Enter a valid age (1-120)."
	case "Gender":
		return "Please select a gender."
	case "SmokingHistory":
		return "Please select smoking history."
	case "BMI":
		return "Enter a valid BMI."
	case "HbA1cLevel":
		return "Enter a valid HbA1c level."
	case "BloodGlucose":
		return "Enter a valid blood glucose level."
	case "Hypertension":
		return "Please select hypertension."
	case "HeartDisease":
		return "Please select heart disease."
	default:
		return fmt.Sprintf("Invalid value for %s.", fe.Field())
	}
}
