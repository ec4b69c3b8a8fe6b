package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const predictionWithDiet = `{
	"message": "High risk of diabetes",
	"prediction": "1",
	"diet_plan": {
		"daily_calories": 1500,
		"meal_plan": {
			"breakfast": {"veg": [{"food":"Oats","quantity_g":60}], "non_veg": [{"food":"Eggs","quantity_g":100}]}
		},
		"notes": {"diabetes": "Low GI foods only."}
	}
}`

func TestPlans_FromStoredPrediction(t *testing.T) {
	fs := &fakeSessionStore{prediction: []byte(predictionWithDiet)}
	svc := NewDietService(fs, testLogger())

	veg, nonVeg, err := svc.Plans(context.Background())
	require.NoError(t, err)
	require.NotNil(t, veg)
	require.NotNil(t, nonVeg)
	require.Equal(t, 1500, veg.TotalCalories)
	require.Equal(t, "Low GI foods only.", veg.Description)
	require.Equal(t, []string{"Oats (60g)"}, veg.Meals[0].Foods)
	require.Equal(t, []string{"Eggs (100g)"}, nonVeg.Meals[0].Foods)
}

func TestPlans_NoStoredPrediction(t *testing.T) {
	svc := NewDietService(&fakeSessionStore{}, testLogger())

	_, _, err := svc.Plans(context.Background())
	require.ErrorIs(t, err, ErrNoPrediction)
}

func TestPlans_PredictionWithoutDietPlan(t *testing.T) {
	fs := &fakeSessionStore{prediction: []byte(`{"message":"Low risk","prediction":"0"}`)}
	svc := NewDietService(fs, testLogger())

	_, _, err := svc.Plans(context.Background())
	require.ErrorIs(t, err, ErrNoPrediction)
}

func TestPlans_CorruptStoredPayload(t *testing.T) {
	fs := &fakeSessionStore{prediction: []byte(`{broken`)}
	svc := NewDietService(fs, testLogger())

	_, _, err := svc.Plans(context.Background())
	require.ErrorIs(t, err, ErrNoPrediction)
}
