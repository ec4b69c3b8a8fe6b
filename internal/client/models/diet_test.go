package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const dietPlanFixture = `{
	"daily_calories": 1800,
	"meal_plan": {
		"breakfast": {
			"veg":     [{"food":"Oats","quantity_g":60}],
			"non_veg": [{"food":"Egg whites","quantity_g":100}]
		},
		"lunch": {
			"veg":     [{"food":"Dal","quantity_g":150},{"food":"Brown rice","quantity_g":100}],
			"non_veg": [{"food":"Grilled chicken","quantity_g":120}]
		},
		"dinner": {
			"veg":     [{"food":"Paneer","quantity_g":80}],
			"non_veg": [{"food":"Fish curry","quantity_g":150}]
		}
	},
	"notes": {"diabetes": "Keep carbohydrate intake even across meals."}
}`

func TestMapDietPlans(t *testing.T) {
	veg, nonVeg, err := MapDietPlans([]byte(dietPlanFixture))
	require.NoError(t, err)
	require.NotNil(t, veg)
	require.NotNil(t, nonVeg)

	require.Equal(t, 1800, veg.TotalCalories)
	require.Equal(t, "Keep carbohydrate intake even across meals.", veg.Description)
	require.Len(t, veg.Meals, 3)

	require.Equal(t, "Breakfast", veg.Meals[0].Name)
	require.Equal(t, "8:00 AM", veg.Meals[0].Time)
	require.Equal(t, 600, veg.Meals[0].Calories)
	require.Equal(t, []string{"Oats (60g)"}, veg.Meals[0].Foods)

	require.Equal(t, []string{"Dal (150g)", "Brown rice (100g)"}, veg.Meals[1].Foods)
	require.Equal(t, []string{"Fish curry (150g)"}, nonVeg.Meals[2].Foods)
	require.Equal(t, "non-vegetarian", nonVeg.Category)
}

func TestMapDietPlans_NoMealPlan(t *testing.T) {
	veg, nonVeg, err := MapDietPlans([]byte(`{"daily_calories": 2000}`))
	require.NoError(t, err)
	require.Nil(t, veg)
	require.Nil(t, nonVeg)
}

func TestMapDietPlans_EmptyAndInvalid(t *testing.T) {
	veg, nonVeg, err := MapDietPlans(nil)
	require.NoError(t, err)
	require.Nil(t, veg)
	require.Nil(t, nonVeg)

	_, _, err = MapDietPlans([]byte(`{broken`))
	require.Error(t, err)
}

func TestMapDietPlans_DescriptionFallback(t *testing.T) {
	veg, nonVeg, err := MapDietPlans([]byte(`{"daily_calories":1500,"meal_plan":{}}`))
	require.NoError(t, err)
	require.Equal(t, "Balanced vegetarian diet for blood sugar control.", veg.Description)
	require.Equal(t, "Protein-rich diet for stable glucose levels.", nonVeg.Description)
}
