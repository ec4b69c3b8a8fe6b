package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Meal is a single meal slot of a generated diet plan.
type Meal struct {
	Name     string
	Time     string
	Calories int
	Foods    []string
}

// DietPlan is a full-day plan in the shape the diet view renders.
type DietPlan struct {
	ID            string
	Name          string
	Description   string
	Category      string
	TotalCalories int
	Meals         []Meal
}

// dietPayload mirrors the backend's generated diet_plan document.
type dietPayload struct {
	DailyCalories float64                         `json:"daily_calories"`
	MealPlan      map[string]map[string][]dietFood `json:"meal_plan"`
	Notes         map[string]string               `json:"notes"`
}

type dietFood struct {
	Food      string  `json:"food"`
	QuantityG float64 `json:"quantity_g"`
}

var mealSlots = []struct {
	key  string
	name string
	at   string
}{
	{"breakfast", "Breakfast", "8:00 AM"},
	{"lunch", "Lunch", "1:00 PM"},
	{"dinner", "Dinner", "8:00 PM"},
}

// MapDietPlans converts a raw diet_plan document into the vegetarian and
// non-vegetarian plans shown to the user. Returns (nil, nil, nil) when the
// payload has no meal plan, which callers treat as "nothing to show".
func MapDietPlans(raw json.RawMessage) (veg, nonVeg *DietPlan, err error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	var payload dietPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, fmt.Errorf("decoding diet plan: %w", err)
	}
	if payload.MealPlan == nil {
		return nil, nil, nil
	}

	total := int(math.Round(payload.DailyCalories))
	perMeal := int(math.Round(payload.DailyCalories / 3))

	veg = &DietPlan{
		ID:            "veg",
		Name:          "Vegetarian Diet Plan",
		Description:   planDescription(payload.Notes, "Balanced vegetarian diet for blood sugar control."),
		Category:      "vegetarian",
		TotalCalories: total,
		Meals:         buildMeals(payload.MealPlan, "veg", perMeal),
	}
	nonVeg = &DietPlan{
		ID:            "non-veg",
		Name:          "Non-Vegetarian Diet Plan",
		Description:   planDescription(payload.Notes, "Protein-rich diet for stable glucose levels."),
		Category:      "non-vegetarian",
		TotalCalories: total,
		Meals:         buildMeals(payload.MealPlan, "non_veg", perMeal),
	}
	return veg, nonVeg, nil
}

func buildMeals(plan map[string]map[string][]dietFood, variant string, calories int) []Meal {
	meals := make([]Meal, 0, len(mealSlots))
	for _, slot := range mealSlots {
		meal := Meal{Name: slot.name, Time: slot.at, Calories: calories}
		for _, f := range plan[slot.key][variant] {
			meal.Foods = append(meal.Foods, fmt.Sprintf("%s (%.0fg)", f.Food, f.QuantityG))
		}
		meals = append(meals, meal)
	}
	return meals
}

func planDescription(notes map[string]string, fallback string) string {
	if d, ok := notes["diabetes"]; ok && d != "" {
		return d
	}
	return fallback
}
