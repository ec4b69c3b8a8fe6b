package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/services"
)

// Diet prints the vegetarian and non-vegetarian plans derived from the most
// recent prediction. Without a stored prediction there is nothing to show.
func (a *App) Diet(ctx context.Context) error {
	veg, nonVeg, err := a.diet.Plans(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoPrediction) {
			printlnFn("No diet plan available. Run 'predict' first.")
			return nil
		}
		printlnFn(err.Error())
		return err
	}

	printPlan(veg)
	printlnFn("")
	printPlan(nonVeg)
	return nil
}

func printPlan(p *models.DietPlan) {
	if p == nil {
		return
	}
	printlnFn(fmt.Sprintf("=== %s (%d kcal/day) ===", p.Name, p.TotalCalories))
	if p.Description != "" {
		printlnFn(p.Description)
	}
	for _, m := range p.Meals {
		printlnFn(fmt.Sprintf("%s at %s (%d kcal):", m.Name, m.Time, m.Calories))
		if len(m.Foods) == 0 {
			printlnFn("  (no suggestions)")
			continue
		}
		printlnFn("  " + strings.Join(m.Foods, ", "))
	}
}
