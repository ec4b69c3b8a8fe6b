package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/glucotrack/glucotrack/internal/client/models"
)

// Input seams, swappable in tests.
var getInt = GetInt
var getFloat = GetFloat
var getYesNo = GetYesNo

// Predict collects the health metrics interactively, submits them for
// assessment and prints the verdict. The latest response is cached locally so
// the diet command can work offline afterwards.
func (a *App) Predict(ctx context.Context) error {
	req, err := a.collectPredictionInput()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	resp, err := a.predictions.Submit(ctx, req)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if resp.Diabetic() {
		printlnFn("Result: at risk of diabetes.")
	} else {
		printlnFn("Result: not at risk.")
	}
	if resp.Message != "" {
		printlnFn(resp.Message)
	}
	if resp.WhyThisResult != "" {
		printlnFn(resp.WhyThisResult)
	}
	printlnFn(fmt.Sprintf("HbA1c classification: %s", models.RiskLabel(req.HbA1cLevel)))
	if len(resp.DietPlan) > 0 {
		printlnFn("A personalized diet plan is available. Type 'diet' to view it.")
	}
	return nil
}

func (a *App) collectPredictionInput() (models.PredictionRequest, error) {
	var zero models.PredictionRequest

	age, err := getInt(a.reader, "Enter age (1-120)", os.Stdout)
	if err != nil {
		return zero, err
	}
	gender, err := getSimpleText(a.reader, "Enter gender (male/female)", os.Stdout)
	if err != nil {
		return zero, err
	}
	smoking, err := getSimpleText(a.reader, "Enter smoking history (never/former/current)", os.Stdout)
	if err != nil {
		return zero, err
	}
	bmi, err := getFloat(a.reader, "Enter BMI", os.Stdout)
	if err != nil {
		return zero, err
	}
	hba1c, err := getFloat(a.reader, "Enter HbA1c level (%)", os.Stdout)
	if err != nil {
		return zero, err
	}
	glucose, err := getFloat(a.reader, "Enter blood glucose level (mg/dL)", os.Stdout)
	if err != nil {
		return zero, err
	}
	hypertension, err := getYesNo(a.reader, "Do you have hypertension?", os.Stdout)
	if err != nil {
		return zero, err
	}
	heartDisease, err := getYesNo(a.reader, "Do you have heart disease?", os.Stdout)
	if err != nil {
		return zero, err
	}
	other, err := getSimpleText(a.reader, "Other diseases (comma separated, empty for none)", os.Stdout)
	if err != nil {
		return zero, err
	}

	return models.PredictionRequest{
		Age:            age,
		Gender:         strings.ToLower(gender),
		SmokingHistory: strings.ToLower(smoking),
		BMI:            bmi,
		HbA1cLevel:     hba1c,
		BloodGlucose:   glucose,
		Hypertension:   hypertension,
		HeartDisease:   heartDisease,
		OtherDiseases:  splitDiseases(other),
	}, nil
}

func splitDiseases(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
