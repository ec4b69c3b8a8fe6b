package models

import "encoding/json"

// PredictionRequest is the payload for a risk assessment, matching the
// backend DTO field for field. Validation runs locally before any network
// call is made.
type PredictionRequest struct {
	Age            int      `json:"age" validate:"required,gte=1,lte=120"`
	Gender         string   `json:"gender" validate:"required,oneof=male female"`
	SmokingHistory string   `json:"smoking_history" validate:"required,oneof=never former current"`
	BMI            float64  `json:"bmi" validate:"required,gt=0"`
	HbA1cLevel     float64  `json:"HbA1c_level" validate:"required,gt=0"`
	BloodGlucose   float64  `json:"blood_glucose_level" validate:"required,gt=0"`
	Hypertension   int      `json:"hypertension" validate:"oneof=0 1"`
	HeartDisease   int      `json:"heart_disease" validate:"oneof=0 1"`
	OtherDiseases  []string `json:"other_diseases"`
}

// PredictionResponse is the model's verdict. Prediction arrives as "1"/"0",
// sometimes as a bare number, hence json.Number. DietPlan is kept raw and
// handed to the diet view untouched.
type PredictionResponse struct {
	Message       string          `json:"message"`
	Prediction    json.Number     `json:"prediction"`
	WhyThisResult string          `json:"why_this_result,omitempty"`
	DietPlan      json.RawMessage `json:"diet_plan,omitempty"`
}

// Diabetic reports whether the model flagged the subject as at risk.
func (r PredictionResponse) Diabetic() bool {
	return r.Prediction.String() == "1"
}

// RiskLabel classifies an HbA1c percentage the same way the dashboard does.
func RiskLabel(hba1c float64) string {
	switch {
	case hba1c <= 0:
		return "Unknown"
	case hba1c < 5.7:
		return "Normal"
	case hba1c < 6.5:
		return "Prediabetes"
	default:
		return "Diabetes"
	}
}
