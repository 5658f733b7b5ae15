package coder

import (
	"fmt"
	"strings"
)

// DM2Input holds the structured flags driving the type 2 diabetes coding
// decision flow. Pointer fields are optional measurements; nil means the
// value was not captured for this encounter.
type DM2Input struct {
	OnInsulin bool `json:"on_insulin"`

	A1CPercent *float64 `json:"a1c_percent,omitempty"`

	// Renal
	UACRMgPerG *float64 `json:"uacr_mg_per_g,omitempty"`
	EGFR       *float64 `json:"egfr,omitempty"`

	// Eye
	DiabeticRetinopathy bool `json:"diabetic_retinopathy"`
	MacularEdema        bool `json:"macular_edema"`

	// Neuro
	NeuropathyUnspecified bool `json:"neuropathy_unspecified"`
	NeuropathyPoly        bool `json:"neuropathy_poly"`

	// Circulatory
	PVD      bool `json:"pvd"`
	Gangrene bool `json:"gangrene"`

	// Skin / MSK
	FootUlcer     bool `json:"foot_ulcer"`
	Arthropathy   bool `json:"arthropathy"`
	OtherSkinComp bool `json:"other_skin_comp"`

	// Risk modules
	CVStatus string `json:"cv_status"` // "Very High", "High", "CAD", "PriorEvent"

	// Lipids
	LDLMgDL          *float64 `json:"ldl_mg_dl,omitempty"`
	StatinIntolerant bool     `json:"statin_intolerant"`

	// Blood pressure
	SBP *int `json:"sbp,omitempty"`
	DBP *int `json:"dbp,omitempty"`

	BMI *float64 `json:"bmi,omitempty"`

	// Mental health
	Depression bool `json:"depression"`
	Anxiety    bool `json:"anxiety"`
}

// Decision is the outcome of the coding flow: codes in decision order with a
// rationale per code and non-coding advisories.
type Decision struct {
	ICDCodes   []string `json:"icd_codes"`
	Rationales []string `json:"rationales"`
	Advisories []string `json:"advisories"`
}

// DecideDM2Codes converts structured flags into ICD-10 codes with rationales.
// Codes are deduplicated preserving first-seen order.
func DecideDM2Codes(x DM2Input) Decision {
	var codes, why, adv []string

	// Base phenotype
	if x.OnInsulin {
		codes = append(codes, "E11.65")
		why = append(why, "On insulin → treat as hyperglycemia phenotype (E11.65)")
	} else if x.A1CPercent != nil && *x.A1CPercent >= 7.0 {
		codes = append(codes, "E11.65")
		why = append(why, fmt.Sprintf("A1c %.1f%% ≥7.0 → E11.65", *x.A1CPercent))
	} else {
		codes = append(codes, "E11.9")
		why = append(why, "A1c <7% and not on insulin → E11.9")
	}

	// Renal
	if x.UACRMgPerG != nil {
		switch uacr := *x.UACRMgPerG; {
		case uacr >= 300:
			codes = append(codes, "E11.21")
			why = append(why, fmt.Sprintf("UACR %g mg/g (≥300) → diabetic nephropathy (E11.21)", uacr))
		case uacr >= 30:
			codes = append(codes, "E11.29")
			why = append(why, fmt.Sprintf("UACR %g mg/g → renal complication (E11.29)", uacr))
		}
	}
	if x.EGFR != nil && *x.EGFR < 60 {
		codes = append(codes, "E11.22")
		why = append(why, fmt.Sprintf("eGFR %g <60 → diabetic CKD (E11.22)", *x.EGFR))
	}

	// Eye
	if x.DiabeticRetinopathy {
		if x.MacularEdema {
			codes = append(codes, "E11.311")
			why = append(why, "Retinopathy with macular edema → E11.311")
		} else {
			codes = append(codes, "E11.319")
			why = append(why, "Retinopathy (unspecified) → E11.319")
		}
	}

	// Neuro
	if x.NeuropathyPoly {
		codes = append(codes, "E11.42")
		why = append(why, "Diabetic polyneuropathy → E11.42")
	} else if x.NeuropathyUnspecified {
		codes = append(codes, "E11.40")
		why = append(why, "Diabetic neuropathy, unspecified → E11.40")
	}

	// Circulatory
	if x.PVD {
		if x.Gangrene {
			codes = append(codes, "E11.52")
			why = append(why, "PVD with gangrene → E11.52")
		} else {
			codes = append(codes, "E11.51")
			why = append(why, "PVD without gangrene → E11.51")
		}
	}

	// Skin / MSK
	if x.FootUlcer {
		codes = append(codes, "E11.621")
		why = append(why, "Diabetic foot ulcer → E11.621")
	}
	if x.Arthropathy {
		codes = append(codes, "E11.610")
		why = append(why, "Diabetic arthropathy → E11.610")
	}
	if x.OtherSkinComp {
		codes = append(codes, "E11.628")
		why = append(why, "Other skin complications → E11.628")
	}

	// Cardiovascular risk adjuncts
	switch cv := strings.ToLower(x.CVStatus); cv {
	case "very high", "high":
		codes = append(codes, "E11.59")
		why = append(why, "CV risk high → capture circulatory complications umbrella (E11.59)")
	case "cad":
		codes = append(codes, "I25.10")
		why = append(why, "Established CAD without angina → I25.10")
	case "priorevent":
		codes = append(codes, "Z87.891")
		why = append(why, "History of CVD/risk → Z87.891 (per clinic tag)")
	}

	// Lipid advisories, not codes
	if x.LDLMgDL != nil {
		goal := 70.0
		cv := strings.ToLower(x.CVStatus)
		if cv == "cad" || cv == "priorevent" {
			goal = 55.0
		}
		if *x.LDLMgDL > goal {
			adv = append(adv, fmt.Sprintf("LDL %g mg/dL > goal (%g) — intensify statin/ezetimibe/PCSK9 per guidelines", *x.LDLMgDL, goal))
		}
	}
	if x.StatinIntolerant {
		codes = append(codes, "Z88.1")
		why = append(why, "Statin intolerance/allergy → Z88.1")
	}

	// Hypertension
	if x.SBP != nil && x.DBP != nil {
		codes = append(codes, "I10")
		why = append(why, "Essential hypertension (I10)")
		if *x.SBP >= 130 || *x.DBP >= 80 {
			codes = append(codes, "Z79.899")
			why = append(why, "On long-term meds; uncontrolled BP context → Z79.899")
		}
	}

	// Obesity
	if x.BMI != nil {
		switch bmi := *x.BMI; {
		case bmi >= 40:
			codes = append(codes, "E66.01")
			why = append(why, "BMI ≥40 → Morbid obesity due to excess calories (E66.01)")
		case bmi >= 35:
			codes = append(codes, "E66.01")
			why = append(why, "BMI 35–39.9 → Treat as Class II/III per clinic policy (E66.01)")
		case bmi >= 30:
			codes = append(codes, "E66.9")
			why = append(why, "BMI 30–34.9 → Obesity (E66.9)")
		case bmi >= 25:
			codes = append(codes, "Z68.25")
			why = append(why, "BMI 25–29.9 → Overweight code series (use exact Z68.2x if available)")
		}
	}

	// Mental health
	if x.Depression && x.Anxiety {
		codes = append(codes, "F41.8")
		why = append(why, "Mixed anxiety/depressive features → F41.8")
	} else if x.Depression {
		codes = append(codes, "F32.9")
		why = append(why, "Depression, unspecified → F32.9")
	} else if x.Anxiety {
		codes = append(codes, "F41.9")
		why = append(why, "Anxiety, unspecified → F41.9")
	}

	return Decision{ICDCodes: dedupe(codes), Rationales: why, Advisories: adv}
}

func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
