// Command dm2-flow runs the type 2 diabetes coding decision flow over a JSON
// input file, or over a built-in sample encounter with -demo.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/veetae/titan-lite/pkg/titan/coder"
)

func main() {
	var (
		in   = flag.String("in", "", "JSON file with the structured encounter flags")
		demo = flag.Bool("demo", false, "Run the built-in sample encounter")
	)
	flag.Parse()

	var input coder.DM2Input
	switch {
	case *demo:
		input = sampleEncounter()
	case *in != "":
		data, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("read input: %v", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			log.Fatalf("parse input: %v", err)
		}
	default:
		log.Fatal("specify -in <file.json> or -demo")
	}

	d := coder.DecideDM2Codes(input)

	fmt.Println("ICD:", strings.Join(d.ICDCodes, ", "))
	fmt.Println(strings.Repeat("-", 64))
	fmt.Println("Rationales:")
	for _, r := range d.Rationales {
		fmt.Println(" -", r)
	}
	if len(d.Advisories) > 0 {
		fmt.Println("Advisories:")
		for _, a := range d.Advisories {
			fmt.Println(" -", a)
		}
	}
}

func sampleEncounter() coder.DM2Input {
	a1c := 8.1
	uacr := 220.0
	egfr := 58.0
	ldl := 92.0
	sbp, dbp := 142, 82
	bmi := 33.5
	return coder.DM2Input{
		A1CPercent:          &a1c,
		UACRMgPerG:          &uacr,
		EGFR:                &egfr,
		DiabeticRetinopathy: true,
		NeuropathyPoly:      true,
		PVD:                 true,
		CVStatus:            "High",
		LDLMgDL:             &ldl,
		SBP:                 &sbp,
		DBP:                 &dbp,
		BMI:                 &bmi,
		Anxiety:             true,
	}
}
