// Command titan-init creates the clinical SQLite database, optionally seeds a
// demo chart and prints the resulting table counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/veetae/titan-lite/pkg/titan/store"
	"github.com/veetae/titan-lite/pkg/titan/store/sqlite"
)

const seedNote = `Subjective:
Patient reports fatigue and increased thirst over the past two weeks.

Objective:
BP 142/82. BMI 33.5. A1c 8.1%.

Assessment:
Type 2 diabetes, suboptimal control. Hypertension.

Plan:
Start metformin 500 mg daily. Recheck A1c in 3 months.
`

func main() {
	var (
		dbPath = flag.String("db", "clinical.db", "SQLite database path")
		handle = flag.String("handle", "demo_builder", "Handle to seed")
		seed   = flag.Bool("seed", true, "Seed a demo note and labs for the handle")
	)
	flag.Parse()

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if *seed {
		if err := seedChart(ctx, st, *handle); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	counts, err := st.Counts(ctx)
	if err != nil {
		log.Fatalf("counts: %v", err)
	}
	fmt.Printf("OK: clinical tables ready in %s\n", *dbPath)
	for _, c := range counts {
		fmt.Printf("  %-12s %d\n", c.Table, c.Rows)
	}
}

func seedChart(ctx context.Context, st store.Store, handle string) error {
	if _, err := st.EnsureUser(ctx, handle); err != nil {
		return err
	}

	dos := time.Now()
	if _, err := st.AddNote(ctx, handle, dos, "soap", seedNote); err != nil {
		return err
	}

	labs := []store.Lab{
		{TestName: "A1c", Value: "8.1", Unit: "%", ResultDate: dos},
		{TestName: "LDL", Value: "92", Unit: "mg/dL", ResultDate: dos},
		{TestName: "eGFR", Value: "58", Unit: "mL/min", ResultDate: dos},
	}
	for _, lab := range labs {
		if _, err := st.AddLab(ctx, handle, lab); err != nil {
			return err
		}
	}
	return nil
}
