package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"drying-engine/internal/models"
)

func printStructured(out io.Writer, format string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case yamlFormat:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "NO"
}

func printAssessment(out io.Writer, r models.DryingAssessmentResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if p := r.Psychrometrics; p != nil {
		fmt.Fprintf(w, "Drying index\t%.1f (%s)\n", p.DryingIndex, p.Status)
	}
	fmt.Fprintf(w, "Volume\t%.2f m3\n", r.TotalVolumeCubicMetres)
	fmt.Fprintf(w, "Affected area\t%.2f m2\n", r.TotalAffectedAreaSquareMetres)
	fmt.Fprintf(w, "Water class\t%s\n", r.WaterClass)
	fmt.Fprintf(w, "Removal target\t%d L/day\n", r.WaterRemovalTargetLitresPerDay)
	fmt.Fprintf(w, "Achieved capacity\t%g L/day\t%s\n", r.AchievedCapacityLitresPerDay, yesNo(r.DehumidificationSufficient))
	fmt.Fprintf(w, "Air movers\t%d of %d required\t%s\n", r.AchievedAirMoverUnits, r.MinAirMoversRequired, yesNo(r.AirMovementSufficient))
	fmt.Fprintf(w, "Electrical load\t%.2f A on %d circuit(s)\n", r.TotalAmps, r.CircuitsRequired)
	fmt.Fprintf(w, "Daily cost\t%s\n", r.TotalDailyCost.StringFixed(2))
	fmt.Fprintf(w, "Total cost\t%s over %d day(s)\n", r.TotalCost.StringFixed(2), r.DurationDays)
	fmt.Fprintf(w, "Severity\t%s\n", r.Severity)

	if len(r.LineItems) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "EQUIPMENT\tQTY\tRATE\tDAILY\tAMPS")
		for _, li := range r.LineItems {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.2f\n", li.EquipmentID, li.Quantity, li.DailyRate.StringFixed(2), li.DailyCost.StringFixed(2), li.Amps)
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning:\t%s\n", warning)
	}

	return w.Flush()
}
