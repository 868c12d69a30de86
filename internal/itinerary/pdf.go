package itinerary

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripsmith/internal/flight"
)

// RenderPlanPDF renders a trip plan as a printable PDF and returns the raw
// bytes, no filesystem involved.
func RenderPlanPDF(plan *TripPlanResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// header bar
	pdf.SetFillColor(16, 46, 38)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripSmith", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(153, 204, 170)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Trip plan for "+plan.Destination, "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(16, 46, 38)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	row("Destination", plan.Destination)
	row("Dates", fmt.Sprintf("%s to %s", readableDate(plan.StartDate), readableDate(plan.EndDate)))
	row("Travelers", fmt.Sprintf("%d", plan.Travelers))
	row("Budget", fmt.Sprintf("%.2f %s", plan.Budget, plan.Currency))
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	if len(plan.FlightGroups) > 0 {
		best := plan.FlightGroups[0]
		sectionHeader("Best Flight Option")
		row("Carrier", best.Carrier)
		row("Route", fmt.Sprintf("%s to %s", best.Origin, best.Destination))
		row("From", fmt.Sprintf("%.2f %s", best.LowestPrice, plan.Currency))
		for _, cabin := range best.Cabins {
			value := fmt.Sprintf("%.2f %s", cabin.Price, cabin.Currency)
			if cabin.CarbonCredit != nil {
				value += fmt.Sprintf("  (%s kg CO2e credit)", flight.FormatCredit(*cabin.CarbonCredit))
			}
			row("  "+cabin.Cabin, value)
		}
		pdf.Ln(4)
	}

	if len(plan.Lodging) > 0 {
		sectionHeader("Lodging")
		for _, option := range plan.Lodging {
			row(option.Name, fmt.Sprintf("%.2f %s/night", option.NightlyRate, option.Currency))
		}
		pdf.Ln(4)
	}

	sectionHeader("Budget Breakdown")
	row("Flights", plan.BudgetBreakdown.Flights.StringFixed(2))
	row("Lodging", plan.BudgetBreakdown.Lodging.StringFixed(2))
	row("Activities", plan.BudgetBreakdown.Activities.StringFixed(2))
	row("Dining", plan.BudgetBreakdown.Dining.StringFixed(2))
	row("Transit", plan.BudgetBreakdown.Transit.StringFixed(2))
	row("Emergency fund", plan.BudgetBreakdown.EmergencyFund.StringFixed(2))
	pdf.Ln(4)

	sectionHeader("Sustainability")
	row("Tier", plan.Sustainability.Tier)
	row("Points", fmt.Sprintf("%d", plan.Sustainability.TotalPoints))
	pdf.Ln(4)

	if len(plan.Itinerary) > 0 {
		sectionHeader("Day by Day")
		pdf.SetFont("Helvetica", "", 10)
		for _, day := range plan.Itinerary {
			pdf.SetFont("Helvetica", "B", 10)
			header := readableDate(day.Date)
			if day.Theme != "" {
				header += " - " + day.Theme
			}
			pdf.CellFormat(170, 6, header, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			for _, activity := range day.Activities {
				pdf.CellFormat(170, 5, fmt.Sprintf("   %s  %s", activity.Time, activity.Name), "", 1, "L", false, 0, "")
			}
			pdf.Ln(1)
		}
	}

	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripSmith · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func readableDate(iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}
