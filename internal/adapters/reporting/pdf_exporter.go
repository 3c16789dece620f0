package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// PDFExporter renders a survey snapshot as a PDF report
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSnapshot generates a PDF survey report from one snapshot
func (e *PDFExporter) ExportSnapshot(snap domain.Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, snap)
	e.addOverview(pdf, snap)
	e.addNetworkTable(pdf, snap)
	e.addFooter(pdf, snap)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Wireless Survey Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", snap.Taken.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	if snap.Interface != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Interface: %s", snap.Interface), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

// addOverview adds the statistics section
func (e *PDFExporter) addOverview(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Survey Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	var band24, band5, band6, secured, open, wps int
	for _, n := range snap.Networks {
		switch n.Band {
		case domain.Band24GHz:
			band24++
		case domain.Band5GHz:
			band5++
		case domain.Band6GHz:
			band6++
		}
		if n.Derived.Security != nil {
			secured++
		} else {
			open++
		}
		if n.Derived.WPS != nil && n.Derived.WPS.Configured {
			wps++
		}
	}

	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Networks Found", fmt.Sprintf("%d", len(snap.Networks)), []int{0, 102, 204}},
		{"2.4 GHz", fmt.Sprintf("%d", band24), []int{0, 102, 204}},
		{"5 GHz", fmt.Sprintf("%d", band5), []int{0, 102, 204}},
		{"6 GHz", fmt.Sprintf("%d", band6), []int{0, 102, 204}},
		{"Secured (RSN)", fmt.Sprintf("%d", secured), []int{52, 199, 89}},
		{"Open", fmt.Sprintf("%d", open), []int{220, 53, 69}},
		{"WPS Configured", fmt.Sprintf("%d", wps), []int{255, 149, 0}},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, stat.value, "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(12)
}

// addNetworkTable adds one row per network, strongest signal first
func (e *PDFExporter) addNetworkTable(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Observed Networks", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(snap.Networks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No networks observed", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)

	pdf.CellFormat(38, 8, "BSSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(42, 8, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 8, "Band", "1", 0, "C", true, 0, "")
	pdf.CellFormat(12, 8, "Ch", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 8, "RSSI", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Security", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Standard", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, n := range snap.Networks {
		if pdf.GetY() > 265 {
			pdf.AddPage()
		}

		ssid := n.SSID
		if len(ssid) > 24 {
			ssid = ssid[:21] + "..."
		}

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(38, 7, n.BSSID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(42, 7, ssid, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 7, n.Band.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", n.Channel), "1", 0, "C", false, 0, "")

		r, g, b := e.getSignalColor(n.RSSI)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(18, 7, fmt.Sprintf("%d", n.RSSI), "1", 0, "C", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(32, 7, securityLabel(n.Derived.Security), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, n.Standard, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

// getSignalColor returns RGB color based on signal strength
func (e *PDFExporter) getSignalColor(rssi int) (r, g, b int) {
	switch {
	case rssi >= -55:
		return 52, 199, 89 // Green (strong)
	case rssi >= -70:
		return 255, 204, 0 // Yellow (fair)
	default:
		return 220, 53, 69 // Red (weak)
	}
}

func securityLabel(rsn *domain.RSNInfo) string {
	if rsn == nil {
		return "Open"
	}
	if len(rsn.AKMSuites) == 0 {
		return rsn.GroupCipher
	}
	label := strings.Join(rsn.AKMSuites, "/")
	if len(label) > 18 {
		label = label[:15] + "..."
	}
	return label
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	cycle := snap.CycleID
	if len(cycle) > 8 {
		cycle = cycle[:8]
	}
	footerText := fmt.Sprintf("Generated by wsurvey | Cycle: %s", cycle)
	pdf.CellFormat(0, 5, footerText, "", 1, "C", false, 0, "")
}
