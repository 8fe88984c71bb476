package analytics

import entity "main/internal/domain/entity/analytics"

// anomalyThreshold is the z-score above which a return is flagged.
const anomalyThreshold = 3.0

// DetectAnomalies flags returns whose z-score exceeds the threshold. The
// report always carries the window mean and deviation, even when nothing is
// flagged.
func DetectAnomalies(symbol string, closes []float64) entity.AnomalyReport {
	report := entity.AnomalyReport{Symbol: symbol}
	returns := returnsSeries(closes)
	if len(returns) < 2 {
		return report
	}
	report.Mean = sum(returns) / float64(len(returns))
	report.StdDev = stddev(returns, report.Mean)
	if report.StdDev == 0 {
		return report
	}
	for _, r := range returns {
		z := (r - report.Mean) / report.StdDev
		if z > anomalyThreshold || z < -anomalyThreshold {
			report.Anomalies = append(report.Anomalies, r)
		}
	}
	return report
}
