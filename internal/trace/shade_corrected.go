//go:build correctedbugs

package trace

import "pathtracer/pkg/mathutil"

// trueLightPdf computes the actual light-sampling pdf for a BRDF ray that
// landed on an emissive triangle, using the same solid-angle conversion
// DirectLight uses for its NEE sample: distance^2/(area*cosLight) scaled
// by the triangle's share of total emissive power.
func trueLightPdf(distance, area, cosLight, power, totalPower float32) float32 {
	if area <= 0 || cosLight <= 0 || totalPower <= 0 {
		return 0
	}
	return (distance * distance) / (area * cosLight) * (power / totalPower)
}

// misWeightCorrected is the MIS weight spec.md section 9(c) describes as
// the fix: the power heuristic evaluated against the true light pdf
// instead of the fixed pdfLEstimate constant.
func misWeightCorrected(pdfB, distance, area, cosLight, power, totalPower float32) float32 {
	pdfL := trueLightPdf(distance, area, cosLight, power, totalPower)
	if pdfL <= 0 {
		return 0
	}
	return mathutil.PowerHeuristic(pdfB, pdfL)
}
