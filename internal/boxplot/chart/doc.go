// Package chart computes box plot summaries from a ParsedTable and renders
// them as SVG, PNG or an interactive HTML page.
//
// Rows are grouped by the X column in order of first appearance. Quartiles
// come from montanaflynn/stats, whiskers stop at the most extreme values
// within 1.5 IQR of the box, and anything beyond is drawn as an outlier.
package chart
