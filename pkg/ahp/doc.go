// Package ahp implements the Analytic Hierarchy Process: pairwise comparison
// matrices, priority vectors from the principal eigenvector, consistency
// ratios and the weighted ranking of alternatives across criteria.
package ahp
