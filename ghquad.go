/*
Package ghquad computes Gauss-Hermite quadrature rules, the nodes and weights approximating
integrals against exp(-x^2) exactly for polynomials of degree up to 2n-1. It provides a direct
method based on the roots of the Hermite polynomials and a Golub-Welsch solver restricted to
the nodes of significant weight, which scales to orders of the millions.
*/
package ghquad
