package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tuneinsight/ghquad/eigen"
	"github.com/tuneinsight/ghquad/hermite"
	"github.com/tuneinsight/ghquad/polynomial"
	"github.com/tuneinsight/ghquad/quadrature"
)

func newCoefCmd() *cobra.Command {

	var n int
	var exact bool

	cmd := &cobra.Command{
		Use:   "coef",
		Short: "Print the coefficients of H_n, constant term first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if n < 0 {
				return fmt.Errorf("invalid degree %d: %w", n, hermite.ErrNegativeDegree)
			}

			w := cmd.OutOrStdout()

			if exact {
				for _, c := range hermite.CoefficientsInt(n) {
					fmt.Fprintln(w, c.String())
				}
				return nil
			}

			for _, c := range hermite.Coefficients(n) {
				fmt.Fprintln(w, strconv.FormatFloat(c, 'g', -1, 64))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "degree", "n", 0, "degree of the polynomial")
	cmd.Flags().BoolVar(&exact, "exact", false, "print the exact integer coefficients")

	return cmd
}

func newValueCmd() *cobra.Command {

	var degrees []int

	cmd := &cobra.Command{
		Use:   "value x...",
		Short: "Evaluate H_n at the given points",
		Long: `Evaluate H_n at the given points. With as many degrees as points, the i-th
degree is evaluated at the i-th point. Otherwise the shorter list is reduced
to its first element.`,
		Example: "  ghquad value -n 3 0.5 1 1.5\n  ghquad value -n 0 -n 1 -n 2 0.5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			x, err := parseFloats(args)
			if err != nil {
				return err
			}

			h, err := hermite.Values(x, degrees)
			if err != nil {
				return err
			}

			for _, v := range h {
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			}

			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&degrees, "degree", "n", []int{0}, "degree(s) of the polynomial")

	return cmd
}

func newRootsCmd() *cobra.Command {

	var tol float64
	var dense bool

	cmd := &cobra.Command{
		Use:     "roots c0 c1 ... cn",
		Short:   "Print the real roots of c0 + c1 x + ... + cn x^n",
		Example: "  ghquad roots -- -1 0 1",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {

			coeffs, err := parseFloats(args)
			if err != nil {
				return err
			}

			var solver eigen.General = eigen.LAPACK{}
			if dense {
				solver = eigen.Dense{}
			}

			roots, err := polynomial.NewPolynomial(coeffs).Roots(solver, tol)
			if err != nil {
				return err
			}

			for _, r := range roots {
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(r, 'g', -1, 64))
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&tol, "tol", polynomial.DefaultImaginaryTolerance, "tolerance on the imaginary part of the roots")
	cmd.Flags().BoolVar(&dense, "dense", false, "use the dense eigensolver instead of LAPACK's dgeev")

	return cmd
}

func newJacobiCmd() *cobra.Command {

	var n int

	cmd := &cobra.Command{
		Use:   "jacobi",
		Short: "Print the diagonal and subdiagonal of the Hermite Jacobi matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if n < 1 {
				return fmt.Errorf("invalid size %d: %w", n, quadrature.ErrInvalidDegree)
			}

			T := quadrature.HermiteJacobi(n)
			w := cmd.OutOrStdout()

			for i := range T.D {
				if i < len(T.E) {
					fmt.Fprintf(w, "%g\t%.17g\n", T.D[i], T.E[i])
				} else {
					fmt.Fprintf(w, "%g\n", T.D[i])
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "size", "n", 1, "size of the matrix")

	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	x := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		x[i] = v
	}
	return x, nil
}
