package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/tuneinsight/ghquad/cache"
	"github.com/tuneinsight/ghquad/quadrature"
)

const (
	methodGolubWelsch = "golub-welsch"
	methodDirect      = "direct"
)

type ruleOptions struct {
	n      int
	method string
	cache  CacheConfig
}

func (o *ruleOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.n, "points", "n", 0, "number of points of the rule (required)")
	cmd.Flags().StringVarP(&o.method, "method", "m", methodGolubWelsch, "solver: golub-welsch or direct")
	cmd.Flags().StringVar(&o.cache.Dir, "cache", "", "cache rules as files in this directory")
	cmd.Flags().StringVar(&o.cache.Badger, "badger", "", "cache rules in a badger database in this directory")
	cmd.Flags().StringVar(&o.cache.Redis, "redis", "", "cache rules in the Redis server at this address")
	_ = cmd.MarkFlagRequired("points")
}

func newRuleCmd() *cobra.Command {

	var opts ruleOptions
	var format string

	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Compute the nodes and weights of a Gauss-Hermite rule",
		Example: `  ghquad rule -n 10
  ghquad rule -n 100000 --badger ~/.cache/ghquad --format csv > rule.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if err := checkFormat(format); err != nil {
				return err
			}

			r, err := computeRule(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return writeRule(cmd.OutOrStdout(), r, format)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or csv")

	return cmd
}

func newIntegrateCmd() *cobra.Command {

	var opts ruleOptions
	var moment int

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate x^K exp(-x^2) with a Gauss-Hermite rule and compare with the exact value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if moment < 0 {
				return fmt.Errorf("moment %d < 0", moment)
			}

			r, err := computeRule(cmd.Context(), opts)
			if err != nil {
				return err
			}

			k := float64(moment)
			got := r.Integrate(func(x float64) float64 { return math.Pow(x, k) })
			want := monomialMoment(moment)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "estimate  %.17g\n", got)
			fmt.Fprintf(w, "exact     %.17g\n", want)
			fmt.Fprintf(w, "error     %.3e\n", math.Abs(got-want))

			if 2*r.Len()-1 < moment {
				printWarning(w, "x^%d is not integrated exactly by a %d-point rule", moment, r.Len())
			}

			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&moment, "moment", "k", 0, "degree K of the monomial")

	return cmd
}

// monomialMoment returns int x^k exp(-x^2) dx = Gamma((k+1)/2) for even k, 0 otherwise.
func monomialMoment(k int) float64 {
	if k&1 == 1 {
		return 0
	}
	return math.Gamma(float64(k+1) / 2)
}

// computeRule returns the requested rule, through the configured cache.
func computeRule(ctx context.Context, opts ruleOptions) (quadrature.Rule, error) {

	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if opts.n < 1 {
		return quadrature.Rule{}, fmt.Errorf("invalid number of points %d: %w", opts.n, quadrature.ErrInvalidDegree)
	}

	var params interface{}
	var compute func() (quadrature.Rule, error)

	switch opts.method {
	case methodGolubWelsch, "gw":
		opts.method = methodGolubWelsch
		gw, err := quadrature.NewGolubWelsch(cfg.GolubWelsch, nil, logger)
		if err != nil {
			return quadrature.Rule{}, err
		}
		params = cfg.GolubWelsch
		compute = func() (quadrature.Rule, error) { return gw.Rule(opts.n) }
	case methodDirect:
		direct := quadrature.NewDirect(cfg.Direct, nil)
		params = cfg.Direct
		compute = func() (quadrature.Rule, error) { return direct.Rule(opts.n) }
	default:
		return quadrature.Rule{}, fmt.Errorf("unknown method %q, want %q or %q", opts.method, methodGolubWelsch, methodDirect)
	}

	cc := mergeCacheConfig(cfg.Cache, opts.cache)

	ttl, err := cc.TTLDuration()
	if err != nil {
		return quadrature.Rule{}, err
	}

	c, err := openCache(ctx, cc)
	if err != nil {
		return quadrature.Rule{}, err
	}

	rules := cache.NewRules(c, ttl, logger)
	defer rules.Close()

	key, err := cache.Key(opts.method, opts.n, params)
	if err != nil {
		return quadrature.Rule{}, err
	}

	start := time.Now()

	r, hit, err := rules.Get(ctx, key, compute)
	if err != nil {
		return quadrature.Rule{}, err
	}

	logger.Info("rule ready", "method", opts.method, "n", opts.n, "points", r.Len(), "cached", hit, "elapsed", time.Since(start).Round(time.Millisecond))

	return r, nil
}

// mergeCacheConfig overrides the configuration file with the command line flags.
func mergeCacheConfig(file, flags CacheConfig) CacheConfig {
	if flags.Dir != "" {
		file.Dir = flags.Dir
	}
	if flags.Badger != "" {
		file.Badger = flags.Badger
	}
	if flags.Redis != "" {
		file.Redis = flags.Redis
	}
	if flags.TTL != "" {
		file.TTL = flags.TTL
	}
	return file
}

func openCache(ctx context.Context, cc CacheConfig) (cache.Cache, error) {
	switch {
	case cc.Redis != "":
		return cache.NewRedisCache(ctx, &redis.Options{Addr: cc.Redis}, "ghquad:")
	case cc.Badger != "":
		return cache.NewBadgerCache(cache.BadgerConfig{Path: cc.Badger, Logger: loggerFromContext(ctx)})
	case cc.Dir != "":
		return cache.NewFileCache(cc.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}
