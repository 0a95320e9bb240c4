package bench

import "github.com/prometheus/client_golang/prometheus"

func init() {
	// Register the metrics.
	prometheus.MustRegister(
		PromBestRate,
		PromSampleWords,
	)
}

var (
	// PromBestRate is a gauge holding the best observed throughput of every
	// measured generator.
	PromBestRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shootout_bench_best_rate_mbps",
		Help: "Best observed generator throughput in MB/s",
	}, []string{"generator"})

	// PromSampleWords is a histogram of words produced in a single window.
	PromSampleWords = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shootout_bench_sample_words",
		Help:    "Words produced by a generator in a single sample window",
		Buckets: prometheus.ExponentialBuckets(1<<16, 4, 10),
	}, []string{"generator"})
)
