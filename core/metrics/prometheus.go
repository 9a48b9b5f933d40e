// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Loopring/protocols-sub002/logging"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Gauge ...
	Gauge instrument = iota
	// Counter ...
	Counter
	// Histogram ...
	Histogram
)

const namespace = "ringsettlement"

var (
	// ErrInstrumentNotSupported signals the specified instrument is not yet supported.
	ErrInstrumentNotSupported = errors.New("instrument type unsupported")
	// ErrInstrumentTypeMismatch signal the type of the instrument is not expected.
	ErrInstrumentTypeMismatch = errors.New("instrument is not of the expected type")
)

var (
	mu               sync.RWMutex
	ringCounter      *prometheus.CounterVec
	settleTime       prometheus.Histogram
	blockCounter     prometheus.Counter
	transferCounter  *prometheus.CounterVec
	pendingRingGauge prometheus.Gauge
)

// abstract prometheus types.
type instrument int

// combine all possible prometheus options + way to differentiate between regular or vector type.
type instrumentOpts struct {
	opts    prometheus.Opts
	buckets []float64
	vectors []string
}

type mi struct {
	gaugeV     *prometheus.GaugeVec
	gauge      prometheus.Gauge
	counterV   *prometheus.CounterVec
	counter    prometheus.Counter
	histogramV *prometheus.HistogramVec
	histogram  prometheus.Histogram
}

// InstrumentOption - vararg for instrument options setting.
type InstrumentOption func(o *instrumentOpts)

// Vectors - configuration used to create a vector of a given interface, slice of label names.
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

// Help - set the help field on instrument.
func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

// Namespace - set namespace.
func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Buckets - specific to histogram type.
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// AddInstrument configure and register new metrics instrument on reg.
func AddInstrument(reg prometheus.Registerer, t instrument, name string, opts ...InstrumentOption) (*mi, error) {
	var col prometheus.Collector
	ret := mi{}
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	// apply options
	for _, o := range opts {
		o(&opt)
	}
	switch t {
	case Gauge:
		o := prometheus.GaugeOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.gauge = prometheus.NewGauge(o)
			col = ret.gauge
		} else {
			ret.gaugeV = prometheus.NewGaugeVec(o, opt.vectors)
			col = ret.gaugeV
		}
	case Counter:
		o := prometheus.CounterOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.counter = prometheus.NewCounter(o)
			col = ret.counter
		} else {
			ret.counterV = prometheus.NewCounterVec(o, opt.vectors)
			col = ret.counterV
		}
	case Histogram:
		o := opt.histogram()
		if len(opt.vectors) == 0 {
			ret.histogram = prometheus.NewHistogram(o)
			col = ret.histogram
		} else {
			ret.histogramV = prometheus.NewHistogramVec(o, opt.vectors)
			col = ret.histogramV
		}
	default:
		return nil, ErrInstrumentNotSupported
	}
	if err := reg.Register(col); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (i instrumentOpts) histogram() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Name:        i.opts.Name,
		Namespace:   i.opts.Namespace,
		Subsystem:   i.opts.Subsystem,
		ConstLabels: i.opts.ConstLabels,
		Help:        i.opts.Help,
		Buckets:     i.buckets,
	}
}

// Gauge returns a prometheus Gauge instrument.
func (m mi) Gauge() (prometheus.Gauge, error) {
	if m.gauge == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gauge, nil
}

// Counter returns a prometheus Counter instrument.
func (m mi) Counter() (prometheus.Counter, error) {
	if m.counter == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counter, nil
}

// CounterVec returns a prometheus CounterVec instrument.
func (m mi) CounterVec() (*prometheus.CounterVec, error) {
	if m.counterV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counterV, nil
}

func (m mi) Histogram() (prometheus.Histogram, error) {
	if m.histogram == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.histogram, nil
}

// Setup registers every instrument on reg. Until it is called the
// recording functions do nothing.
func Setup(reg prometheus.Registerer) error {
	h, err := AddInstrument(reg, Counter, "rings_total",
		Namespace(namespace),
		Vectors("status"),
		Help("Number of rings processed, by outcome"),
	)
	if err != nil {
		return errors.Wrap(err, "rings_total")
	}
	rc, err := h.CounterVec()
	if err != nil {
		return err
	}

	h, err = AddInstrument(reg, Histogram, "ring_settlement_seconds",
		Namespace(namespace),
		Buckets(prometheus.ExponentialBuckets(0.00001, 4, 10)),
		Help("Time spent settling a single ring"),
	)
	if err != nil {
		return errors.Wrap(err, "ring_settlement_seconds")
	}
	st, err := h.Histogram()
	if err != nil {
		return err
	}

	h, err = AddInstrument(reg, Counter, "blocks_total",
		Namespace(namespace),
		Help("Number of blocks committed"),
	)
	if err != nil {
		return errors.Wrap(err, "blocks_total")
	}
	bc, err := h.Counter()
	if err != nil {
		return err
	}

	h, err = AddInstrument(reg, Counter, "transfers_total",
		Namespace(namespace),
		Vectors("kind"),
		Help("Number of deposits and withdrawals processed"),
	)
	if err != nil {
		return errors.Wrap(err, "transfers_total")
	}
	tc, err := h.CounterVec()
	if err != nil {
		return err
	}

	h, err = AddInstrument(reg, Gauge, "pending_rings",
		Namespace(namespace),
		Help("Number of rings waiting for the next block commit"),
	)
	if err != nil {
		return errors.Wrap(err, "pending_rings")
	}
	pg, err := h.Gauge()
	if err != nil {
		return err
	}

	mu.Lock()
	ringCounter, settleTime, blockCounter, transferCounter, pendingRingGauge = rc, st, bc, tc, pg
	mu.Unlock()
	return nil
}

// Start registers the instruments and serves them over http until ctx is
// cancelled. It does nothing if metrics are disabled.
func Start(ctx context.Context, log *logging.Logger, conf Config) error {
	if !conf.Enabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	if err := Setup(reg); err != nil {
		return errors.Wrap(err, "could not set up metrics")
	}

	mux := http.NewServeMux()
	mux.Handle(conf.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", logging.Error(err))
		}
	}()
	return nil
}

// RingProcessed records the outcome of a ring and how long it took.
func RingProcessed(status string, took time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	if ringCounter == nil {
		return
	}
	ringCounter.WithLabelValues(status).Inc()
	settleTime.Observe(took.Seconds())
}

func BlockCommitted() {
	mu.RLock()
	defer mu.RUnlock()
	if blockCounter == nil {
		return
	}
	blockCounter.Inc()
}

// TransferProcessed counts a deposit or withdrawal.
func TransferProcessed(kind string) {
	mu.RLock()
	defer mu.RUnlock()
	if transferCounter == nil {
		return
	}
	transferCounter.WithLabelValues(kind).Inc()
}

func PendingRingsSet(n int) {
	mu.RLock()
	defer mu.RUnlock()
	if pendingRingGauge == nil {
		return
	}
	pendingRingGauge.Set(float64(n))
}
