package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/event"
	"github.com/kitchensim/server/internal/world"
)

// Collector turns simulation events and per-tick head counts into Prometheus
// metrics on a private registry. Fed from the simulation loop goroutine only.
type Collector struct {
	registry *prometheus.Registry

	partiesArrived  prometheus.Counter
	guestsArrived   prometheus.Counter
	platesCooked    prometheus.Counter
	platesServed    prometheus.Counter
	coldPlates      prometheus.Counter
	partiesDeparted prometheus.Counter

	cookTime       prometheus.Histogram
	servedTemp     prometheus.Histogram
	finalHappiness prometheus.Histogram
	visitRating    prometheus.Histogram

	tables        *prometheus.GaugeVec
	chefs         *prometheus.GaugeVec
	waiters       *prometheus.GaugeVec
	plates        *prometheus.GaugeVec
	guestsSeated  prometheus.Gauge
	meanHappiness prometheus.Gauge

	summary Summary
}

// Summary is the end-of-run tally.
type Summary struct {
	PartiesArrived  int
	GuestsArrived   int
	PlatesServed    int
	ColdPlates      int
	PartiesDeparted int
	RatingSum       float64
}

// MeanRating is the average stars over departed parties, 0 if none left yet.
func (s Summary) MeanRating() float64 {
	if s.PartiesDeparted == 0 {
		return 0
	}
	return s.RatingSum / float64(s.PartiesDeparted)
}

// NewCollector creates a collector whose metrics carry the run id label.
func NewCollector(runID string) *Collector {
	labels := prometheus.Labels{"run_id": runID}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kitchensim", Name: name, Help: help, ConstLabels: labels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kitchensim", Name: name, Help: help, ConstLabels: labels, Buckets: buckets,
		})
	}
	statusGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kitchensim", Name: name, Help: help, ConstLabels: labels,
		}, []string{"status"})
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		partiesArrived:  counter("parties_arrived_total", "Parties seated at a table."),
		guestsArrived:   counter("guests_arrived_total", "Guests seated across all parties."),
		platesCooked:    counter("plates_cooked_total", "Plates that left the stove."),
		platesServed:    counter("plates_served_total", "Plates delivered to a table."),
		coldPlates:      counter("cold_plates_total", "Plates delivered below the temperature threshold."),
		partiesDeparted: counter("parties_departed_total", "Parties that finished dining and left."),

		cookTime:       histogram("cook_time_seconds", "Cook time per plate.", prometheus.LinearBuckets(8, 8, 6)),
		servedTemp:     histogram("served_temperature_celsius", "Plate temperature at delivery.", prometheus.LinearBuckets(20, 5, 13)),
		finalHappiness: histogram("departure_happiness", "Party happiness when leaving.", prometheus.LinearBuckets(0, 0.1, 11)),
		visitRating:    histogram("visit_rating_stars", "Stars left by departing parties.", prometheus.LinearBuckets(0, 0.5, 11)),

		tables:        statusGauge("tables", "Tables by status."),
		chefs:         statusGauge("chefs", "Chefs by status."),
		waiters:       statusGauge("waiters", "Waiters by status."),
		plates:        statusGauge("plates", "Plates by status."),
		guestsSeated:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "kitchensim", Name: "guests_seated", Help: "Guests currently in the restaurant.", ConstLabels: labels}),
		meanHappiness: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "kitchensim", Name: "mean_happiness", Help: "Mean happiness over occupied tables.", ConstLabels: labels}),
	}

	c.registry.MustRegister(
		c.partiesArrived, c.guestsArrived, c.platesCooked, c.platesServed, c.coldPlates, c.partiesDeparted,
		c.cookTime, c.servedTemp, c.finalHappiness, c.visitRating,
		c.tables, c.chefs, c.waiters, c.plates, c.guestsSeated, c.meanHappiness,
	)
	return c
}

// Registry exposes the private registry, e.g. for Gather in tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Subscribe hooks the collector to simulation events.
func (c *Collector) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.PartyArrived) {
		c.partiesArrived.Inc()
		c.guestsArrived.Add(float64(e.PartySize))
		c.summary.PartiesArrived++
		c.summary.GuestsArrived += e.PartySize
	})
	event.Subscribe(bus, func(e event.PlateReady) {
		c.platesCooked.Inc()
		c.cookTime.Observe(e.CookTime)
	})
	event.Subscribe(bus, func(e event.PlateDelivered) {
		c.platesServed.Inc()
		c.servedTemp.Observe(e.Temperature)
		c.summary.PlatesServed++
		if e.Cold {
			c.coldPlates.Inc()
			c.summary.ColdPlates++
		}
	})
	event.Subscribe(bus, func(e event.PartyLeft) {
		c.partiesDeparted.Inc()
		c.finalHappiness.Observe(e.Happiness)
		c.visitRating.Observe(e.Rating)
		c.summary.PartiesDeparted++
		c.summary.RatingSum += e.Rating
	})
}

// Observe refreshes the head-count gauges.
func (c *Collector) Observe(snap world.Snapshot) {
	for i, n := range snap.Tables {
		c.tables.WithLabelValues(component.TableStatus(i).String()).Set(float64(n))
	}
	for i, n := range snap.Chefs {
		c.chefs.WithLabelValues(component.ChefStatus(i).String()).Set(float64(n))
	}
	for i, n := range snap.Waiters {
		c.waiters.WithLabelValues(component.WaiterStatus(i).String()).Set(float64(n))
	}
	for i, n := range snap.Plates {
		c.plates.WithLabelValues(component.PlateStatus(i).String()).Set(float64(n))
	}
	c.guestsSeated.Set(float64(snap.Guests))
	c.meanHappiness.Set(snap.MeanHappiness)
}

// Summary returns the running tally.
func (c *Collector) Summary() Summary { return c.summary }
