package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexDocuments = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "capitol",
		Subsystem: "search",
		Name:      "index_documents",
		Help:      "Bills held by the live search index.",
	})
	indexRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "capitol",
		Subsystem: "search",
		Name:      "index_rebuilds_total",
		Help:      "Search index rebuilds by outcome.",
	}, []string{"outcome"})
)
