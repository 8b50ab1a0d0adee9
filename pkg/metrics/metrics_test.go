package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then counters should accept increments", func() {
				So(func() {
					RecordPlayerCreated()
					RecordSeasonCreated()
					RecordRankingUpdated()
					RecordRosterImportResult("added_to_season")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording cache metrics", func() {
			Convey("Then counters should accept increments", func() {
				So(func() {
					RecordStandingsCacheHit()
					RecordStandingsCacheMiss()
				}, ShouldNotPanic)
			})
		})

		Convey("When updating gauges", func() {
			Convey("Then gauges should accept values", func() {
				So(func() {
					UpdateTotalPlayers(42)
					UpdateTotalSeasons(7)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then vectors should accept labelled observations", func() {
				So(func() {
					RecordHTTPRequest("/api/players", "GET", "200")
					RecordHTTPRequestDuration("/api/players", "GET", "200", 12.5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})

			Convey("Then it should gather without error", func() {
				_, err := registry.Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
