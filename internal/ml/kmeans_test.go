package ml_test

import (
	"testing"

	"github.com/mikey/gym-consistency/internal/ml"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFitKMeans(t *testing.T) {
	Convey("Given two well-separated blobs", t, func() {
		x := [][]float64{
			{0, 0}, {0.5, 0.2}, {0.1, 0.6}, {0.3, 0.3},
			{10, 10}, {10.5, 9.8}, {9.7, 10.2}, {10.1, 10.4},
		}

		Convey("When fitting two clusters", func() {
			m, err := ml.FitKMeans(x, 2, 42, 100)

			Convey("Then the fit succeeds with two centroids", func() {
				So(err, ShouldBeNil)
				So(m.Centroids, ShouldHaveLength, 2)
			})

			Convey("And points in the same blob share a cluster", func() {
				So(err, ShouldBeNil)
				a, err := m.Assign([]float64{0.2, 0.1})
				So(err, ShouldBeNil)
				b, err := m.Assign([]float64{0.4, 0.5})
				So(err, ShouldBeNil)
				c, err := m.Assign([]float64{10.2, 10})
				So(err, ShouldBeNil)

				So(a, ShouldEqual, b)
				So(a, ShouldNotEqual, c)
			})

			Convey("And fitting again with the same seed is deterministic", func() {
				So(err, ShouldBeNil)
				m2, err := ml.FitKMeans(x, 2, 42, 100)
				So(err, ShouldBeNil)
				So(m2.Centroids, ShouldResemble, m.Centroids)
			})

			Convey("And Predict reports the cluster index as a float", func() {
				So(err, ShouldBeNil)
				cluster, err := m.Predict([]float64{0, 0.1})
				So(err, ShouldBeNil)
				So(cluster, ShouldBeIn, []float64{0, 1})
			})
		})
	})

	Convey("Given fewer samples than clusters", t, func() {
		x := [][]float64{{1, 2}, {3, 4}}

		Convey("Then fitting fails", func() {
			_, err := ml.FitKMeans(x, 4, 42, 100)
			So(err, ShouldWrap, ml.ErrTooFewSamples)
		})
	})

	Convey("Given a fitted model and a mismatched vector", t, func() {
		m, err := ml.FitKMeans([][]float64{{1, 2}, {3, 4}}, 2, 42, 100)
		So(err, ShouldBeNil)

		Convey("Then assignment is rejected", func() {
			_, err := m.Assign([]float64{1})
			So(err, ShouldWrap, ml.ErrDimensionMismatch)
		})
	})
}
