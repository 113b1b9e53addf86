package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/mikey/gym-consistency/internal/adapters/logsource"
	"github.com/mikey/gym-consistency/internal/adapters/modelstore"
	"github.com/mikey/gym-consistency/internal/core"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestConsistencyServiceScore(t *testing.T) {
	Convey("Given a service over a known scan log and no trained models", t, func() {
		events := []core.ScanEvent{
			scanAt("AA6A06B0", "2025-01-01 08:00:00"),
			scanAt("AA6A06B0", "2025-01-02 08:10:00"),
			scanAt("AA6A06B0", "2025-01-02 08:15:00"),
			scanAt("AA6A06B0", "2025-01-08 19:00:00"),
		}
		source := logsource.NewMemorySource(events)
		store, err := modelstore.NewFileStore(t.TempDir(), zap.NewNop())
		So(err, ShouldBeNil)

		now := time.Date(2025, 1, 8, 20, 0, 0, 0, time.UTC)
		service := core.NewConsistencyService(source, store, zap.NewNop(),
			core.WithClock(func() time.Time { return now }))

		Convey("When scoring with a lowercase identifier", func() {
			result, err := service.Score(context.Background(), "aa6a06b0")

			Convey("Then the lookup is case-insensitive and succeeds", func() {
				So(err, ShouldBeNil)
				So(result, ShouldNotBeNil)
			})

			Convey("And the reports carry the derived metrics", func() {
				So(err, ShouldBeNil)
				So(result.Frequency.DaysVisited, ShouldEqual, 3)
				So(result.Frequency.TotalDays, ShouldEqual, 8)
				So(result.Frequency.Percentage, ShouldAlmostEqual, 37.5)
				So(result.Frequency.Score, ShouldEqual, 15)
				So(result.Regularity.AvgGapBetweenVisits, ShouldAlmostEqual, 3.5)
				So(result.Regularity.ConsistencyMetric, ShouldAlmostEqual, 28.6)
				So(result.Regularity.DistinctDays, ShouldEqual, 2)
				So(result.Recency.DaysSinceLastVisit, ShouldEqual, 0)
				So(result.Recency.Score, ShouldEqual, 30)
			})

			Convey("And the blended score uses the synthetic fallback", func() {
				So(err, ShouldBeNil)
				So(result.Score, ShouldEqual, 58)
				So(result.Score, ShouldBeBetweenOrEqual, 0, 100)
			})

			Convey("And the profile matches the rule thresholds", func() {
				So(err, ShouldBeNil)
				So(result.UserType, ShouldEqual, "Occasional Morning Weekday")
				So(result.Insights, ShouldHaveLength, 2)
			})
		})

		Convey("When scoring an unknown identifier", func() {
			result, err := service.Score(context.Background(), "DEADBEEF")

			Convey("Then a not-found error is returned instead of an empty result", func() {
				So(result, ShouldBeNil)
				So(err, ShouldWrap, core.ErrNoEvents)
				So(err.Error(), ShouldContainSubstring, "DEADBEEF")
			})
		})
	})
}

func TestConsistencyServiceMembers(t *testing.T) {
	Convey("Given a log with several members", t, func() {
		source := logsource.NewMemorySource([]core.ScanEvent{
			scanAt("aa6a06b0", "2025-01-01 08:00:00"),
			scanAt("AA6A06B0", "2025-01-02 08:00:00"),
			scanAt("23FF6AAD", "2025-01-01 18:30:00"),
		})
		store, err := modelstore.NewFileStore(t.TempDir(), zap.NewNop())
		So(err, ShouldBeNil)
		service := core.NewConsistencyService(source, store, zap.NewNop())

		Convey("When listing members", func() {
			members, err := service.Members(context.Background())

			Convey("Then identifiers are normalized, counted and sorted", func() {
				So(err, ShouldBeNil)
				So(members, ShouldHaveLength, 2)
				So(members[0].Identifier, ShouldEqual, "23FF6AAD")
				So(members[0].Records, ShouldEqual, 1)
				So(members[1].Identifier, ShouldEqual, "AA6A06B0")
				So(members[1].Records, ShouldEqual, 2)
			})
		})
	})
}
