package core_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mikey/gym-consistency/internal/adapters/logsource"
	"github.com/mikey/gym-consistency/internal/adapters/modelstore"
	"github.com/mikey/gym-consistency/internal/core"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

// memberLog fabricates visitDays daily scans for one member, spaced
// gapDays apart, scanning at the given hour.
func memberLog(id string, visitDays, gapDays, hour int) []core.ScanEvent {
	events := make([]core.ScanEvent, 0, visitDays)
	day := time.Date(2025, 1, 1, hour, 0, 0, 0, time.UTC)
	for i := 0; i < visitDays; i++ {
		events = append(events, core.ScanEvent{Identifier: id, Timestamp: day})
		day = day.AddDate(0, 0, gapDays)
	}
	return events
}

func TestTrainer(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	Convey("Given a log with enough qualifying members", t, func() {
		var events []core.ScanEvent
		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("MEMBER%02d", i)
			events = append(events, memberLog(id, 4+i*3, 1+i, 6+i*4)...)
		}
		// Members below the three-visit-day floor are skipped, not fatal.
		events = append(events, memberLog("SPARSE01", 1, 1, 9)...)
		events = append(events, memberLog("SPARSE02", 2, 1, 19)...)

		source := logsource.NewMemorySource(events)
		store, err := modelstore.NewFileStore(t.TempDir(), zap.NewNop())
		So(err, ShouldBeNil)
		trainer := core.NewTrainer(source, store, zap.NewNop(), core.WithTrainerClock(now))

		Convey("When training", func() {
			err := trainer.Train(context.Background())

			Convey("Then it succeeds", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the scaler and cluster model are persisted under their fixed names", func() {
				So(err, ShouldBeNil)

				scaler, err := store.LoadScaler(context.Background(), core.ScalerName)
				So(err, ShouldBeNil)

				clusters, err := store.LoadPredictor(context.Background(), core.ClusterModelName)
				So(err, ShouldBeNil)

				Convey("And a fresh feature vector maps to one of the four clusters", func() {
					memberEvents, err := source.EventsFor(context.Background(), "MEMBER03")
					So(err, ShouldBeNil)
					features := core.ExtractFeatures(core.GroupDailyVisits(memberEvents), memberEvents, now())

					scaled, err := scaler.Transform(features.ModelVector())
					So(err, ShouldBeNil)

					cluster, err := clusters.Predict(scaled)
					So(err, ShouldBeNil)
					So(cluster, ShouldBeBetweenOrEqual, 0, 3)
				})
			})
		})
	})

	Convey("Given fewer qualifying members than clusters", t, func() {
		var events []core.ScanEvent
		events = append(events, memberLog("MEMBER01", 5, 2, 8)...)
		events = append(events, memberLog("MEMBER02", 6, 1, 12)...)
		events = append(events, memberLog("MEMBER03", 4, 3, 18)...)
		events = append(events, memberLog("SPARSE01", 2, 1, 9)...)

		source := logsource.NewMemorySource(events)
		store, err := modelstore.NewFileStore(t.TempDir(), zap.NewNop())
		So(err, ShouldBeNil)
		trainer := core.NewTrainer(source, store, zap.NewNop(), core.WithTrainerClock(now))

		Convey("When training", func() {
			err := trainer.Train(context.Background())

			Convey("Then it signals insufficient data", func() {
				So(err, ShouldWrap, core.ErrInsufficientData)
			})

			Convey("And no artifacts are persisted", func() {
				_, err := store.LoadScaler(context.Background(), core.ScalerName)
				So(err, ShouldWrap, core.ErrModelUnavailable)

				_, err = store.LoadPredictor(context.Background(), core.ClusterModelName)
				So(err, ShouldWrap, core.ErrModelUnavailable)
			})
		})
	})
}
