package logsource_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/gym-consistency/internal/adapters/logsource"
	"github.com/mikey/gym-consistency/internal/core"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestSQLiteSource(t *testing.T) {
	Convey("Given a SQLite-backed event source", t, func() {
		source, err := logsource.NewSQLiteSource(
			filepath.Join(t.TempDir(), "scans.db"), zap.NewNop())
		So(err, ShouldBeNil)
		defer source.Close()

		ctx := context.Background()

		Convey("When recording scans for two members", func() {
			stamps := []time.Time{
				time.Date(2025, 1, 2, 8, 10, 0, 0, time.UTC),
				time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
			}
			So(source.Record(ctx, core.ScanEvent{Identifier: "aa6a06b0", Timestamp: stamps[0]}), ShouldBeNil)
			So(source.Record(ctx, core.ScanEvent{Identifier: "AA6A06B0", Timestamp: stamps[1]}), ShouldBeNil)
			So(source.Record(ctx, core.ScanEvent{Identifier: "23FF6AAD", Timestamp: stamps[0]}), ShouldBeNil)

			Convey("Then EventsFor matches case-insensitively in timestamp order", func() {
				events, err := source.EventsFor(ctx, "Aa6a06B0")
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 2)
				So(events[0].Identifier, ShouldEqual, "AA6A06B0")
				So(events[0].Timestamp.Equal(stamps[1]), ShouldBeTrue)
				So(events[1].Timestamp.Equal(stamps[0]), ShouldBeTrue)
			})

			Convey("And Members groups by normalized identifier", func() {
				members, err := source.Members(ctx)
				So(err, ShouldBeNil)
				So(members, ShouldHaveLength, 2)
				So(members[0].Identifier, ShouldEqual, "23FF6AAD")
				So(members[0].Records, ShouldEqual, 1)
				So(members[1].Identifier, ShouldEqual, "AA6A06B0")
				So(members[1].Records, ShouldEqual, 2)
			})
		})

		Convey("When querying an empty table", func() {
			events, err := source.EventsFor(ctx, "AA6A06B0")

			Convey("Then no events and no error are returned", func() {
				So(err, ShouldBeNil)
				So(events, ShouldBeEmpty)
			})
		})
	})
}
