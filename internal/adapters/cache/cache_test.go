package cache

import (
	"context"
	"testing"

	"github.com/seasonal/ladder/internal/domain/tablesort"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNoop(t *testing.T) {
	Convey("Given a no-op standings cache", t, func() {
		c := NewNoop()
		ctx := context.Background()

		Convey("When writing and reading back", func() {
			So(c.Set(ctx, "season-1", []tablesort.PlayerRow{{PlayerID: "p-1", Name: "Alice"}}), ShouldBeNil)

			rows, hit, err := c.Get(ctx, "season-1")

			Convey("Then it always misses", func() {
				So(err, ShouldBeNil)
				So(hit, ShouldBeFalse)
				So(rows, ShouldBeNil)
			})
		})

		Convey("When invalidating and closing", func() {
			So(c.Invalidate(ctx, "season-1"), ShouldBeNil)
			So(c.Close(), ShouldBeNil)
		})
	})
}

func TestStandingsKey(t *testing.T) {
	Convey("Given a season id", t, func() {
		Convey("Then the cache key is namespaced by season", func() {
			So(standingsKey("abc"), ShouldEqual, "season:abc:standings")
		})
	})
}
