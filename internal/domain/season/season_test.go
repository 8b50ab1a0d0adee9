package season_test

import (
	"testing"

	"github.com/seasonal/ladder/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given season display names", t, func() {
		Convey("A well-formed name splits into sub-season and year", func() {
			So(season.Parse("Summer 2024"), ShouldResemble, season.Parsed{Year: 2024, SubSeason: "Summer"})
			So(season.Parse("Fall 2023"), ShouldResemble, season.Parsed{Year: 2023, SubSeason: "Fall"})
		})

		Convey("Multi-word sub-seasons keep everything before the year", func() {
			So(season.Parse("Late Summer 2024"), ShouldResemble, season.Parsed{Year: 2024, SubSeason: "Late Summer"})
		})

		Convey("Surrounding and internal whitespace is normalized", func() {
			So(season.Parse("  Winter   2025  "), ShouldResemble, season.Parsed{Year: 2025, SubSeason: "Winter"})
		})

		Convey("A name without a year token degrades to year 0", func() {
			So(season.Parse("Foo"), ShouldResemble, season.Parsed{Year: 0, SubSeason: "Foo"})
			So(season.Parse("Spring Invitational"), ShouldResemble, season.Parsed{Year: 0, SubSeason: "Spring Invitational"})
		})

		Convey("A bare year has an empty sub-season", func() {
			So(season.Parse("2024"), ShouldResemble, season.Parsed{Year: 2024, SubSeason: ""})
		})

		Convey("An empty name parses to the zero value", func() {
			So(season.Parse(""), ShouldResemble, season.Parsed{})
			So(season.Parse("   "), ShouldResemble, season.Parsed{})
		})
	})
}

func TestOrder(t *testing.T) {
	Convey("Given sub-season labels", t, func() {
		Convey("The four recognized sub-seasons order winter through fall", func() {
			So(season.Order("Winter"), ShouldEqual, 0)
			So(season.Order("Spring"), ShouldEqual, 1)
			So(season.Order("Summer"), ShouldEqual, 2)
			So(season.Order("Fall"), ShouldEqual, 3)
			So(season.Order("Autumn"), ShouldEqual, 3)
		})

		Convey("Matching is case-insensitive and substring based", func() {
			So(season.Order("EARLY WINTER"), ShouldEqual, 0)
			So(season.Order("midsummer"), ShouldEqual, 2)
		})

		Convey("Unknown sub-seasons sort after the recognized ones", func() {
			So(season.Order("Monsoon"), ShouldEqual, 4)
			So(season.Order(""), ShouldEqual, 4)
		})
	})
}

func TestSortChronologically(t *testing.T) {
	ident := func(s string) string { return s }

	Convey("Given a mixed list of season names", t, func() {
		names := []string{"Winter 2023", "Fall 2023", "Summer 2024"}

		Convey("Sorting yields most recent first", func() {
			got := season.SortChronologically(names, ident)
			So(got, ShouldResemble, []string{"Summer 2024", "Fall 2023", "Winter 2023"})
		})

		Convey("The returned slice is the input slice", func() {
			got := season.SortChronologically(names, ident)
			So(&got[0], ShouldEqual, &names[0])
		})

		Convey("Sorting an already-sorted list is idempotent", func() {
			once := season.SortChronologically(names, ident)
			snapshot := append([]string(nil), once...)
			twice := season.SortChronologically(once, ident)
			So(twice, ShouldResemble, snapshot)
		})
	})

	Convey("Given names with equal years", t, func() {
		names := []string{"Spring 2024", "Fall 2024", "Winter 2024", "Summer 2024"}
		got := season.SortChronologically(names, ident)
		So(got, ShouldResemble, []string{"Fall 2024", "Summer 2024", "Spring 2024", "Winter 2024"})
	})

	Convey("Given equal sort keys, input order is preserved", t, func() {
		names := []string{"Cup 2024", "Open 2024", "Gala 2024"}
		got := season.SortChronologically(names, ident)
		So(got, ShouldResemble, []string{"Cup 2024", "Open 2024", "Gala 2024"})
	})

	Convey("Given names without years, they sort after dated seasons", t, func() {
		names := []string{"Exhibition", "Winter 2020"}
		got := season.SortChronologically(names, ident)
		So(got, ShouldResemble, []string{"Winter 2020", "Exhibition"})
	})
}
