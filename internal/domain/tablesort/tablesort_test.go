package tablesort_test

import (
	"testing"

	"github.com/seasonal/ladder/internal/domain/rank"
	"github.com/seasonal/ladder/internal/domain/tablesort"
	. "github.com/smartystreets/goconvey/convey"
)

func rating(v float64) *rank.Rating {
	r := rank.FromFloat(v)
	return &r
}

func TestToggle(t *testing.T) {
	Convey("Clicking the current field flips direction", t, func() {
		So(tablesort.Toggle("name", tablesort.Asc, "name"),
			ShouldResemble, tablesort.State{Field: "name", Direction: tablesort.Desc})
		So(tablesort.Toggle("name", tablesort.Desc, "name"),
			ShouldResemble, tablesort.State{Field: "name", Direction: tablesort.Asc})
	})

	Convey("Clicking a different field resets to ascending", t, func() {
		So(tablesort.Toggle("name", tablesort.Desc, "rank"),
			ShouldResemble, tablesort.State{Field: "rank", Direction: tablesort.Asc})
	})
}

func TestSort(t *testing.T) {
	type row struct {
		Label string
		Value float64
	}
	fieldOf := func(r row, field string) any {
		if field == "label" {
			return r.Label
		}
		return r.Value
	}

	Convey("Given rows with string and numeric fields", t, func() {
		rows := []row{{"banana", 2}, {"apple", 3}, {"cherry", 1}}

		Convey("String fields compare lexicographically", func() {
			got := tablesort.Sort(rows, tablesort.State{Field: "label", Direction: tablesort.Asc}, fieldOf)
			So(got[0].Label, ShouldEqual, "apple")
			So(got[2].Label, ShouldEqual, "cherry")
		})

		Convey("Numeric fields compare numerically", func() {
			got := tablesort.Sort(rows, tablesort.State{Field: "value", Direction: tablesort.Asc}, fieldOf)
			So(got[0].Value, ShouldEqual, 1)
			So(got[2].Value, ShouldEqual, 3)
		})

		Convey("Descending negates the comparison", func() {
			got := tablesort.Sort(rows, tablesort.State{Field: "value", Direction: tablesort.Desc}, fieldOf)
			So(got[0].Value, ShouldEqual, 3)
			So(got[2].Value, ShouldEqual, 1)
		})

		Convey("The input slice is not mutated", func() {
			_ = tablesort.Sort(rows, tablesort.State{Field: "value", Direction: tablesort.Asc}, fieldOf)
			So(rows[0].Label, ShouldEqual, "banana")
		})
	})

	Convey("Given mixed value types, both sides are stringified", t, func() {
		mixed := func(r row, _ string) any {
			if r.Label == "banana" {
				return r.Value // numeric on one side only
			}
			return r.Label
		}
		rows := []row{{"banana", 2}, {"apple", 3}}
		got := tablesort.Sort(rows, tablesort.State{Field: "any", Direction: tablesort.Asc}, mixed)
		// "2" < "apple" lexicographically.
		So(got[0].Label, ShouldEqual, "banana")
	})

	Convey("Equal keys keep their input order", t, func() {
		rows := []row{{"first", 1}, {"second", 1}, {"third", 1}}
		got := tablesort.Sort(rows, tablesort.State{Field: "value", Direction: tablesort.Desc}, fieldOf)
		So(got[0].Label, ShouldEqual, "first")
		So(got[1].Label, ShouldEqual, "second")
		So(got[2].Label, ShouldEqual, "third")
	})
}

func TestSortPlayers(t *testing.T) {
	Convey("Given standings rows with nil ranks", t, func() {
		rows := []tablesort.PlayerRow{
			{Name: "A", Rank: nil},
			{Name: "B", Rank: rating(3)},
			{Name: "C", Rank: nil},
			{Name: "D", Rank: rating(1)},
		}

		Convey("Ascending puts ranked rows first, nils last in input order", func() {
			got := tablesort.SortPlayers(rows, tablesort.State{Field: tablesort.FieldRank, Direction: tablesort.Asc})
			So(got[0].Name, ShouldEqual, "D")
			So(got[1].Name, ShouldEqual, "B")
			So(got[2].Name, ShouldEqual, "A")
			So(got[3].Name, ShouldEqual, "C")
		})

		Convey("Descending still puts nils last", func() {
			got := tablesort.SortPlayers(rows, tablesort.State{Field: tablesort.FieldRank, Direction: tablesort.Desc})
			So(got[0].Name, ShouldEqual, "B")
			So(got[1].Name, ShouldEqual, "D")
			So(got[2].Name, ShouldEqual, "A")
			So(got[3].Name, ShouldEqual, "C")
		})

		Convey("Sorting by name ignores ranks", func() {
			got := tablesort.SortPlayers(rows, tablesort.State{Field: tablesort.FieldName, Direction: tablesort.Asc})
			So(got[0].Name, ShouldEqual, "A")
			So(got[3].Name, ShouldEqual, "D")
		})
	})
}
