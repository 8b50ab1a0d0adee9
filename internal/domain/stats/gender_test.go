package stats_test

import (
	"testing"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
	"github.com/seasonal/ladder/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func gender(g model.Gender) *model.Gender { return &g }

func rating(v float64) *rank.Rating {
	r := rank.FromFloat(v)
	return &r
}

func TestCalculatePlayerStatistics(t *testing.T) {
	Convey("Given players with gender and season ratings", t, func() {
		players := []stats.PlayerWithRatings{
			{Name: "Avery", Gender: gender(model.GenderMale), Seasons: []stats.SeasonRating{{Rank: rating(8)}}},
			{Name: "Blake", Gender: gender(model.GenderMale), Seasons: []stats.SeasonRating{{Rank: rating(6)}, {Rank: rating(4)}}},
			{Name: "Casey", Gender: gender(model.GenderFemale), Seasons: nil},
		}

		got := stats.CalculatePlayerStatistics(players)

		Convey("Bucket averages are means of per-player means", func() {
			// Avery averages 8, Blake averages 5, so the bucket mean is
			// 6.5 rather than the pooled (8+6+4)/3 = 6.
			So(got.Male.AverageRating, ShouldNotBeNil)
			So(*got.Male.AverageRating, ShouldEqual, 6.5)
		})

		Convey("A bucket with no ranked members has a nil average", func() {
			So(got.Female.AverageRating, ShouldBeNil)
			So(got.Female.PlayerCount, ShouldEqual, 1)
		})

		Convey("Percentages are shares of all players, two decimals", func() {
			So(got.Female.Percentage, ShouldEqual, 33.33)
			So(got.Male.Percentage, ShouldEqual, 66.67)
			So(got.TotalPlayers, ShouldEqual, 3)
		})
	})

	Convey("Given players with unset or unrecognized genders", t, func() {
		other := model.Gender("OTHER")
		players := []stats.PlayerWithRatings{
			{Name: "Drew", Gender: nil, Seasons: []stats.SeasonRating{{Rank: rating(7)}}},
			{Name: "Emery", Gender: &other},
		}

		got := stats.CalculatePlayerStatistics(players)

		Convey("Both land in the unspecified bucket", func() {
			So(got.Unspecified.PlayerCount, ShouldEqual, 2)
			So(*got.Unspecified.AverageRating, ShouldEqual, 7)
			So(got.Unspecified.Percentage, ShouldEqual, 100)
		})
	})

	Convey("Given an empty player list", t, func() {
		got := stats.CalculatePlayerStatistics(nil)

		Convey("All buckets are empty with zero percentages", func() {
			So(got.TotalPlayers, ShouldEqual, 0)
			So(got.Male.Percentage, ShouldEqual, 0)
			So(got.Male.AverageRating, ShouldBeNil)
		})
	})

	Convey("Given unranked seasons mixed into a player's history", t, func() {
		players := []stats.PlayerWithRatings{
			{Name: "Finley", Gender: gender(model.GenderNonBinary), Seasons: []stats.SeasonRating{
				{Rank: rating(9)}, {Rank: nil}, {Rank: rating(7)},
			}},
		}

		got := stats.CalculatePlayerStatistics(players)

		Convey("Nil ranks are excluded from the player average", func() {
			So(*got.NonBinary.AverageRating, ShouldEqual, 8)
		})
	})
}

func TestGenderCounts(t *testing.T) {
	Convey("Given a mixed roster", t, func() {
		players := []stats.PlayerWithRatings{
			{Name: "A", Gender: gender(model.GenderMale)},
			{Name: "B", Gender: gender(model.GenderMale)},
			{Name: "C", Gender: gender(model.GenderFemale)},
			{Name: "D", Gender: nil},
		}

		counts := stats.GenderCounts(players)
		So(counts[stats.FilterAll], ShouldEqual, 4)
		So(counts[stats.FilterMale], ShouldEqual, 2)
		So(counts[stats.FilterFemale], ShouldEqual, 1)
		So(counts[stats.FilterNonBinary], ShouldEqual, 0)
		So(counts[stats.FilterUnspecified], ShouldEqual, 1)
	})
}

func TestFilterPlayersByGender(t *testing.T) {
	players := []stats.PlayerWithRatings{
		{Name: "A", Gender: gender(model.GenderMale)},
		{Name: "B", Gender: gender(model.GenderFemale)},
		{Name: "C", Gender: nil},
	}

	Convey("Filtering by all returns everyone", t, func() {
		So(stats.FilterPlayersByGender(players, stats.FilterAll), ShouldHaveLength, 3)
	})

	Convey("Filtering by a bucket returns only its members", t, func() {
		got := stats.FilterPlayersByGender(players, stats.FilterFemale)
		So(got, ShouldHaveLength, 1)
		So(got[0].Name, ShouldEqual, "B")
	})

	Convey("Filtering by unspecified returns players without a gender", t, func() {
		got := stats.FilterPlayersByGender(players, stats.FilterUnspecified)
		So(got, ShouldHaveLength, 1)
		So(got[0].Name, ShouldEqual, "C")
	})
}

func TestSortPlayersByName(t *testing.T) {
	Convey("Given players in arbitrary order", t, func() {
		players := []stats.PlayerWithRatings{
			{Name: "charlie"}, {Name: "Alice"}, {Name: "Bob"},
		}

		got := stats.SortPlayersByName(players)

		Convey("They sort case-insensitively by name", func() {
			So(got[0].Name, ShouldEqual, "Alice")
			So(got[1].Name, ShouldEqual, "Bob")
			So(got[2].Name, ShouldEqual, "charlie")
		})

		Convey("The input slice is left untouched", func() {
			So(players[0].Name, ShouldEqual, "charlie")
		})
	})
}

func TestGenderLabel(t *testing.T) {
	Convey("Labels cover every gender value", t, func() {
		So(stats.GenderLabel(gender(model.GenderMale)), ShouldEqual, "Male")
		So(stats.GenderLabel(gender(model.GenderFemale)), ShouldEqual, "Female")
		So(stats.GenderLabel(gender(model.GenderNonBinary)), ShouldEqual, "Non-Binary")
		So(stats.GenderLabel(nil), ShouldEqual, "Gender not set")
	})
}
