package app_test

import (
	"context"
	"testing"

	"github.com/seasonal/ladder/internal/adapters/repository"
	app "github.com/seasonal/ladder/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestImportRoster(t *testing.T) {
	Convey("Given a season and an existing player base", t, func() {
		svc, store := newService()
		ctx := context.Background()

		sn, err := svc.CreateSeason(ctx, "Fall 2025")
		So(err, ShouldBeNil)

		_, err = svc.CreatePlayer(ctx, "Alice", "")
		So(err, ShouldBeNil)
		bob, err := svc.CreatePlayer(ctx, "Bob", sn.ID)
		So(err, ShouldBeNil)
		carol, err := svc.CreatePlayer(ctx, "Carol", sn.ID)
		So(err, ShouldBeNil)
		So(svc.UpdateRanking(ctx, sn.ID, "Carol", 7.5), ShouldBeNil)
		dave, err := svc.CreatePlayer(ctx, "Dave", sn.ID)
		So(err, ShouldBeNil)
		So(svc.UpdateRanking(ctx, sn.ID, "Dave", 5), ShouldBeNil)

		Convey("When importing an empty roster", func() {
			_, err := svc.ImportRoster(ctx, sn.ID, nil)

			Convey("Then it should fail", func() {
				So(err, ShouldWrap, app.ErrEmptyRoster)
			})
		})

		Convey("When importing into an unknown season", func() {
			_, err := svc.ImportRoster(ctx, "missing", []app.RosterEntry{{Name: "Alice", Rank: 5}})

			Convey("Then it should report not found", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When importing a mixed roster", func() {
			summary, err := svc.ImportRoster(ctx, sn.ID, []app.RosterEntry{
				{Name: "Alice", Rank: 6},    // not in the season yet
				{Name: " Bob ", Rank: 4.5},  // member without a rating
				{Name: "Carol", Rank: 8},    // rated 7.5, conflicting
				{Name: "Dave", Rank: 5},     // rated 5 already
				{Name: "Nobody", Rank: 5},   // unknown player
				{Name: "Alice", Rank: 12.3}, // out of range
			})
			So(err, ShouldBeNil)

			byName := map[string]app.RosterResult{}
			for _, r := range summary.Results {
				if _, dup := byName[r.Name]; !dup {
					byName[r.Name] = r
				}
			}

			Convey("Then a new member is added with the rating", func() {
				r := byName["Alice"]
				So(r.Success, ShouldBeTrue)
				So(r.Action, ShouldEqual, app.ActionAddedToSeason)

				stored, err := store.PlayerByName(ctx, "Alice")
				So(err, ShouldBeNil)
				ranking, err := store.Ranking(ctx, sn.ID, stored.ID)
				So(err, ShouldBeNil)
				So(ranking.Rank.Float64(), ShouldEqual, 6)
			})

			Convey("Then an unrated member gets the rating", func() {
				r := byName["Bob"]
				So(r.Success, ShouldBeTrue)
				So(r.Action, ShouldEqual, app.ActionUpdatedRanking)

				ranking, err := store.Ranking(ctx, sn.ID, bob.ID)
				So(err, ShouldBeNil)
				So(ranking.Rank.Float64(), ShouldEqual, 4.5)
			})

			Convey("Then a differing rating is reported as a conflict", func() {
				r := byName["Carol"]
				So(r.Success, ShouldBeFalse)
				So(r.Action, ShouldEqual, app.ActionRankingConflict)
				So(r.CurrentRank, ShouldNotBeNil)
				So(*r.CurrentRank, ShouldEqual, 7.5)
				So(r.Error, ShouldEqual, "Player already exists in season with rank 7.5. New rank: 8")

				ranking, err := store.Ranking(ctx, sn.ID, carol.ID)
				So(err, ShouldBeNil)
				So(ranking.Rank.Float64(), ShouldEqual, 7.5)
			})

			Convey("Then a matching rating is left untouched", func() {
				r := byName["Dave"]
				So(r.Success, ShouldBeTrue)
				So(r.Action, ShouldEqual, app.ActionRankingUnchanged)

				ranking, err := store.Ranking(ctx, sn.ID, dave.ID)
				So(err, ShouldBeNil)
				So(ranking.Rank.Float64(), ShouldEqual, 5)
			})

			Convey("Then an unknown player is reported", func() {
				r := byName["Nobody"]
				So(r.Success, ShouldBeFalse)
				So(r.Action, ShouldEqual, app.ActionPlayerNotFound)
				So(r.Error, ShouldEqual, "Player not found in database")
			})

			Convey("Then an out-of-range rating is reported", func() {
				last := summary.Results[len(summary.Results)-1]
				So(last.Success, ShouldBeFalse)
				So(last.Action, ShouldEqual, app.ActionInvalidRank)
			})

			Convey("Then the summary counts only effective changes", func() {
				So(summary.TotalCount, ShouldEqual, 6)
				So(summary.SuccessCount, ShouldEqual, 2)
				So(summary.Message, ShouldEqual, "Successfully processed 2 out of 6 players")
			})
		})
	})
}
