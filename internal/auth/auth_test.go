package auth_test

import (
	"testing"
	"time"

	"github.com/seasonal/ladder/internal/auth"
	"github.com/seasonal/ladder/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHasRole(t *testing.T) {
	Convey("Given the USER < ORGANIZER < ADMIN hierarchy", t, func() {
		Convey("Higher roles cover lower requirements", func() {
			So(auth.HasRole(model.RoleAdmin, model.RoleUser), ShouldBeTrue)
			So(auth.HasRole(model.RoleAdmin, model.RoleOrganizer), ShouldBeTrue)
			So(auth.HasRole(model.RoleOrganizer, model.RoleUser), ShouldBeTrue)
		})

		Convey("Every role covers itself", func() {
			So(auth.HasRole(model.RoleUser, model.RoleUser), ShouldBeTrue)
			So(auth.HasRole(model.RoleOrganizer, model.RoleOrganizer), ShouldBeTrue)
			So(auth.HasRole(model.RoleAdmin, model.RoleAdmin), ShouldBeTrue)
		})

		Convey("Lower roles never cover higher requirements", func() {
			So(auth.HasRole(model.RoleUser, model.RoleOrganizer), ShouldBeFalse)
			So(auth.HasRole(model.RoleOrganizer, model.RoleAdmin), ShouldBeFalse)
		})

		Convey("Unknown roles qualify for nothing", func() {
			So(auth.HasRole(model.Role("ROOT"), model.RoleUser), ShouldBeFalse)
			So(auth.HasRole(model.RoleAdmin, model.Role("ROOT")), ShouldBeFalse)
		})
	})
}

func TestTokens(t *testing.T) {
	const secret = "test-secret"

	Convey("Given an issued token", t, func() {
		token, err := auth.IssueToken(secret, "u1", model.RoleOrganizer, time.Hour)
		So(err, ShouldBeNil)

		Convey("Parsing with the right secret resolves the identity", func() {
			id, err := auth.ParseToken(secret, token)
			So(err, ShouldBeNil)
			So(id.UserID, ShouldEqual, "u1")
			So(id.Role, ShouldEqual, model.RoleOrganizer)
		})

		Convey("Parsing with the wrong secret fails", func() {
			_, err := auth.ParseToken("other-secret", token)
			So(err, ShouldWrap, auth.ErrInvalidToken)
		})
	})

	Convey("Given an expired token", t, func() {
		token, err := auth.IssueToken(secret, "u1", model.RoleUser, -time.Minute)
		So(err, ShouldBeNil)

		_, err = auth.ParseToken(secret, token)
		So(err, ShouldWrap, auth.ErrInvalidToken)
	})

	Convey("Given garbage input", t, func() {
		_, err := auth.ParseToken(secret, "not.a.token")
		So(err, ShouldWrap, auth.ErrInvalidToken)
	})
}

func TestFromHeader(t *testing.T) {
	Convey("A well-formed Authorization header yields the token", t, func() {
		token, err := auth.FromHeader("Bearer abc.def.ghi")
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "abc.def.ghi")
	})

	Convey("Missing or malformed headers fail", t, func() {
		_, err := auth.FromHeader("")
		So(err, ShouldWrap, auth.ErrNoToken)

		_, err = auth.FromHeader("Basic dXNlcjpwYXNz")
		So(err, ShouldWrap, auth.ErrNoToken)

		_, err = auth.FromHeader("Bearer ")
		So(err, ShouldWrap, auth.ErrNoToken)
	})
}
