package config_test

import (
	"testing"

	"github.com/seasonal/ladder/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			convey.So(cfg.CacheEnabled, convey.ShouldBeFalse)
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 300)
			convey.So(cfg.TokenTTLMinutes, convey.ShouldEqual, 60)
		})
	})
}
