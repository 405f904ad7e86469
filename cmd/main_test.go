package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/eventscore/rankd/internal/adapters/cache"
	"github.com/eventscore/rankd/internal/adapters/http/api"
	"github.com/eventscore/rankd/internal/adapters/repository"
	service "github.com/eventscore/rankd/internal/app"
	"github.com/eventscore/rankd/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from environment", func() {
			t.Setenv("RANKD_ADDR", ":8080")
			t.Setenv("RANKD_CACHE_TTL_SECONDS", "10")

			ctx := context.Background()
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 10)
		})

		convey.Convey("When building backends from configuration", func() {
			convey.Convey("Then the memory store should be the default", func() {
				store, err := buildStore(context.Background(), config.New())
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldHaveSameTypeAs, repository.NewMemStore())
				convey.So(store.Close(), convey.ShouldBeNil)
			})

			convey.Convey("And the sqlite store should open on demand", func() {
				cfg := config.New()
				cfg.StoreBackend = config.BackendSQLite
				cfg.SQLitePath = filepath.Join(t.TempDir(), "rankd.db")

				store, err := buildStore(context.Background(), cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.Close(), convey.ShouldBeNil)
			})

			convey.Convey("And the memory cache should be the default", func() {
				c := buildCache(config.New())
				convey.So(c, convey.ShouldHaveSameTypeAs, &cache.MemoryCache{})
				convey.So(c.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When wiring the service and HTTP server", func() {
			svc := service.New(service.WithCacheTTL(time.Second))
			defer func() { _ = svc.Close() }()

			server := api.NewServer(svc, svc)
			convey.So(server, convey.ShouldNotBeNil)
		})
	})
}
