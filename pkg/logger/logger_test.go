package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFieldConstructors(t *testing.T) {
	Convey("Given field constructors", t, func() {
		Convey("Then each constructor carries its key and value", func() {
			So(String("k", "v"), ShouldResemble, Field{Key: "k", Value: "v"})
			So(Int("n", 7), ShouldResemble, Field{Key: "n", Value: 7})
			So(Int64("id", int64(9)), ShouldResemble, Field{Key: "id", Value: int64(9)})
			So(Bool("ok", true), ShouldResemble, Field{Key: "ok", Value: true})
			So(Duration("d", time.Second), ShouldResemble, Field{Key: "d", Value: time.Second})
			So(Any("x", 1.5), ShouldResemble, Field{Key: "x", Value: 1.5})
		})

		Convey("Then Error uses the fixed error key", func() {
			err := errors.New("boom")
			f := Error(err)
			So(f.Key, ShouldEqual, "error")
			So(f.Value, ShouldEqual, err)
		})
	})
}

func TestGlobalLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			log := Get()
			So(log, ShouldNotBeNil)
			So(func() {
				log.Info(context.Background(), "hello", String("k", "v"))
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a scoped logger", func() {
			So(Named("ranking"), ShouldNotBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known levels parse", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(SetLevelString("INFO"), ShouldBeNil)
			So(SetLevelString(" warn "), ShouldBeNil)
			So(SetLevelString("warning"), ShouldBeNil)
			So(SetLevelString("error"), ShouldBeNil)
			So(SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown levels fail", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("Then SetLevel applies directly", func() {
			So(func() { SetLevel(slog.LevelDebug) }, ShouldNotPanic)
		})
	})
}

func TestNopLogger(t *testing.T) {
	Convey("Given the nop logger", t, func() {
		log := Nop()

		Convey("Then all levels are safe to call", func() {
			ctx := context.Background()
			So(func() {
				log.Debug(ctx, "d")
				log.Info(ctx, "i")
				log.Warn(ctx, "w")
				log.Error(ctx, "e", Error(errors.New("x")))
				log.Named("sub").Info(ctx, "n")
			}, ShouldNotPanic)
		})
	})
}
