package epochs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/landrank/internal/adapters/epochs"
	"github.com/okian/landrank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directory of epoch files", t, func() {
		dir := t.TempDir()
		writeFile(t, dir, "epoch-2.yaml", "epoch: 2\nlands:\n  - {rank: 1, player: Bo, state_system: V}\n")
		writeFile(t, dir, "epoch-1.yml", "epoch: 1\nlands:\n  - {rank: 1, player: Ana, state_system: X}\n")
		writeFile(t, dir, "notes.txt", "not yaml: [")
		So(os.Mkdir(filepath.Join(dir, "old"), 0o700), ShouldBeNil)

		Convey("When loading the directory", func() {
			got, err := epochs.NewFileSource(dir).Epochs(ctx)

			Convey("Then every YAML file is merged in epoch order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].Lands[0].Player, ShouldEqual, "Ana")
				So(got[1].Lands[0].Player, ShouldEqual, "Bo")
			})
		})

		Convey("When two files declare the same epoch", func() {
			writeFile(t, dir, "epoch-2-copy.yaml", "epoch: 2\n")
			_, err := epochs.NewFileSource(dir).Epochs(ctx)

			Convey("Then a duplicate epoch error is returned", func() {
				So(errors.Is(err, epochs.ErrDuplicateEpoch), ShouldBeTrue)
			})
		})

		Convey("When a file is malformed", func() {
			bad := writeFile(t, dir, "broken.yaml", "epoch: [")
			_, err := epochs.NewFileSource(dir).Epochs(ctx)

			Convey("Then the error names the file", func() {
				So(errors.Is(err, epochs.ErrParse), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, bad)
			})
		})

		Convey("When only text files are accepted", func() {
			_, err := epochs.NewFileSource(dir, epochs.WithExtensions(".txt")).Epochs(ctx)

			Convey("Then the text file is parsed", func() {
				So(errors.Is(err, epochs.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := epochs.NewFileSource(dir).Epochs(cctx)

			Convey("Then loading stops", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a single epoch file", t, func() {
		path := writeFile(t, t.TempDir(), "all.yaml", twoEpochs)

		Convey("Then it is loaded directly", func() {
			got, err := epochs.NewFileSource(path).Epochs(ctx)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})
	})

	Convey("Given an empty directory", t, func() {
		_, err := epochs.NewFileSource(t.TempDir()).Epochs(ctx)

		Convey("Then no data is reported", func() {
			So(errors.Is(err, epochs.ErrNoData), ShouldBeTrue)
		})
	})

	Convey("Given a missing path", t, func() {
		_, err := epochs.NewFileSource(filepath.Join(t.TempDir(), "nope")).Epochs(ctx)

		Convey("Then no data is reported", func() {
			So(errors.Is(err, epochs.ErrNoData), ShouldBeTrue)
		})
	})
}

func TestStaticSource(t *testing.T) {
	Convey("Given a static source", t, func() {
		want := []types.Epoch{{Number: 1}}
		got, err := epochs.StaticSource(want).Epochs(context.Background())

		Convey("Then it returns the collection", func() {
			So(err, ShouldBeNil)
			So(got, ShouldResemble, want)
		})
	})
}
