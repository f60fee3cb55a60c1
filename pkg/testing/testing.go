package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root so logs/ and sqlite files land in one place during tests.
	// usage is
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/liftright-data-server/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
