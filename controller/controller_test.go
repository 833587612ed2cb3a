package controller

import (
	"fmt"
	"os"
	"testing"

	"github.com/itbasis/go-clock"

	"github.com/djmorgan26/fantasy-football-assistant/llm"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/sleeper"
	"github.com/djmorgan26/fantasy-football-assistant/testutils"
	"github.com/djmorgan26/fantasy-football-assistant/vault"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

type testEnv struct {
	ctrl        C
	fakeESPN    *testutils.FakeESPNServer
	fakeSleeper *testutils.FakeSleeperServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fakeESPN := testutils.NewFakeESPNServer()
	t.Cleanup(fakeESPN.Close)
	fakeSleeper := testutils.NewFakeSleeperServer()
	t.Cleanup(fakeSleeper.Close)

	v, err := vault.New("controller-test-secret")
	if err != nil {
		t.Fatalf("error creating vault: %v", err)
	}

	ctrl, err := New(
		clock.New(),
		testDB.DB,
		espn.NewForTest(fakeESPN.URL(), testutils.ESPNSeasonYear),
		sleeper.NewForTest(fakeSleeper.URL()),
		llm.New("", ""),
		v,
	)
	if err != nil {
		t.Fatalf("error creating new controller: %v", err)
	}

	return &testEnv{
		ctrl:        ctrl,
		fakeESPN:    fakeESPN,
		fakeSleeper: fakeSleeper,
	}
}
