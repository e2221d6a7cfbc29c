package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/quizgame-accounts/internal/dependencies/mocks"
	"github.com/mcoot/quizgame-accounts/internal/dependencies/password"
	"github.com/mcoot/quizgame-accounts/internal/storage/memory"
	"github.com/mcoot/quizgame-accounts/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	Memory     *memory.Storage
	FlakyStore *mocks.FlakyStore
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the cheapest bcrypt cost
func NewTestApp() *TestApp {
	mem := memory.New()
	store := mocks.NewFlakyStore(mem)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app, err := newWithDependencies(context.Background(), store, mockClock, password.NewBcrypt(bcrypt.MinCost), testutil.NopLogger())
	if err != nil {
		// The in-memory store cannot fail to load
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		Memory:     mem,
		FlakyStore: store,
	}
}
