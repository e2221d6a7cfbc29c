package storage

import (
	"context"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// AccountStore is the durable side of the account manager. Implementations
// must treat SaveAccount as an upsert and must not retain the pointers they
// are given.
type AccountStore interface {
	// LoadAllAccounts returns every persisted account, used once at startup
	LoadAllAccounts(ctx context.Context) ([]*model.Account, error)
	LoadAccountCount(ctx context.Context) (int, error)

	SaveAccount(ctx context.Context, account *model.Account) error
	// DeleteAccount removes an account; deleting a missing id is not an error
	DeleteAccount(ctx context.Context, id model.AccountID) error
}
