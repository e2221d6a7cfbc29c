package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/storage"
)

// Storage is the PostgreSQL account store. Set-valued fields live in TEXT[]
// columns; online status is never persisted.
type Storage struct{ db *DB }

// New creates a store over an open DB
func New(db *DB) *Storage { return &Storage{db: db} }

// Close closes the underlying pool
func (s *Storage) Close() error {
	s.db.Close()
	return nil
}

var _ storage.AccountStore = (*Storage)(nil)

const selectAccounts = `
SELECT id, username, password_hash, role, registered_at, owned_resources, friends, pending_friends
FROM accounts ORDER BY id`

func (s *Storage) LoadAllAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := s.db.Pool.Query(ctx, selectAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		a                       model.Account
		id, role                string
		owned, friends, pending []string
	)
	if err := row.Scan(&id, &a.Username, &a.PasswordHash, &role, &a.RegisteredAt, &owned, &friends, &pending); err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.ID = model.AccountID(id)
	a.Role = model.Role(role)
	a.OwnedResources = model.NewSet(owned...)
	a.Friends = toIDSet(friends)
	a.PendingFriends = toIDSet(pending)
	a.Normalize()
	return &a, nil
}

func (s *Storage) LoadAccountCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.Pool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Storage) SaveAccount(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, username, password_hash, role, registered_at, owned_resources, friends, pending_friends)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    username = EXCLUDED.username,
    password_hash = EXCLUDED.password_hash,
    role = EXCLUDED.role,
    owned_resources = EXCLUDED.owned_resources,
    friends = EXCLUDED.friends,
    pending_friends = EXCLUDED.pending_friends`
	_, err := s.db.Pool.Exec(ctx, q,
		string(a.ID), a.Username, a.PasswordHash, string(a.Role), a.RegisteredAt,
		a.OwnedResources.Sorted(), fromIDSet(a.Friends), fromIDSet(a.PendingFriends),
	)
	return err
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, string(id))
	return err
}

func toIDSet(ids []string) model.Set[model.AccountID] {
	set := model.NewSet[model.AccountID]()
	for _, id := range ids {
		set.Add(model.AccountID(id))
	}
	return set
}

func fromIDSet(set model.Set[model.AccountID]) []string {
	out := make([]string, 0, len(set))
	for _, id := range set.Sorted() {
		out = append(out, string(id))
	}
	return out
}
