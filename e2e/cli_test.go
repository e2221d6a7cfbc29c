package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quizgame-accounts/internal/api"
	"github.com/mcoot/quizgame-accounts/internal/cli"
	"github.com/mcoot/quizgame-accounts/internal/factory"
	"github.com/mcoot/quizgame-accounts/internal/testutil"
)

// startTestServer runs the real HTTP server on a free port and returns its URL
func startTestServer(t *testing.T) string {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(context.Background(), factory.Config{Logger: logger, BcryptCost: 4})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Accounts: app.Accounts,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = port
	server := api.NewServer(router, serverCfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		_ = server.Shutdown(context.Background())
		_ = app.Close()
	})

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// cliRunner runs the CLI in process against one server
type cliRunner struct {
	serverURL string
}

func (r *cliRunner) run(args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", r.serverURL, "--output", "json"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func runJSON[T any](t *testing.T, r *cliRunner, args ...string) T {
	t.Helper()
	out, err := r.run(args...)
	require.NoError(t, err, out)

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

// Response types for JSON parsing
type idResponse struct {
	ID string `json:"id"`
}

type summaryResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type accountResponse struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Role           string   `json:"role"`
	Status         string   `json:"status"`
	OwnedResources []string `json:"owned_resources"`
	Friends        []string `json:"friends"`
}

type friendListResponse struct {
	Accounts []summaryResponse `json:"accounts"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLIHealth(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	resp := runJSON[healthResponse](t, r, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLIAccountLifecycle(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	created := runJSON[idResponse](t, r, "account", "register", "--user", "alice", "--pass", "pw1")
	require.NotEmpty(t, created.ID)

	login := runJSON[summaryResponse](t, r, "account", "login", "--user", "alice", "--pass", "pw1")
	assert.Equal(t, created.ID, login.ID)

	account := runJSON[accountResponse](t, r, "account", "get", created.ID)
	assert.Equal(t, "online", account.Status)
	assert.Equal(t, "permanent", account.Role)

	_, err := r.run("account", "passwd", created.ID, "--old", "pw1", "--new", "pw2")
	require.NoError(t, err)
	_, err = r.run("account", "rename", created.ID, "alicia")
	require.NoError(t, err)

	login = runJSON[summaryResponse](t, r, "account", "login", "--user", "alicia", "--pass", "pw2")
	assert.Equal(t, created.ID, login.ID)

	lookup := runJSON[summaryResponse](t, r, "account", "lookup", "alicia")
	assert.Equal(t, created.ID, lookup.ID)

	_, err = r.run("account", "logout", created.ID)
	require.NoError(t, err)

	_, err = r.run("account", "delete", created.ID)
	require.NoError(t, err)

	out, err := r.run("account", "get", created.ID)
	require.Error(t, err)
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr, out)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", apiErr.Code)
}

func TestCLIWrongPassword(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}
	runJSON[idResponse](t, r, "account", "register", "--user", "bob", "--pass", "pw")

	_, err := r.run("account", "login", "--user", "bob", "--pass", "nope")
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCLITrialPromotion(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	trial := runJSON[summaryResponse](t, r, "account", "trial")
	assert.Equal(t, "TrialUser"+trial.ID, trial.Username)

	runJSON[map[string][]string](t, r, "account", "resource", "add", trial.ID, "quiz-1")

	promoted := runJSON[accountResponse](t, r, "account", "promote", trial.ID, "--user", "carol", "--pass", "pw")
	assert.Equal(t, trial.ID, promoted.ID)
	assert.Equal(t, "permanent", promoted.Role)
	assert.Equal(t, []string{"quiz-1"}, promoted.OwnedResources)

	resources := runJSON[map[string][]string](t, r, "account", "resource", "remove", trial.ID, "quiz-1")
	assert.Empty(t, resources["resources"])
}

func TestCLIFriends(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	alice := runJSON[idResponse](t, r, "account", "register", "--user", "alice", "--pass", "pw")
	bob := runJSON[idResponse](t, r, "account", "register", "--user", "bob", "--pass", "pw")

	_, err := r.run("friend", "request", alice.ID, "bob")
	require.NoError(t, err)

	pending := runJSON[friendListResponse](t, r, "friend", "pending", bob.ID)
	assert.Equal(t, []summaryResponse{{ID: alice.ID, Username: "alice"}}, pending.Accounts)

	friends := runJSON[friendListResponse](t, r, "friend", "accept", bob.ID, "alice")
	assert.Equal(t, []summaryResponse{{ID: alice.ID, Username: "alice"}}, friends.Accounts)

	friends = runJSON[friendListResponse](t, r, "friend", "list", bob.ID)
	assert.Equal(t, []summaryResponse{{ID: alice.ID, Username: "alice"}}, friends.Accounts)

	_, err = r.run("friend", "remove", bob.ID, "alice")
	require.NoError(t, err)

	friends = runJSON[friendListResponse](t, r, "friend", "list", bob.ID)
	assert.Empty(t, friends.Accounts)
}

func TestCLILookupUsernameWithSlash(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}
	created := runJSON[idResponse](t, r, "account", "register", "--user", "team/red", "--pass", "pw")

	lookup := runJSON[summaryResponse](t, r, "account", "lookup", "team/red")
	assert.Equal(t, created.ID, lookup.ID)
	assert.Equal(t, "team/red", lookup.Username)
}

func TestCLITextOutput(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}
	created := runJSON[idResponse](t, r, "account", "register", "--user", "dave", "--pass", "pw", "--role", "temporary")

	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--server", r.serverURL, "account", "get", created.ID})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Account: dave ("+created.ID+")")
	assert.Contains(t, out.String(), "Role: temporary")
	assert.Contains(t, out.String(), "Expires: ")
	assert.Contains(t, out.String(), "Friends: none")
}
