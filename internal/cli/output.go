package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AccountSummary:
		fmt.Fprintf(o.w, "Account: %s (%s)\n", v.Username, v.ID)
	case AccountID:
		fmt.Fprintf(o.w, "Account ID: %s\n", v.ID)
	case FriendList:
		o.printFriendList(v)
	case Resources:
		o.printList("Resources", v.Resources)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	RegisteredAt   time.Time  `json:"registered_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	OwnedResources []string   `json:"owned_resources"`
	Friends        []string   `json:"friends"`
	PendingFriends []string   `json:"pending_friends"`
}

// AccountSummary pairs an id with a username
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AccountID response type
type AccountID struct {
	ID string `json:"id"`
}

// FriendList response type
type FriendList struct {
	Accounts []AccountSummary `json:"accounts"`
}

// Resources response type
type Resources struct {
	Resources []string `json:"resources"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Fprintf(o.w, "Account: %s (%s)\n", a.Username, a.ID)
	fmt.Fprintf(o.w, "Role: %s\n", a.Role)
	fmt.Fprintf(o.w, "Status: %s\n", a.Status)
	fmt.Fprintf(o.w, "Registered: %s\n", a.RegisteredAt.Format(time.RFC3339))
	if a.ExpiresAt != nil {
		fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
	}
	o.printList("Resources", a.OwnedResources)
	o.printList("Friends", a.Friends)
	o.printList("Pending", a.PendingFriends)
}

func (o *Output) printFriendList(f FriendList) {
	fmt.Fprintf(o.w, "Accounts (%d):\n", len(f.Accounts))
	for _, a := range f.Accounts {
		fmt.Fprintf(o.w, "  - %s (%s)\n", a.Username, a.ID)
	}
}

func (o *Output) printList(label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(o.w, "%s: none\n", label)
		return
	}
	fmt.Fprintf(o.w, "%s: %s\n", label, strings.Join(items, ", "))
}
