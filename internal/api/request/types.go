package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// EditPasswordRequest is the request body for changing a password
type EditPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// EditUsernameRequest is the request body for renaming an account
type EditUsernameRequest struct {
	Username string `json:"username"`
}

// PromoteRequest is the request body for turning a trial account into a
// permanent one
type PromoteRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FriendRequestRequest names the account a friend request is sent to
type FriendRequestRequest struct {
	Username string `json:"username"`
}
