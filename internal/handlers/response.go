package handlers

import "github.com/gin-gonic/gin"

// Response envelopes matching the API's established wire format:
// {"status":"success","data":...} and {"status":"error","message":...}.

func success(data any) gin.H {
	return gin.H{"status": "success", "data": data}
}

func failure(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

// Client-facing messages. These are part of the API contract; frontends
// match on them.
const (
	msgBadUserData        = "User data is not formatted correctly"
	msgDatabaseError      = "Database Error"
	msgDuplicateAccount   = "Username or email already taken"
	msgInvalidCredentials = "Invalid Username or Password"
	msgOldPasswordWrong   = "Old password does not match"
)
