package utils

import (
	"net/http"

	"patakha/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func GetUsernameFromRequest(r *http.Request) string {
	name, ok := r.Context().Value(globals.UsernameKey).(string)
	if !ok {
		return ""
	}
	return name
}
