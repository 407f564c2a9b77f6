package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"patakha/apperr"
	"patakha/db"
	"patakha/models"
	"patakha/rdx"
	"patakha/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 6 {
		apperr.Respond(w, apperr.New(apperr.Validation, "Name, email and a password of at least 6 characters are required"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to hash password", err))
		return
	}

	role := models.RoleUser
	if admin := os.Getenv("ADMIN_EMAIL"); admin != "" && strings.EqualFold(admin, input.Email) {
		role = models.RoleAdmin
	}

	user := models.User{
		UserID:    utils.GetUUID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if db.IsDuplicateKeyError(err) {
			apperr.Respond(w, apperr.New(apperr.Conflict, "An account with this email already exists"))
			return
		}
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to create account", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"userid": user.UserID,
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
	})
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if input.Email == "" || input.Password == "" {
		apperr.Respond(w, apperr.New(apperr.Validation, "Email and password are required"))
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": strings.ToLower(input.Email)}).Decode(&storedUser)
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.Auth, "Invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		apperr.Respond(w, apperr.New(apperr.Auth, "Invalid email or password"))
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to generate token", err))
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to generate refresh token", err))
		return
	}

	_, err = db.UserCollection.UpdateOne(
		r.Context(),
		bson.M{"userid": storedUser.UserID},
		bson.M{
			"$set": bson.M{
				"refresh_token":  hashToken(refreshToken),
				"refresh_expiry": time.Now().Add(refreshTokenTTL),
				"last_login":     time.Now(),
			},
		},
	)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to store refresh token", err))
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
		"name":         storedUser.Name,
		"role":         storedUser.Role,
	})
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	if err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("Redis token removal failed: %v", err)
	}

	_, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}},
	)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to log out", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RefreshToken == "" {
		apperr.Respond(w, apperr.New(apperr.Validation, "Refresh token is required"))
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&storedUser)
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unknown user"))
		return
	}

	if storedUser.RefreshToken != hashToken(input.RefreshToken) || time.Now().After(storedUser.RefreshExpiry) {
		apperr.Respond(w, apperr.New(apperr.Auth, "Refresh token invalid or expired"))
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to generate token", err))
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": tokenString})
}
