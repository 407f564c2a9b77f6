package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"patakha/apperr"
	"patakha/db"
	"patakha/models"
	"patakha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/profile
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// PUT /api/profile
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	update := bson.M{}
	if name := strings.TrimSpace(input.Name); name != "" {
		update["name"] = name
	}
	if input.Phone != "" {
		update["phone"] = input.Phone
	}
	if len(update) == 0 {
		apperr.Respond(w, apperr.New(apperr.Validation, "Nothing to update"))
		return
	}

	_, err := db.UserCollection.UpdateOne(r.Context(), bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to update profile", err))
		return
	}

	GetProfile(w, r, nil)
}
