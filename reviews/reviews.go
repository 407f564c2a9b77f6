package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"patakha/apperr"
	"patakha/db"
	"patakha/models"
	"patakha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/reviews
func AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	var input struct {
		ProductID string   `json:"productId"`
		Rating    int      `json:"rating"`
		Comment   string   `json:"comment"`
		MediaURLs []string `json:"mediaUrls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid review data"))
		return
	}
	if input.ProductID == "" || input.Rating < 1 || input.Rating > 5 || strings.TrimSpace(input.Comment) == "" {
		apperr.Respond(w, apperr.New(apperr.Validation, "Review needs a product, a rating from 1 to 5 and a comment"))
		return
	}

	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Err(); err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	count, err := db.ReviewCollection.CountDocuments(ctx, bson.M{"userid": userID, "productid": input.ProductID})
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to check existing reviews", err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.New(apperr.Conflict, "You have already reviewed this product"))
		return
	}

	verified, err := isVerifiedPurchase(ctx, userID, input.ProductID)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to check purchase history", err))
		return
	}

	review := models.Review{
		ID:                 primitive.NewObjectID(),
		ReviewID:           utils.GetUUID(),
		UserID:             userID,
		ProductID:          input.ProductID,
		Rating:             input.Rating,
		Comment:            input.Comment,
		MediaURLs:          input.MediaURLs,
		IsVerifiedPurchase: verified,
		CreatedAt:          time.Now(),
	}

	if _, err := db.ReviewCollection.InsertOne(ctx, review); err != nil {
		// The unique (user, product) index closes the race two identical
		// submissions can win past the pre-count.
		if db.IsDuplicateKeyError(err) {
			apperr.Respond(w, apperr.New(apperr.Conflict, "You have already reviewed this product"))
			return
		}
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to save review", err))
		return
	}

	if err := recomputeProductRating(ctx, input.ProductID); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to update product rating", err))
		return
	}

	review.UserName = utils.GetUsernameFromRequest(r)
	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// isVerifiedPurchase reports whether the user has a Delivered order
// containing the product. Evaluated once at submission time only.
func isVerifiedPurchase(ctx context.Context, userID, productID string) (bool, error) {
	count, err := db.OrderCollection.CountDocuments(ctx, bson.M{
		"userid":               userID,
		"orderItems.productid": productID,
		"orderStatus":          models.StatusDelivered,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GET /api/reviews/product/:productid (public)
func GetProductReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewCollection, bson.M{"productid": productID}, opts)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to retrieve reviews", err))
		return
	}

	attachReviewerNames(ctx, list)
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// attachReviewerNames annotates reviews with display names only.
func attachReviewerNames(ctx context.Context, list []models.Review) {
	ids := make([]string, 0, len(list))
	seen := map[string]bool{}
	for _, rv := range list {
		if !seen[rv.UserID] {
			seen[rv.UserID] = true
			ids = append(ids, rv.UserID)
		}
	}
	if len(ids) == 0 {
		return
	}

	users, err := utils.FindAndDecode[models.UserSummary](ctx, db.UserCollection, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		return
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Name
	}
	for i := range list {
		list[i].UserName = names[list[i].UserID]
	}
}

// DELETE /api/reviews/:reviewid
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	reviewID := ps.ByName("reviewid")
	var review models.Review
	if err := db.ReviewCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Review not found"))
		return
	}

	if review.UserID != userID {
		apperr.Respond(w, apperr.New(apperr.Auth, "Not authorized to delete this review"))
		return
	}

	if _, err := db.ReviewCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID}); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to delete review", err))
		return
	}

	if err := recomputeProductRating(ctx, review.ProductID); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to update product rating", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Review removed"})
}
