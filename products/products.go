package products

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"patakha/apperr"
	"patakha/db"
	"patakha/models"
	"patakha/rdx"
	"patakha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheTTL = 60 * time.Second

// GET /api/products (public)
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")
	sortParam := r.URL.Query().Get("sort")
	skip, limit := utils.ParsePagination(r, 20, 100)

	// The unfiltered, default-sorted first page is the hot path; serve it
	// from Redis.
	cacheable := category == "" && search == "" && sortParam == "" && skip == 0
	cacheKey := "products:first"
	if cacheable {
		if cached, err := rdx.CacheGet(cacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	sort := utils.ParseSort(sortParam, bson.D{{Key: "created_at", Value: -1}}, map[string]bson.D{
		"price_asc":  {{Key: "price", Value: 1}},
		"price_desc": {{Key: "price", Value: -1}},
		"rating":     {{Key: "rating", Value: -1}},
		"newest":     {{Key: "created_at", Value: -1}},
	})
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	list, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, filter, opts)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to retrieve products", err))
		return
	}

	if cacheable {
		if payload, err := json.Marshal(list); err == nil {
			rdx.CacheSet(cacheKey, string(payload), listCacheTTL)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/products/:productid (public)
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

type productInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

func (in *productInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.New(apperr.Validation, "Product name is required")
	}
	if in.Price <= 0 {
		return apperr.New(apperr.Validation, "Price must be positive")
	}
	if in.Stock < 0 {
		return apperr.New(apperr.Validation, "Stock cannot be negative")
	}
	return nil
}

// POST /api/products (admin)
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid product data"))
		return
	}
	if err := input.validate(); err != nil {
		apperr.Respond(w, err)
		return
	}

	now := time.Now()
	product := models.Product{
		ID:          primitive.NewObjectID(),
		ProductID:   utils.GetUUID(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Images:      input.Images,
		CreatedBy:   utils.GetUserIDFromRequest(r),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to create product", err))
		return
	}

	rdx.CacheDel("products:first")
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// PUT /api/products/:productid (admin)
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid product data"))
		return
	}
	if err := input.validate(); err != nil {
		apperr.Respond(w, err)
		return
	}

	// rating and numReviews are owned by the reviews package and are
	// deliberately absent from this update.
	update := bson.M{"$set": bson.M{
		"name":        input.Name,
		"category":    input.Category,
		"description": input.Description,
		"price":       input.Price,
		"stock":       input.Stock,
		"images":      input.Images,
		"updated_at":  time.Now(),
	}}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": ps.ByName("productid")}, update)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to update product", err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	rdx.CacheDel("products:first")
	GetProduct(w, r, ps)
}

// DELETE /api/products/:productid (admin)
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to delete product", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	// Orders keep their own snapshots, so past orders stay intact.
	rdx.CacheDel("products:first")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product removed"})
}
