package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"patakha/apperr"
	"patakha/db"
	"patakha/models"
	"patakha/upi"
	"patakha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderNumberAttempts = 3

type createOrderRequest struct {
	OrderItems []struct {
		ProductID string `json:"productid"`
		Quantity  int    `json:"quantity"`
	} `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

func (req *createOrderRequest) validate() error {
	if len(req.OrderItems) == 0 {
		return apperr.New(apperr.Validation, "Order must contain at least one item")
	}
	for _, item := range req.OrderItems {
		if item.ProductID == "" || item.Quantity < 1 {
			return apperr.New(apperr.Validation, "Each order item needs a product and a quantity of at least 1")
		}
	}
	addr := req.ShippingAddress
	if addr.Name == "" || addr.Phone == "" || addr.Address == "" || addr.City == "" || addr.ZipCode == "" {
		return apperr.New(apperr.Validation, "Shipping address is incomplete")
	}
	if !ValidPaymentMethod(req.PaymentMethod) {
		return apperr.New(apperr.Validation, fmt.Sprintf("Unrecognized payment method %q", req.PaymentMethod))
	}
	return nil
}

// POST /api/orders
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid JSON payload"))
		return
	}
	if err := req.validate(); err != nil {
		apperr.Respond(w, err)
		return
	}

	// Replay of a checkout attempt the client already submitted returns
	// the order that attempt created, never a second one.
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		var existing models.Order
		err := db.OrderCollection.FindOne(ctx, bson.M{"userid": userID, "idempotency_key": idemKey}).Decode(&existing)
		if err == nil {
			utils.RespondWithJSON(w, http.StatusOK, existing)
			return
		}
	}

	// Snapshot catalog name and price per item at this instant.
	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product)
		if err != nil {
			apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found: "+line.ProductID))
			return
		}
		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	itemsPrice, shippingPrice, totalPrice := ComputePrices(items, req.PaymentMethod)

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      totalPrice,
		OrderStatus:     models.StatusPending,
		IdempotencyKey:  idemKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := insertWithFreshOrderNumber(ctx, &order); err != nil {
		// A concurrent replay of the same idempotency key may have won the
		// insert race; hand back that order instead of a conflict.
		if idemKey != "" && apperr.KindOf(err) == apperr.Conflict {
			var existing models.Order
			if ferr := db.OrderCollection.FindOne(ctx, bson.M{"userid": userID, "idempotency_key": idemKey}).Decode(&existing); ferr == nil {
				utils.RespondWithJSON(w, http.StatusOK, existing)
				return
			}
		}
		apperr.Respond(w, err)
		return
	}

	if err := decrementStock(ctx, items); err != nil {
		// Keep create all-or-nothing: drop the just-inserted order.
		db.OrderCollection.DeleteOne(ctx, bson.M{"_id": order.ID})
		apperr.Respond(w, err)
		return
	}

	broadcastOrderUpdate(order.ID.Hex(), map[string]any{
		"type":        "order_created",
		"orderId":     order.ID.Hex(),
		"orderNumber": order.OrderNumber,
		"orderStatus": order.OrderStatus,
		"totalPrice":  order.TotalPrice,
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// insertWithFreshOrderNumber generates an order number and inserts,
// regenerating on a number collision up to orderNumberAttempts times.
// For UPI orders the payment link is derived from the number, so it is
// rebuilt on every attempt.
func insertWithFreshOrderNumber(ctx context.Context, order *models.Order) error {
	payee := upi.PayeeFromEnv()

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = NewOrderNumber()
		if order.PaymentMethod == models.PaymentUPI {
			order.UPIPaymentLink = upi.BuildPaymentLink(payee, order.TotalPrice, order.OrderNumber, "Patakha Order Payment")
		}

		_, err := db.OrderCollection.InsertOne(ctx, order)
		if err == nil {
			return nil
		}
		if !db.IsDuplicateKeyError(err) {
			return apperr.Wrap(apperr.Internal, "Failed to create order", err)
		}
		lastErr = err

		// Duplicate idempotency key, not a number collision: bail out so
		// the caller can return the already-created order.
		count, cerr := db.OrderCollection.CountDocuments(ctx, bson.M{"orderNumber": order.OrderNumber})
		if cerr == nil && count == 0 {
			return apperr.Wrap(apperr.Conflict, "Order already submitted", err)
		}
	}
	return apperr.Wrap(apperr.Conflict, "Could not allocate a unique order number", lastErr)
}

// decrementStock applies a guarded $inc per item and rolls back earlier
// decrements if any item has insufficient stock.
func decrementStock(ctx context.Context, items []models.OrderItem) error {
	done := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		res, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"stock": -item.Quantity}},
		)
		if err == nil && res.ModifiedCount == 1 {
			done = append(done, item)
			continue
		}

		restock(ctx, done)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update stock", err)
		}
		return apperr.New(apperr.Conflict, fmt.Sprintf("Insufficient stock for %s", item.Name))
	}
	return nil
}

func restock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.ProductID},
			bson.M{"$inc": bson.M{"stock": item.Quantity}},
		)
	}
}

// GET /api/orders/mine
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.New(apperr.Auth, "Unauthorized"))
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrderCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to retrieve orders", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GET /api/orders/:orderid
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := loadOwnOrder(ctx, r, ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// loadOwnOrder fetches an order by id and checks the caller owns it.
// Admins may read any order.
func loadOwnOrder(ctx context.Context, r *http.Request, orderIDHex string) (*models.Order, error) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, apperr.New(apperr.Auth, "Unauthorized")
	}

	orderID, err := primitive.ObjectIDFromHex(orderIDHex)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}

	if order.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		return nil, apperr.New(apperr.Forbidden, "Not your order")
	}
	return &order, nil
}

// GET /api/orders (admin)
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrderCollection, bson.M{}, opts)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to retrieve orders", err))
		return
	}

	attachCustomers(ctx, orders)
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// attachCustomers joins each order with its customer's display identity.
func attachCustomers(ctx context.Context, orders []models.Order) {
	ids := make([]string, 0, len(orders))
	seen := map[string]bool{}
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	if len(ids) == 0 {
		return
	}

	users, err := utils.FindAndDecode[models.UserSummary](ctx, db.UserCollection, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		return
	}
	byID := make(map[string]models.UserSummary, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}
	for i := range orders {
		if u, ok := byID[orders[i].UserID]; ok {
			summary := u
			orders[i].Customer = &summary
		}
	}
}

// PUT /api/orders/:orderid/status (admin)
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OrderStatus == "" {
		apperr.Respond(w, apperr.New(apperr.Validation, "orderStatus is required"))
		return
	}

	orderID, err := primitive.ObjectIDFromHex(ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}

	if err := CheckTransition(order.OrderStatus, input.OrderStatus); err != nil {
		apperr.Respond(w, err)
		return
	}

	// Guard against a concurrent transition having moved the order since
	// the read: the update filter re-checks the source status.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "orderStatus": order.OrderStatus},
		bson.M{"$set": bson.M{"orderStatus": input.OrderStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to update order status", err))
		return
	}
	if res.ModifiedCount == 0 {
		apperr.Respond(w, apperr.New(apperr.InvalidTransition, "Order status changed concurrently, retry"))
		return
	}

	// Cancelled-before-shipping puts the goods back on the shelf.
	if input.OrderStatus == models.StatusCancelled {
		restock(ctx, order.OrderItems)
	}

	order.OrderStatus = input.OrderStatus
	order.UpdatedAt = time.Now()

	broadcastOrderUpdate(order.ID.Hex(), map[string]any{
		"type":        "status_update",
		"orderId":     order.ID.Hex(),
		"orderNumber": order.OrderNumber,
		"orderStatus": order.OrderStatus,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}
