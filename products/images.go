package products

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"patakha/apperr"
	"patakha/db"
	"patakha/rdx"
	"patakha/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// POST /api/products/:productid/image (admin, multipart field "image")
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Err(); err != nil {
		apperr.Respond(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Image file is required"))
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		apperr.Respond(w, apperr.New(apperr.Validation, "Unsupported image type"))
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		apperr.Respond(w, apperr.New(apperr.Validation, "Could not decode image"))
		return
	}

	uniqueID := utils.GetUUID()
	fileName := uniqueID + ".jpg"
	thumbDir := filepath.Join(productPicDir, "thumb")

	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to prepare upload directory", err))
		return
	}

	if err := imaging.Save(img, filepath.Join(productPicDir, fileName)); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to save image", err))
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to save thumbnail", err))
		return
	}

	imageURL := "/static/productpic/" + fileName
	thumbURL := "/static/productpic/thumb/" + fileName

	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{
			"$push": bson.M{"images": imageURL},
			"$set":  bson.M{"thumbnail": thumbURL, "updated_at": time.Now()},
		},
	)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to record image", err))
		return
	}

	rdx.CacheDel("products:first")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image":     imageURL,
		"thumbnail": thumbURL,
	})
}
