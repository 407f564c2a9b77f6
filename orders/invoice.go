package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"patakha/apperr"
	"patakha/models"
	"patakha/upi"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /api/orders/:orderid/qr — PNG of the order's UPI payment link.
func OrderPaymentQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := loadOwnOrder(ctx, r, ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if order.UPIPaymentLink == "" {
		apperr.Respond(w, apperr.New(apperr.Validation, "Order has no UPI payment link"))
		return
	}

	png, err := upi.EncodeQR(order.UPIPaymentLink, 256)
	if err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to generate QR code", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GET /api/orders/:orderid/invoice — PDF invoice, with the payment QR
// embedded for unpaid UPI orders.
func OrderInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := loadOwnOrder(ctx, r, ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Patakha Store - Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order Number: %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.OrderStatus))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Payment Method: %s", order.PaymentMethod))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 8, "Item")
	pdf.Cell(30, 8, "Price")
	pdf.Cell(20, 8, "Qty")
	pdf.Cell(30, 8, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.Cell(90, 8, item.Name)
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", item.Price))
		pdf.Cell(20, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.Cell(140, 8, "Subtotal")
	pdf.Cell(30, 8, fmt.Sprintf("%.2f", order.ItemsPrice))
	pdf.Ln(7)
	pdf.Cell(140, 8, "Shipping")
	pdf.Cell(30, 8, fmt.Sprintf("%.2f", order.ShippingPrice))
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(140, 8, "Total")
	pdf.Cell(30, 8, fmt.Sprintf("%.2f", order.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	addr := order.ShippingAddress
	pdf.Cell(0, 8, "Deliver to:")
	pdf.Ln(6)
	pdf.Cell(0, 8, addr.Name)
	pdf.Ln(6)
	pdf.Cell(0, 8, addr.Address)
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("%s, %s - %s", addr.City, addr.State, addr.ZipCode))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Phone: %s", addr.Phone))

	if order.UPIPaymentLink != "" && order.OrderStatus == models.StatusPending {
		if png, qerr := upi.EncodeQR(order.UPIPaymentLink, 256); qerr == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("upiqr", opts, bytes.NewReader(png))
			pdf.ImageOptions("upiqr", 150, 30, 40, 40, false, opts, 0, "")
			pdf.SetY(-30)
			pdf.Cell(0, 8, "Scan the QR code to pay via UPI.")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		apperr.Respond(w, apperr.Wrap(apperr.Internal, "Failed to generate PDF", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
