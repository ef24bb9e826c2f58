package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tailorhub/internal/models"
)

func makeCheckoutRequest() checkoutRequest {
	return checkoutRequest{
		Name:          "Anika Rahman",
		Address:       "12 Green Road, Dhaka",
		Phone:         "01712345678",
		PaymentMethod: models.PaymentCOD,
	}
}

func TestValidateCheckoutDetails(t *testing.T) {
	t.Run("cash on delivery with full details passes", func(t *testing.T) {
		if err := validateCheckoutDetails(makeCheckoutRequest()); err != nil {
			t.Fatalf("expected valid request, got %v", err)
		}
	})

	t.Run("short phone rejected", func(t *testing.T) {
		req := makeCheckoutRequest()
		req.Phone = "0171234"
		if err := validateCheckoutDetails(req); err == nil {
			t.Fatal("expected phone error")
		}
	})

	t.Run("online without a rail rejected", func(t *testing.T) {
		req := makeCheckoutRequest()
		req.PaymentMethod = models.PaymentOnline
		if err := validateCheckoutDetails(req); err == nil {
			t.Fatal("expected payment option error")
		}
	})

	t.Run("online with unknown rail rejected", func(t *testing.T) {
		req := makeCheckoutRequest()
		req.PaymentMethod = models.PaymentOnline
		req.PaymentOption = "PayPal"
		if err := validateCheckoutDetails(req); err == nil {
			t.Fatal("expected payment option error")
		}
	})

	t.Run("every known rail accepted", func(t *testing.T) {
		for _, rail := range models.OnlinePaymentRails {
			req := makeCheckoutRequest()
			req.PaymentMethod = models.PaymentOnline
			req.PaymentOption = rail
			if err := validateCheckoutDetails(req); err != nil {
				t.Fatalf("rail %s rejected: %v", rail, err)
			}
		}
	})

	t.Run("unknown payment method rejected", func(t *testing.T) {
		req := makeCheckoutRequest()
		req.PaymentMethod = "cheque"
		if err := validateCheckoutDetails(req); err == nil {
			t.Fatal("expected payment method error")
		}
	})
}

func TestPaymentStatusFor(t *testing.T) {
	if got := paymentStatusFor(models.PaymentCOD); got != models.PaymentStatusPending {
		t.Fatalf("cod: expected %s, got %s", models.PaymentStatusPending, got)
	}
	if got := paymentStatusFor(models.PaymentOnline); got != models.PaymentStatusProcessing {
		t.Fatalf("online: expected %s, got %s", models.PaymentStatusProcessing, got)
	}
}

func TestBuildOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	lines := []models.CartLine{
		{
			Design:     models.ItemSnapshot{ID: primitive.NewObjectID(), Name: "Panjabi", Price: 40},
			Fabric:     models.ItemSnapshot{ID: primitive.NewObjectID(), Name: "Cotton", Price: 25},
			TotalPrice: 65,
		},
		{
			Design:     models.ItemSnapshot{ID: primitive.NewObjectID(), Name: "Sherwani", Price: 50},
			Fabric:     models.ItemSnapshot{ID: primitive.NewObjectID(), Name: "Silk", Price: 15},
			TotalPrice: 65,
		},
	}

	req := makeCheckoutRequest()
	req.Name = "  Anika Rahman  "
	req.CheckoutKey = "key-1"
	req.PaymentOption = "bKash" // ignored for cod

	order := buildOrder(req, userID, "anika@example.com", lines)

	if order.TotalAmount != 130 {
		t.Fatalf("expected total 130, got %v", order.TotalAmount)
	}
	if order.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("expected payment status Pending, got %s", order.PaymentStatus)
	}
	if order.PaymentOption != "" {
		t.Fatalf("expected payment option cleared for cod, got %q", order.PaymentOption)
	}
	if order.CustomerName != "Anika Rahman" {
		t.Fatalf("expected trimmed name, got %q", order.CustomerName)
	}
	if order.UserID != userID {
		t.Fatal("user id not carried onto the order")
	}
	if order.UserEmail != "anika@example.com" {
		t.Fatalf("unexpected email %q", order.UserEmail)
	}
	if order.CheckoutKey != "key-1" {
		t.Fatalf("unexpected checkout key %q", order.CheckoutKey)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Items))
	}
	if order.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
}

func TestBuildOrderKeepsOnlineRail(t *testing.T) {
	req := makeCheckoutRequest()
	req.PaymentMethod = models.PaymentOnline
	req.PaymentOption = " Nagad "

	order := buildOrder(req, primitive.NewObjectID(), "", nil)

	if order.PaymentOption != "Nagad" {
		t.Fatalf("expected trimmed rail, got %q", order.PaymentOption)
	}
	if order.PaymentStatus != models.PaymentStatusProcessing {
		t.Fatalf("expected Processing, got %s", order.PaymentStatus)
	}
}
