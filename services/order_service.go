package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"art-gallery-service/events"
	"art-gallery-service/gateway"
	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddressInput struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zipcode string `json:"zipcode" binding:"required"`
	Country string `json:"country"`
}

// CheckoutRequest accepts addresses either as legacy flat strings or as
// structured objects; structured input creates Address records.
type CheckoutRequest struct {
	ShippingAddress     string        `json:"shipping_address"`
	BillingAddress      string        `json:"billing_address"`
	ShippingAddressData *AddressInput `json:"shipping_address_data"`
	BillingAddressData  *AddressInput `json:"billing_address_data"`
	SameAsShipping      bool          `json:"same_as_shipping"`
	PaymentMethod       string        `json:"payment_method" binding:"required"`
}

type ProcessPaymentRequest struct {
	Token         string          `json:"token"`
	PayPalDetails json.RawMessage `json:"paypalDetails,omitempty"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderService owns checkout and the pending->paid payment transition.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	addressRepo repositories.AddressRepository
	card        gateway.CardGateway
	paypal      gateway.PayPalVerifier
	publisher   *events.Publisher
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	addressRepo repositories.AddressRepository,
	card gateway.CardGateway,
	paypal gateway.PayPalVerifier,
	publisher *events.Publisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		card:        card,
		paypal:      paypal,
		publisher:   publisher,
		logger:      logger,
	}
}

// Checkout converts the caller's non-empty cart into a pending order and
// empties the cart. The order+items creation and cart-line deletion run in
// one transaction; Address rows created for this attempt are rolled back
// manually if the transaction fails.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *CheckoutRequest) (*models.Order, *ServiceError) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Your cart is empty"}
		}
		s.logger.Error("Failed to fetch cart for checkout", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch cart"}
	}
	if len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Your cart is empty"}
	}

	if req.PaymentMethod != models.PaymentMethodCreditCard && req.PaymentMethod != models.PaymentMethodPayPal {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid payment method"}
	}

	// Addresses are created before the transaction; on failure below they are
	// cleaned up explicitly because other orders may share address rows and
	// the rows themselves are immutable.
	var createdAddresses []uuid.UUID
	cleanup := func() {
		for _, id := range createdAddresses {
			if err := s.addressRepo.Delete(ctx, id); err != nil {
				s.logger.Warn("Failed to clean up address after checkout failure",
					zap.String("address_id", id.String()), zap.Error(err))
			}
		}
	}

	shippingText, shippingID, svcErr := s.resolveAddress(ctx, userID, req.ShippingAddress, req.ShippingAddressData, &createdAddresses)
	if svcErr != nil {
		return nil, svcErr
	}

	billingText, billingID := shippingText, shippingID
	if !req.SameAsShipping {
		billingText, billingID, svcErr = s.resolveAddress(ctx, userID, req.BillingAddress, req.BillingAddressData, &createdAddresses)
		if svcErr != nil {
			cleanup()
			return nil, svcErr
		}
	}

	// Total is computed server-side from current catalog prices; the client
	// never supplies it.
	total := cart.ComputeTotal()

	order := &models.Order{
		UserID:            userID,
		OrderNumber:       uuid.New(),
		Status:            models.OrderStatusPending,
		PaymentMethod:     req.PaymentMethod,
		ShippingAddress:   shippingText,
		BillingAddress:    billingText,
		ShippingAddressID: shippingID,
		BillingAddressID:  billingID,
		TotalPrice:        total,
	}
	for i := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ArtPictureID: cart.Items[i].ArtPictureID,
			Price:        cart.Items[i].ArtPicture.Price,
			Quantity:     cart.Items[i].Quantity,
		})
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, cart.ID); err != nil {
		s.logger.Error("Checkout transaction failed", zap.String("user_id", userID.String()), zap.Error(err))
		cleanup()
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create order"}
	}

	created, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to reload created order", zap.String("order_id", order.ID.String()), zap.Error(err))
		created = order
	}
	decorateOrder(created)

	s.publisher.Publish(ctx, events.OrderCreatedKey, events.OrderCreatedEvent{
		OrderID:     created.ID.String(),
		OrderNumber: created.OrderNumber.String(),
		UserID:      userID.String(),
		TotalPrice:  created.TotalPrice.StringFixed(2),
		ItemCount:   len(created.Items),
		Timestamp:   time.Now().UTC(),
	})

	return created, nil
}

func (s *OrderService) resolveAddress(ctx context.Context, userID uuid.UUID, flat string, data *AddressInput, created *[]uuid.UUID) (string, *uuid.UUID, *ServiceError) {
	if data != nil {
		address := &models.Address{
			Street:  data.Street,
			City:    data.City,
			State:   data.State,
			Zipcode: data.Zipcode,
			Country: data.Country,
			UserID:  &userID,
		}
		if address.Country == "" {
			address.Country = "United States"
		}
		if err := s.addressRepo.Create(ctx, address); err != nil {
			s.logger.Error("Failed to create address", zap.Error(err))
			return "", nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save address"}
		}
		*created = append(*created, address.ID)
		return address.FullAddress(), &address.ID, nil
	}

	if flat != "" {
		return flat, nil, nil
	}
	return "", nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Missing required checkout information"}
}

// ProcessPayment drives the pending->paid transition. The transition itself
// is a conditional update, so a concurrent double submission settles at most
// once; the loser observes invalid state.
func (s *OrderService) ProcessPayment(ctx context.Context, userID uuid.UUID, staff bool, orderID uuid.UUID, req *ProcessPaymentRequest) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, userID, staff, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.Status != models.OrderStatusPending {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "This order has already been processed"}
	}
	if req.Token == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Payment token is required"}
	}

	var paymentID string
	var details json.RawMessage

	switch order.PaymentMethod {
	case models.PaymentMethodCreditCard:
		chargeID, err := s.card.Charge(ctx, gateway.ChargeRequest{
			AmountMinor: order.TotalPrice.Shift(2).IntPart(),
			Currency:    "usd",
			Description: fmt.Sprintf("Order %s", order.OrderNumber),
			Token:       req.Token,
		})
		if err != nil {
			// Gateway failures are surfaced verbatim; the order stays pending
			// and the payment is retryable.
			s.logger.Warn("Card charge failed",
				zap.String("order_id", order.ID.String()), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
		paymentID = chargeID

	case models.PaymentMethodPayPal:
		paymentID, details, svcErr = s.confirmPayPal(ctx, order, req)
		if svcErr != nil {
			return nil, svcErr
		}

	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid payment method"}
	}

	paidAt := time.Now().UTC()
	transitioned, err := s.orderRepo.MarkPaid(ctx, order.ID, paymentID, details, paidAt)
	if err != nil {
		s.logger.Error("Failed to record payment", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to record payment"}
	}
	if !transitioned {
		// Lost a concurrent double-submission race after the charge; the
		// order was settled by the other request.
		s.logger.Warn("Payment recorded concurrently elsewhere", zap.String("order_id", order.ID.String()))
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "This order has already been processed"}
	}

	paid, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to reload paid order", zap.String("order_id", order.ID.String()), zap.Error(err))
		paid = order
		paid.Status = models.OrderStatusPaid
		paid.PaymentID = paymentID
		paid.PaidAt = &paidAt
	}
	decorateOrder(paid)

	s.publisher.Publish(ctx, events.OrderPaidKey, events.OrderPaidEvent{
		OrderID:       paid.ID.String(),
		OrderNumber:   paid.OrderNumber.String(),
		UserID:        paid.UserID.String(),
		PaymentMethod: paid.PaymentMethod,
		PaymentID:     paid.PaymentID,
		Timestamp:     paidAt,
	})

	return paid, nil
}

// confirmPayPal reconciles a PayPal confirmation. In simulation mode (and in
// the relaxed sandbox when no provider secret is configured) the client's
// confirmation is accepted as-is; in verified mode the provider must report
// the order COMPLETED or APPROVED.
func (s *OrderService) confirmPayPal(ctx context.Context, order *models.Order, req *ProcessPaymentRequest) (string, json.RawMessage, *ServiceError) {
	if s.paypal.Simulated() || !s.paypal.Configured() {
		mode := "simulated"
		if !s.paypal.Simulated() {
			mode = "sandbox"
		}
		details, _ := json.Marshal(map[string]interface{}{
			"mode":         mode,
			"simulated":    true,
			"confirmation": req.PayPalDetails,
		})
		return "paypal_" + req.Token, details, nil
	}

	providerOrderID := req.Token
	if len(req.PayPalDetails) > 0 {
		var d struct {
			OrderID string `json:"orderID"`
		}
		if err := json.Unmarshal(req.PayPalDetails, &d); err == nil && d.OrderID != "" {
			providerOrderID = d.OrderID
		}
	}

	po, err := s.paypal.GetOrder(ctx, providerOrderID)
	if err != nil {
		s.logger.Warn("PayPal verification failed",
			zap.String("order_id", order.ID.String()), zap.Error(err))
		return "", nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	if !po.Paid() {
		return "", nil, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("PayPal order not completed (status %s)", po.Status),
		}
	}
	return po.ID, po.Raw, nil
}

// GetUserOrders returns the caller's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch orders"}
	}
	return buildOrderList(orders, total, page, limit), nil
}

// GetAllOrders returns every order (staff only, enforced at the route level).
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch all orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch orders"}
	}
	return buildOrderList(orders, total, page, limit), nil
}

// GetOrderByID returns one order, scoped to the caller unless staff.
func (s *OrderService) GetOrderByID(ctx context.Context, userID uuid.UUID, staff bool, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, userID, staff, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	decorateOrder(order)
	return order, nil
}

func (s *OrderService) loadOrder(ctx context.Context, userID uuid.UUID, staff bool, orderID uuid.UUID) (*models.Order, *ServiceError) {
	var order *models.Order
	var err error
	if staff {
		order, err = s.orderRepo.FindByID(ctx, orderID)
	} else {
		order, err = s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch order"}
	}
	return order, nil
}

func buildOrderList(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	for i := range orders {
		decorateOrder(&orders[i])
	}
	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func decorateOrder(order *models.Order) {
	for i := range order.Items {
		order.Items[i].SubtotalPrice = order.Items[i].Subtotal()
	}
}
