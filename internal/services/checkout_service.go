package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"order_intake/internal/engine"
	"order_intake/internal/models"
	"order_intake/internal/redis"
	"order_intake/internal/repository"
)

var (
	ErrCartNotFound    = errors.New("cart session not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrProductInactive = errors.New("product is not available")
	ErrDateBusy        = errors.New("delivery date is busy, try again")
	ErrNoDeliveryDate  = errors.New("no delivery date selected")
)

// CartUpdate is returned from every cart mutation. RemovedDiscounts
// lists codes that stopped qualifying after the change, so the caller
// can tell the customer.
type CartUpdate struct {
	Session          *redis.CartSession `json:"session"`
	RemovedDiscounts []string           `json:"removed_discounts,omitempty"`
}

// DiscountOutcome reports an apply attempt. A rejection is an expected
// outcome, not an error.
type DiscountOutcome struct {
	Session *redis.CartSession     `json:"session"`
	Applied bool                   `json:"applied"`
	Amount  float64                `json:"amount,omitempty"`
	Failure engine.DiscountFailure `json:"failure,omitempty"`
}

// CheckoutQuote is the fee breakdown shown at checkout.
type CheckoutQuote struct {
	Subtotal         float64                  `json:"subtotal"`
	Discounts        []models.AppliedDiscount `json:"discounts"`
	DiscountTotal    float64                  `json:"discount_total"`
	PackagingFee     float64                  `json:"packaging_fee"`
	Total            float64                  `json:"total"`
	RemovedDiscounts []string                 `json:"removed_discounts,omitempty"`
}

type SubmitRequest struct {
	CustomerName  string
	CustomerPhone string
	Notes         string
}

// SubmitResult either carries the persisted order or the availability
// rejection that blocked it.
type SubmitResult struct {
	Order            *models.Order             `json:"order,omitempty"`
	Availability     engine.AvailabilityResult `json:"availability"`
	RemovedDiscounts []string                  `json:"removed_discounts,omitempty"`
}

type CheckoutService interface {
	GetCart(sessionID string) (*redis.CartSession, error)
	AddItem(sessionID string, productID uint, quantity int) (*CartUpdate, error)
	UpdateItem(sessionID string, productID uint, quantity int) (*CartUpdate, error)
	RemoveItem(sessionID string, productID uint) (*CartUpdate, error)
	SetDeliveryDate(sessionID string, date time.Time) (*CartUpdate, error)
	ApplyDiscount(sessionID string, code string) (*DiscountOutcome, error)
	RemoveDiscount(sessionID string, code string) (*CartUpdate, error)
	Quote(sessionID string) (*CheckoutQuote, error)
	Submit(sessionID string, req SubmitRequest) (*SubmitResult, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	snapshots   *snapshotLoader
	sessions    SessionStore
	locker      DateLocker
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	dayConfigRepo repository.DayConfigRepository,
	settingsRepo repository.SettingsRepository,
	discountRepo repository.DiscountRepository,
	sessions SessionStore,
	locker DateLocker,
	cache SnapshotCache,
	sessionTTL, cacheTTL time.Duration,
) CheckoutService {
	return &checkoutService{
		productRepo: productRepo,
		snapshots: &snapshotLoader{
			orderRepo:     orderRepo,
			dayConfigRepo: dayConfigRepo,
			settingsRepo:  settingsRepo,
			discountRepo:  discountRepo,
			cache:         cache,
			cacheTTL:      cacheTTL,
		},
		sessions:   sessions,
		locker:     locker,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *checkoutService) GetCart(sessionID string) (*redis.CartSession, error) {
	session, err := s.sessions.GetCartSession(sessionID)
	if err != nil {
		return nil, ErrCartNotFound
	}
	return session, nil
}

func (s *checkoutService) getOrCreateCart(sessionID string) *redis.CartSession {
	session, err := s.sessions.GetCartSession(sessionID)
	if err != nil {
		now := s.now()
		return &redis.CartSession{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
	}
	return session
}

func (s *checkoutService) AddItem(sessionID string, productID uint, quantity int) (*CartUpdate, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	session := s.getOrCreateCart(sessionID)
	merged := false
	for i := range session.Lines {
		if session.Lines[i].ProductID == productID {
			session.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		session.Lines = append(session.Lines, models.LineFromProduct(product, quantity))
	}

	return s.saveAfterMutation(session)
}

func (s *checkoutService) UpdateItem(sessionID string, productID uint, quantity int) (*CartUpdate, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range session.Lines {
		if session.Lines[i].ProductID == productID {
			session.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrLineNotFound
	}

	return s.saveAfterMutation(session)
}

func (s *checkoutService) RemoveItem(sessionID string, productID uint) (*CartUpdate, error) {
	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	lines := session.Lines[:0]
	found := false
	for _, line := range session.Lines {
		if line.ProductID == productID {
			found = true
			continue
		}
		lines = append(lines, line)
	}
	if !found {
		return nil, ErrLineNotFound
	}
	session.Lines = lines

	return s.saveAfterMutation(session)
}

func (s *checkoutService) SetDeliveryDate(sessionID string, date time.Time) (*CartUpdate, error) {
	session := s.getOrCreateCart(sessionID)
	session.DeliveryDate = date.Format(time.DateOnly)
	return s.saveAfterMutation(session)
}

// saveAfterMutation re-validates every applied discount against the
// changed cart before persisting the session. Discounts are never
// locked in; they stay conditional on the live cart.
func (s *checkoutService) saveAfterMutation(session *redis.CartSession) (*CartUpdate, error) {
	removed, err := s.revalidate(session)
	if err != nil {
		return nil, err
	}

	session.UpdatedAt = s.now()
	if err := s.sessions.SetCartSession(session.SessionID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save cart session: %w", err)
	}

	return &CartUpdate{Session: session, RemovedDiscounts: removed}, nil
}

func (s *checkoutService) revalidate(session *redis.CartSession) ([]string, error) {
	if len(session.Discounts) == 0 {
		return nil, nil
	}

	catalog, err := s.snapshots.discountCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load discount catalog: %w", err)
	}
	orders, err := s.snapshots.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	kept, removed := engine.RevalidateDiscounts(
		session.Discounts, session.Lines, catalog, orders, s.now().Format(time.DateOnly))
	session.Discounts = kept
	return removed, nil
}

func (s *checkoutService) ApplyDiscount(sessionID string, code string) (*DiscountOutcome, error) {
	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	// reject duplicates before running validation
	for _, applied := range session.Discounts {
		if strings.EqualFold(applied.Code, code) {
			return &DiscountOutcome{Session: session, Failure: engine.FailureAlreadyApplied}, nil
		}
	}

	catalog, err := s.snapshots.discountCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load discount catalog: %w", err)
	}
	orders, err := s.snapshots.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	result := engine.ValidateDiscount(code, session.Lines, catalog, orders, s.now().Format(time.DateOnly))
	if !result.Valid {
		return &DiscountOutcome{Session: session, Failure: result.Failure}, nil
	}

	stacked, failure := engine.StackDiscount(session.Discounts, result, catalog)
	if failure != engine.FailureNone {
		return &DiscountOutcome{Session: session, Failure: failure}, nil
	}
	session.Discounts = stacked

	session.UpdatedAt = s.now()
	if err := s.sessions.SetCartSession(session.SessionID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save cart session: %w", err)
	}

	return &DiscountOutcome{Session: session, Applied: true, Amount: result.Amount}, nil
}

func (s *checkoutService) RemoveDiscount(sessionID string, code string) (*CartUpdate, error) {
	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	discounts := session.Discounts[:0]
	for _, applied := range session.Discounts {
		if strings.EqualFold(applied.Code, code) {
			continue
		}
		discounts = append(discounts, applied)
	}
	session.Discounts = discounts

	return s.saveAfterMutation(session)
}

func (s *checkoutService) Quote(sessionID string) (*CheckoutQuote, error) {
	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	removed, err := s.revalidate(session)
	if err != nil {
		return nil, err
	}

	packaging, err := s.snapshots.packagingConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load packaging config: %w", err)
	}

	subtotal := models.CartSubtotal(session.Lines)
	discountTotal := engine.DiscountTotal(session.Discounts)
	fee := engine.PackagingFee(session.Lines, packaging)

	return &CheckoutQuote{
		Subtotal:         subtotal,
		Discounts:        session.Discounts,
		DiscountTotal:    discountTotal,
		PackagingFee:     fee,
		Total:            subtotal - discountTotal + fee,
		RemovedDiscounts: removed,
	}, nil
}

// Submit is the accept-and-persist step. It serializes per delivery
// date behind a redis lock and re-runs the availability check against a
// fresh order read inside the critical section, so two checkouts that
// both saw "available" cannot over-commit the same day.
func (s *checkoutService) Submit(sessionID string, req SubmitRequest) (*SubmitResult, error) {
	session, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if session.DeliveryDate == "" {
		return nil, ErrNoDeliveryDate
	}

	deliveryDate, err := time.Parse(time.DateOnly, session.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery date %q: %w", session.DeliveryDate, err)
	}

	locked, err := s.locker.AcquireDateLock(session.DeliveryDate, 10*time.Second)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrDateBusy
	}
	defer s.locker.ReleaseDateLock(session.DeliveryDate)

	// fresh reads inside the critical section
	removed, err := s.revalidate(session)
	if err != nil {
		return nil, err
	}

	dayOrders, err := s.snapshots.orderRepo.GetByDeliveryDay(deliveryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	capacity, err := s.snapshots.capacityConfig(deliveryDate, deliveryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load capacity settings: %w", err)
	}

	availability := engine.CheckAvailability(engine.AvailabilityInput{
		Date:     session.DeliveryDate,
		Today:    s.now().Format(time.DateOnly),
		Cart:     session.Lines,
		Orders:   dayOrders,
		Capacity: capacity,
	})
	if availability.Status != engine.StatusAvailable {
		return &SubmitResult{Availability: availability, RemovedDiscounts: removed}, nil
	}

	packaging, err := s.snapshots.packagingConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load packaging config: %w", err)
	}

	subtotal := models.CartSubtotal(session.Lines)
	discountTotal := engine.DiscountTotal(session.Discounts)
	fee := engine.PackagingFee(session.Lines, packaging)

	order := &models.Order{
		OrderNumber:   s.newOrderNumber(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DeliveryDate:  deliveryDate,
		Status:        models.OrderCreated,
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		PackagingFee:  fee,
		TotalAmount:   subtotal - discountTotal + fee,
		Notes:         req.Notes,
	}
	for _, line := range session.Lines {
		order.Items = append(order.Items, models.ItemFromLine(line))
	}
	for _, applied := range session.Discounts {
		order.Discounts = append(order.Discounts, models.OrderDiscount{
			Code:   applied.Code,
			Amount: applied.Amount,
		})
	}

	if err := s.snapshots.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// informational aggregates only; enforcement recounts from orders
	if s.snapshots.discountRepo != nil {
		for _, applied := range session.Discounts {
			_ = s.snapshots.discountRepo.RecordUsage(applied.Code, applied.Amount)
		}
	}

	_ = s.sessions.DeleteCartSession(sessionID)

	return &SubmitResult{
		Order:            order,
		Availability:     availability,
		RemovedDiscounts: removed,
	}, nil
}

func (s *checkoutService) newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%04d", s.now().Format("20060102150405"), rand.Intn(10000))
}
