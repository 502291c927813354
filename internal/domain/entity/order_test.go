package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderFromDetail_SnapshotsCommercialFields(t *testing.T) {
	customerID := uuid.New()
	businessID := uuid.New()

	detail := &OfferDetail{
		ID:                 uuid.New(),
		Title:              "Premium",
		Revisions:          5,
		DeliveryTimeInDays: 10,
		Price:              decimal.NewFromInt(200),
		Features:           []string{"Logo", "Flyer"},
		OfferType:          "premium",
	}

	order := NewOrderFromDetail(detail, customerID, businessID)

	assert.Equal(t, customerID, order.CustomerUserID)
	assert.Equal(t, businessID, order.BusinessUserID)
	assert.Equal(t, "Premium", order.Title)
	assert.Equal(t, 5, order.Revisions)
	assert.Equal(t, 10, order.DeliveryTimeInDays)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "premium", order.OfferType)
	assert.Equal(t, OrderInProgress, order.Status)

	// The features slice is copied, so later edits to the tier never
	// reach the order.
	detail.Features[0] = "changed"
	assert.Equal(t, "Logo", order.Features[0])
}

func TestOrder_IsParticipant(t *testing.T) {
	customerID := uuid.New()
	businessID := uuid.New()

	order := &Order{CustomerUserID: customerID, BusinessUserID: businessID}

	assert.True(t, order.IsParticipant(customerID))
	assert.True(t, order.IsParticipant(businessID))
	assert.False(t, order.IsParticipant(uuid.New()))
}

func TestOrder_EstimatedDeliveryDate(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	order := &Order{CreatedAt: created, DeliveryTimeInDays: 10}

	assert.Equal(t, time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC), order.EstimatedDeliveryDate())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderInProgress.IsValid())
	assert.True(t, OrderCompleted.IsValid())
	assert.True(t, OrderCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
