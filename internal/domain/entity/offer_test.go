package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffer_MinPrice(t *testing.T) {
	offer := &Offer{
		Details: []*OfferDetail{
			{Price: decimal.NewFromInt(100)},
			{Price: decimal.NewFromInt(50)},
			{Price: decimal.NewFromInt(200)},
		},
	}

	minPrice := offer.MinPrice()
	require.NotNil(t, minPrice)
	assert.True(t, minPrice.Equal(decimal.NewFromInt(50)))
}

func TestOffer_MinPrice_NoDetails(t *testing.T) {
	offer := &Offer{}
	assert.Nil(t, offer.MinPrice())
}

func TestOffer_MinDeliveryTime(t *testing.T) {
	offer := &Offer{
		Details: []*OfferDetail{
			{DeliveryTimeInDays: 7},
			{DeliveryTimeInDays: 3},
			{DeliveryTimeInDays: 14},
		},
	}

	days, ok := offer.MinDeliveryTime()
	require.True(t, ok)
	assert.Equal(t, 3, days)

	_, ok = (&Offer{}).MinDeliveryTime()
	assert.False(t, ok)
}

func TestOffer_DetailByID(t *testing.T) {
	wanted := uuid.New()
	offer := &Offer{
		Details: []*OfferDetail{
			{ID: uuid.New(), Title: "Basic"},
			{ID: wanted, Title: "Standard"},
		},
	}

	detail := offer.DetailByID(wanted)
	require.NotNil(t, detail)
	assert.Equal(t, "Standard", detail.Title)

	assert.Nil(t, offer.DetailByID(uuid.New()))
}
