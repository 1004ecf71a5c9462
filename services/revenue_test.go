package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

func items(pairs ...[2]int64) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.OrderItem{Price: p[0], Quantity: int(p[1])})
	}
	return out
}

func TestAllocate_TwoSellerOrder(t *testing.T) {
	const (
		orderTotal = 100000
		serviceFee = 5000
	)

	// Seller A: 60000 gross, Seller B: 40000 gross.
	a := services.Allocate(items([2]int64{20000, 3}), orderTotal, serviceFee)
	b := services.Allocate(items([2]int64{8000, 5}), orderTotal, serviceFee)

	assert.Equal(t, services.RevenueSplit{Gross: 60000, Fee: 3000, Net: 57000}, a)
	assert.Equal(t, services.RevenueSplit{Gross: 40000, Fee: 2000, Net: 38000}, b)

	// Fees sum to the order's fee, nets plus the fee reconstruct the total.
	assert.Equal(t, int64(serviceFee), a.Fee+b.Fee)
	assert.Equal(t, int64(orderTotal), a.Net+b.Net+serviceFee)
}

func TestAllocate_FeeSumWithinRoundingTolerance(t *testing.T) {
	const (
		orderTotal = 10001
		serviceFee = 500
	)
	// Three sellers with awkward proportions.
	splits := []services.RevenueSplit{
		services.Allocate(items([2]int64{3334, 1}), orderTotal, serviceFee),
		services.Allocate(items([2]int64{3334, 1}), orderTotal, serviceFee),
		services.Allocate(items([2]int64{3333, 1}), orderTotal, serviceFee),
	}

	var feeSum, netSum int64
	for _, s := range splits {
		feeSum += s.Fee
		netSum += s.Net
		assert.Equal(t, s.Gross, s.Fee+s.Net)
	}

	// Integer division truncates per seller, so the sum may undershoot by at
	// most one unit per seller and never overshoots.
	assert.LessOrEqual(t, feeSum, int64(serviceFee))
	assert.GreaterOrEqual(t, feeSum, int64(serviceFee)-int64(len(splits)))
	assert.Equal(t, netSum+feeSum, int64(orderTotal))
}

func TestAllocate_ZeroTotalHasZeroFee(t *testing.T) {
	split := services.Allocate(items([2]int64{0, 3}), 0, 5000)
	assert.Equal(t, services.RevenueSplit{Gross: 0, Fee: 0, Net: 0}, split)
}

func TestAllocate_NoItems(t *testing.T) {
	split := services.Allocate(nil, 100000, 5000)
	assert.Equal(t, services.RevenueSplit{}, split)
}

func TestAllocate_SingleSellerCarriesWholeFee(t *testing.T) {
	split := services.Allocate(items([2]int64{25000, 4}), 100000, 5000)
	assert.Equal(t, services.RevenueSplit{Gross: 100000, Fee: 5000, Net: 95000}, split)
}
