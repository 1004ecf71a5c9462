package services

import "github.com/fadilsflow/tegaltourism-marketplace-sub001/models"

// RevenueSplit is one seller's slice of an order: their gross sales, their
// proportional share of the order's service fee, and what they keep.
type RevenueSplit struct {
	Gross int64 `json:"gross"`
	Fee   int64 `json:"fee"`
	Net   int64 `json:"net"`
}

// Allocate computes a seller's revenue split for one order. The service fee
// is charged once per order, so each seller carries a share proportional to
// their part of the order's gross value:
//
//	fee = gross * orderServiceFee / orderTotal
//
// An order with zero total has no proportional basis; its fee is zero.
// Both the per-order seller view and the dashboard aggregation go through
// this function so the two can never drift apart.
func Allocate(items []models.OrderItem, orderTotal, orderServiceFee int64) RevenueSplit {
	var gross int64
	for _, item := range items {
		gross += item.Subtotal()
	}

	var fee int64
	if orderTotal > 0 {
		fee = gross * orderServiceFee / orderTotal
	}

	return RevenueSplit{
		Gross: gross,
		Fee:   fee,
		Net:   gross - fee,
	}
}
