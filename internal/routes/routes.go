// Package routes holds the paths the interface navigates between.
package routes

const (
	Bills   = "/bills"
	NewBill = "/bills/new"
)
