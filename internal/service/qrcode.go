package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// OrderQRGenerator encodes the public tracking URL of an order as a
// 256px PNG.
type OrderQRGenerator struct {
	BaseURL string
}

func NewOrderQRGenerator(baseURL string) *OrderQRGenerator {
	return &OrderQRGenerator{BaseURL: baseURL}
}

func (g *OrderQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/track.html?order_id=%s", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = (*OrderQRGenerator)(nil)
