package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// defaultCatalog catálogo de demostración.
func defaultCatalog() []dto.CreateItemRequest {
	return []dto.CreateItemRequest{
		{Code: "BR001", Name: "Laptop Gaming ASUS", PurchasePrice: 13000000, SalePrice: 15000000, Category: "Laptop", Stock: 5},
		{Code: "BR002", Name: "Mouse Wireless Logitech", PurchasePrice: 200000, SalePrice: 250000, Category: "Aksesoris", Stock: 25},
		{Code: "BR003", Name: "Keyboard Mechanical RGB", PurchasePrice: 650000, SalePrice: 800000, Category: "Aksesoris", Stock: 15},
		{Code: "BR004", Name: "Monitor 24 inch Full HD", PurchasePrice: 2000000, SalePrice: 2500000, Category: "Monitor", Stock: 8},
		{Code: "BR005", Name: "Headset Gaming Razer", PurchasePrice: 950000, SalePrice: 1200000, Category: "Audio", Stock: 12},
		{Code: "BR006", Name: "Webcam HD 1080p", PurchasePrice: 450000, SalePrice: 600000, Category: "Kamera", Stock: 18},
		{Code: "BR007", Name: "SSD 1TB Samsung", PurchasePrice: 1400000, SalePrice: 1800000, Category: "Storage", Stock: 10},
		{Code: "BR008", Name: "RAM DDR4 16GB Corsair", PurchasePrice: 1200000, SalePrice: 1500000, Category: "Memory", Stock: 20},
		{Code: "BR009", Name: "Mousepad Gaming XL", PurchasePrice: 100000, SalePrice: 150000, Category: "Aksesoris", Stock: 30},
		{Code: "BR010", Name: "Speaker Bluetooth JBL", PurchasePrice: 600000, SalePrice: 800000, Category: "Audio", Stock: 14},
		{Code: "BR011", Name: "Power Bank 20000mAh", PurchasePrice: 300000, SalePrice: 400000, Category: "Power", Stock: 22},
		{Code: "BR012", Name: "USB Flash Drive 64GB", PurchasePrice: 80000, SalePrice: 120000, Category: "Storage", Stock: 35},
		{Code: "BR013", Name: "Printer Inkjet Canon", PurchasePrice: 1400000, SalePrice: 1800000, Category: "Printer", Stock: 6},
		{Code: "BR014", Name: "Router WiFi 6 TP-Link", PurchasePrice: 700000, SalePrice: 900000, Category: "Network", Stock: 11},
		{Code: "BR015", Name: "Cable HDMI 2m", PurchasePrice: 50000, SalePrice: 80000, Category: "Kabel", Stock: 40},
		{Code: "BR016", Name: "Phone Case iPhone 14", PurchasePrice: 150000, SalePrice: 200000, Category: "Aksesoris", Stock: 28},
		{Code: "BR017", Name: "Tablet Android 10 inch", PurchasePrice: 2800000, SalePrice: 3500000, Category: "Tablet", Stock: 7},
		{Code: "BR018", Name: "Smartwatch Samsung", PurchasePrice: 2200000, SalePrice: 2800000, Category: "Wearable", Stock: 9},
		{Code: "BR019", Name: "Earbuds True Wireless", PurchasePrice: 950000, SalePrice: 1200000, Category: "Audio", Stock: 16},
		{Code: "BR020", Name: "Laptop Stand Aluminum", PurchasePrice: 250000, SalePrice: 350000, Category: "Aksesoris", Stock: 24},
	}
}

var csvHeader = []string{"code", "name", "purchase_price", "sale_price", "category", "stock"}

// readCatalog lee un CSV code,name,purchase_price,sale_price,category,stock.
// La primera fila se descarta si es el encabezado. latin1 decodifica ISO-8859-1 (exportes de Excel).
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateItemRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	var out []dto.CreateItemRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), csvHeader[0]) {
			continue
		}
		item, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: %w", line, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func parseRecord(rec []string) (dto.CreateItemRequest, error) {
	purchase, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("purchase_price: %w", err)
	}
	sale, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("sale_price: %w", err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(rec[5]))
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("stock: %w", err)
	}
	return dto.CreateItemRequest{
		Code:          strings.TrimSpace(rec[0]),
		Name:          strings.TrimSpace(rec[1]),
		PurchasePrice: purchase,
		SalePrice:     sale,
		Category:      strings.TrimSpace(rec[4]),
		Stock:         stock,
	}, nil
}
