package client

import (
	"context"
	"fmt"
	"net/url"
)

// ProductsClient covers /api/products.
type ProductsClient struct {
	client *Client
}

func (p *ProductsClient) List(ctx context.Context, filter ProductFilter) ([]Product, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.DateFrom != "" {
		q.Set("dateFrom", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q.Set("dateTo", filter.DateTo)
	}
	if filter.ExpiringSoon {
		q.Set("expiringSoon", "true")
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Product
	if err := p.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProductsClient) Get(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := p.client.get(ctx, productPath(id, ""), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsClient) Create(ctx context.Context, in NewProduct) (*Product, error) {
	var out Product
	if err := p.client.post(ctx, "/api/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsClient) Update(ctx context.Context, id int64, patch ProductUpdate) (*Product, error) {
	var out Product
	if err := p.client.put(ctx, productPath(id, ""), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsClient) Delete(ctx context.Context, id int64) error {
	return p.client.delete(ctx, productPath(id, ""))
}

// UpcomingExpiring lists products whose warranty ends within 30 days.
func (p *ProductsClient) UpcomingExpiring(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := p.client.get(ctx, "/api/products/upcoming/expiring", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckInvoice reports whether invoiceNumber is already on one of the
// caller's products.
func (p *ProductsClient) CheckInvoice(ctx context.Context, invoiceNumber string) (*InvoiceCheck, error) {
	var out InvoiceCheck
	path := "/api/products/check-invoice?invoiceNumber=" + url.QueryEscape(invoiceNumber)
	if err := p.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsClient) RiskAssessment(ctx context.Context, id int64) (*RiskAssessment, error) {
	var out RiskAssessment
	if err := p.client.get(ctx, productPath(id, "/risk-assessment"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendClaimEmail mails a drafted claim for product id to recipient.
func (p *ProductsClient) SendClaimEmail(ctx context.Context, id int64, recipient, body string) (*SendResult, error) {
	req := struct {
		ProductID      int64  `json:"productId"`
		EmailBody      string `json:"emailBody"`
		RecipientEmail string `json:"recipientEmail"`
	}{id, body, recipient}
	var out SendResult
	if err := p.client.post(ctx, "/api/products/send-claim-email", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func productPath(id int64, suffix string) string {
	return fmt.Sprintf("/api/products/%d%s", id, suffix)
}
