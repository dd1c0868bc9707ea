package client

import "context"

// NotificationsClient covers /api/notifications.
type NotificationsClient struct {
	client *Client
}

// List returns the caller's most recent notification log entries.
func (n *NotificationsClient) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := n.client.get(ctx, "/api/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendTest emails a test reminder for productID to the caller.
func (n *NotificationsClient) SendTest(ctx context.Context, productID int64) (*SendResult, error) {
	req := struct {
		ProductID int64 `json:"productId"`
	}{productID}
	var out SendResult
	if err := n.client.post(ctx, "/api/notifications/test", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
